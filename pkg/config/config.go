// Package config loads treedump settings.
//
// Settings come from three layers, later ones winning:
//
//  1. the TOML file ($XDG_CONFIG_HOME/treedump/config.toml, or --config)
//  2. a .env file in the working directory, loaded into the environment
//  3. TREEDUMP_* environment variables
//
// A missing config file is not an error; defaults apply.
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = "127.0.0.1:7411"
//
//	[dump]
//	formats = ["xml", "svg"]
//	prefix = "widget"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/treedump/pkg/cache"
	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
	"github.com/matzehuels/treedump/pkg/server"
)

// AppName names the config and cache directories.
const AppName = "treedump"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TREEDUMP_"

// Config is the complete configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Dump   DumpConfig   `toml:"dump"`

	// Path is the file the config was read from, empty when none existed.
	Path string `toml:"-"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string   `toml:"backend"`
	Dir             string   `toml:"dir"`
	Size            int      `toml:"size"`
	TTL             Duration `toml:"ttl"`
	RedisURL        string   `toml:"redis_url"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP inspector.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DumpConfig holds dump defaults.
type DumpConfig struct {
	Formats []string `toml:"formats"`
	Prefix  string   `toml:"prefix"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			Size:            256,
			TTL:             Duration{cache.DumpTTL},
			MongoDatabase:   AppName,
			MongoCollection: "cache",
		},
		Server: ServerConfig{Addr: server.DefaultAddr},
		Dump: DumpConfig{
			Formats: []string{pipeline.FormatXML},
			Prefix:  dump.DefaultPrefix,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DefaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/treedump/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config at path (the default location when empty),
// applies .env and environment overrides, and validates the result. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys %v", path, undecoded)
			}
			cfg.Path = path
		case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		case stderrors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if cfg.Cache.Dir == "" {
		if dir, err := DefaultCacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from TREEDUMP_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("MONGO_URI", &c.Cache.MongoURI)
	str("MONGO_DATABASE", &c.Cache.MongoDatabase)
	str("MONGO_COLLECTION", &c.Cache.MongoCollection)
	str("ADDR", &c.Server.Addr)
	str("PREFIX", &c.Dump.Prefix)

	if v, ok := lookup(EnvPrefix + "CACHE_SIZE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%sCACHE_SIZE", EnvPrefix)
		}
		c.Cache.Size = n
	}
	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok {
		if err := c.Cache.TTL.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%sCACHE_TTL", EnvPrefix)
		}
	}
	if v, ok := lookup(EnvPrefix + "FORMATS"); ok {
		c.Dump.Formats = splitList(v)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendMemory, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"cache.backend %q (must be one of: file, memory, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.size must be positive")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr is required")
	}
	if err := errors.ValidateWidgetName(c.Dump.Prefix); err != nil || c.Dump.Prefix == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dump.prefix %q is not a valid id prefix", c.Dump.Prefix)
	}
	return pipeline.ValidateFormats(c.Dump.Formats)
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		MemoryEntries:   c.Cache.Size,
		RedisURL:        c.Cache.RedisURL,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
