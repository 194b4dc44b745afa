package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treedump/pkg/cache"
	"github.com/matzehuels/treedump/pkg/errors"
)

// isolate points every lookup at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, name := range []string{"CACHE_BACKEND", "CACHE_DIR", "CACHE_SIZE", "CACHE_TTL", "REDIS_URL",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "ADDR", "PREFIX", "FORMATS"} {
		t.Setenv(EnvPrefix+name, "")
		os.Unsetenv(EnvPrefix + name)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, filepath.Join(dir, "cache", AppName), cfg.Cache.Dir)
	assert.Equal(t, []string{"xml"}, cfg.Dump.Formats)
	assert.Equal(t, "widget", cfg.Dump.Prefix)
	assert.Equal(t, cache.DumpTTL, cfg.Cache.TTL.Duration)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", AppName, "config.toml")
	writeFile(t, path, `
[cache]
backend = "memory"
size = 32
ttl = "1h"

[server]
addr = ":9000"

[dump]
formats = ["xml", "dot"]
prefix = "w"
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, cache.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 32, cfg.Cache.Size)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"xml", "dot"}, cfg.Dump.Formats)
	assert.Equal(t, "w", cfg.Dump.Prefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[cache]\nbackend = \"memory\"\n")

	t.Setenv("TREEDUMP_CACHE_BACKEND", "redis")
	t.Setenv("TREEDUMP_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("TREEDUMP_FORMATS", "json, svg")
	t.Setenv("TREEDUMP_CACHE_SIZE", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cache.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://localhost:6379/1", cfg.CacheOptions().RedisURL)
	assert.Equal(t, 8, cfg.CacheOptions().MemoryEntries)
	assert.Equal(t, []string{"json", "svg"}, cfg.Dump.Formats)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		code    errors.Code
	}{
		{"bad toml", "[cache\n", nil, errors.ErrCodeInvalidInput},
		{"unknown key", "[cache]\ncolor = 1\n", nil, errors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"disk\"\n", nil, errors.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", nil, errors.ErrCodeInvalidInput},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"\n", nil, errors.ErrCodeInvalidInput},
		{"bad format", "[dump]\nformats = [\"gif\"]\n", nil, errors.ErrCodeInvalidFormat},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", nil, errors.ErrCodeInvalidInput},
		{"bad size env", "", map[string]string{"TREEDUMP_CACHE_SIZE": "many"}, errors.ErrCodeInvalidInput},
		{"zero size", "[cache]\nsize = 0\n", nil, errors.ErrCodeInvalidInput},
		{"empty prefix", "[dump]\nprefix = \"\"\n", nil, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(dir, "c.toml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "error = %v, want code %s", err, tt.code)
		})
	}
}

func TestLoad_MissingExplicit(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "error = %v", err)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90m")))
	assert.Equal(t, 90*time.Minute, d.Duration)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", string(text))
}
