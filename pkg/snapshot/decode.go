package snapshot

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treedump/pkg/errors"
)

// Decode reads a snapshot in the given format from r. Unknown fields are
// rejected.
func Decode(format Format, r io.Reader) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "unknown toml keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.New(errors.ErrCodeInvalidSnapshot, "empty snapshot")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.New(errors.ErrCodeInvalidSnapshot, "empty snapshot")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
	}
	if s.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no root node")
	}
	return &s, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(format Format, data []byte) (*Snapshot, error) {
	return Decode(format, bytes.NewReader(data))
}

// Load reads the snapshot file at path, inferring the format from its
// extension.
func Load(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	s, err := Decode(format, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}
