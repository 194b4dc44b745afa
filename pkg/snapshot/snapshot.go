package snapshot

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/treedump/pkg/errors"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Snapshot is a decoded tree description.
type Snapshot struct {
	Root *Node `json:"root" yaml:"root" toml:"root"`
}

// Node describes one widget.
type Node struct {
	Class      string         `json:"class" yaml:"class" toml:"class"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Composite  bool           `json:"composite,omitempty" yaml:"composite,omitempty" toml:"composite,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Packing    map[string]any `json:"packing,omitempty" yaml:"packing,omitempty" toml:"packing,omitempty"`
	Children   []*Node        `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q (want toml, yaml or json)", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer snapshot format of %s", path)
	}
	return ParseFormat(ext)
}
