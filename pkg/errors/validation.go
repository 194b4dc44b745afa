package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// classNameRegex matches toolkit class names such as "GtkButton".
var classNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// propertyNameRegex matches canonical property names such as "mnemonic-widget".
var propertyNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateClassName validates a widget class name.
func ValidateClassName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "class name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidName, "class name too long (max 128 characters)")
	}
	if !classNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid class name: %q", name)
	}
	return nil
}

// ValidatePropertyName validates a canonical (dash separated, lower case)
// property name.
func ValidatePropertyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "property name cannot be empty")
	}
	if !propertyNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid property name: %q", name)
	}
	return nil
}

// ValidateWidgetName validates an explicit widget name. Names are used
// verbatim as markup ids, so control characters are rejected.
func ValidateWidgetName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidName, "widget name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "widget name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path within a repository for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
