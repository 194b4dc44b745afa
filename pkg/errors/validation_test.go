package errors

import "testing"

func TestValidateClassName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"GtkButton", false},
		{"My_Widget2", false},
		{"", true},
		{"2Gtk", true},
		{"Gtk Button", true},
		{"Gtk-Button", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateClassName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClassName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateClassName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePropertyName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"label", false},
		{"mnemonic-widget", false},
		{"x-options", false},
		{"", true},
		{"Label", true},
		{"use_stock", true},
		{"-label", true},
		{"label-", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidatePropertyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePropertyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWidgetName(t *testing.T) {
	if err := ValidateWidgetName("submit-btn"); err != nil {
		t.Errorf("ValidateWidgetName() unexpected error: %v", err)
	}
	if err := ValidateWidgetName(""); err != nil {
		t.Errorf("empty names are allowed (unnamed widgets): %v", err)
	}
	if err := ValidateWidgetName("bad\nname"); err == nil {
		t.Error("ValidateWidgetName() should reject control characters")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "ui/main.toml", false},
		{"valid filename only", "window.yaml", false},
		{"valid with dots", "v1.2.3/dialog.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidSnapshot,
		ErrCodeInvalidName,
		ErrCodeInvalidPath,
		ErrCodeTypeMismatch,
		ErrCodeUnknownClass,
		ErrCodeUnknownProperty,
		ErrCodeUnknownEnum,
		ErrCodeNotContainer,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeOutput,
		ErrCodeScript,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
