package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilePathValidator_ValidateAndSanitize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	v := NewPermissiveFilePathValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{name: "empty", input: "", shouldError: true, errorMsg: "cannot be empty"},
		{name: "tilde expansion", input: "~/.sift/history.db", expected: filepath.Join(home, ".sift", "history.db")},
		{name: "absolute kept", input: "/var/lib/sift/history.db", expected: "/var/lib/sift/history.db"},
		{name: "cleaned", input: "/var/lib//sift/./history.db", expected: "/var/lib/sift/history.db"},
		{name: "traversal", input: "/var/lib/../etc/passwd", shouldError: true, errorMsg: "traversal"},
		{name: "relative traversal", input: "../secret.db", shouldError: true, errorMsg: "traversal"},
		{name: "null byte", input: "/tmp/a\x00b", shouldError: true, errorMsg: "null bytes"},
		{name: "control character", input: "/tmp/a\nb", shouldError: true, errorMsg: "control characters"},
		{name: "other user's home", input: "~root/.sift", shouldError: true, errorMsg: "tilde"},
		{name: "UNC path", input: `\\server\share\db`, shouldError: true, errorMsg: "UNC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateAndSanitize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error containing %q, got %q", tt.errorMsg, result)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ValidateAndSanitize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFilePathValidator_RelativeBecomesAbsolute(t *testing.T) {
	v := NewPermissiveFilePathValidator()
	result, err := v.ValidateAndSanitize("history.db")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(result) {
		t.Errorf("expected absolute path, got %q", result)
	}
}

func TestFilePathValidator_AllowedBaseDirs(t *testing.T) {
	base := t.TempDir()
	v := &FilePathValidator{AllowedBaseDirs: []string{base}, MaxPathLength: 4096}

	if _, err := v.ValidateAndSanitize(filepath.Join(base, "history.db")); err != nil {
		t.Errorf("path inside base dir rejected: %v", err)
	}
	if _, err := v.ValidateAndSanitize(filepath.Join(base, "nested", "sift.log")); err != nil {
		t.Errorf("nested path inside base dir rejected: %v", err)
	}
	if _, err := v.ValidateAndSanitize("/etc/sift.db"); err == nil {
		t.Error("path outside base dirs accepted")
	}
	if _, err := v.ValidateAndSanitize(base + "-sibling/x.db"); err == nil {
		t.Error("sibling directory with shared prefix accepted")
	}
}

func TestFilePathValidator_SecureDefaults(t *testing.T) {
	v := NewFilePathValidator()
	if len(v.AllowedBaseDirs) == 0 {
		t.Fatal("secure validator should restrict directories")
	}
	if _, err := v.ValidateAndSanitize(filepath.Join(os.TempDir(), "sift-test.db")); err != nil {
		t.Errorf("temp dir should be allowed: %v", err)
	}
}

func TestFilePathValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	v := NewPermissiveFilePathValidator()

	if _, err := v.ValidateFile(dir); err == nil {
		t.Error("directory accepted as a file")
	}

	file := filepath.Join(dir, "history.db")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, err := v.ValidateFile(file); err != nil || got != file {
		t.Errorf("ValidateFile(%q) = %q, %v", file, got, err)
	}

	missing := filepath.Join(dir, "missing.db")
	if _, err := v.ValidateFile(missing); err != nil {
		t.Errorf("a file that does not exist yet should validate: %v", err)
	}
}
