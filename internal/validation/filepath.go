package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const maxPathLength = 4096

var errTraversal = errors.New("directory traversal not allowed")

// FilePathValidator checks the local files sift writes: the history
// database and the log file.
type FilePathValidator struct {
	// AllowedBaseDirs restricts paths to these directories. Empty allows all.
	AllowedBaseDirs []string
	// AllowHomeExpansion lets "~/" stand for the user's home directory.
	AllowHomeExpansion bool
	MaxPathLength      int
}

// NewFilePathValidator keeps files under ~/.sift, ~/.config/sift or the
// system temp directory.
func NewFilePathValidator() *FilePathValidator {
	v := NewPermissiveFilePathValidator()
	if home, err := os.UserHomeDir(); err == nil {
		v.AllowedBaseDirs = append(v.AllowedBaseDirs,
			filepath.Join(home, ".sift"),
			filepath.Join(home, ".config", "sift"),
		)
	}
	v.AllowedBaseDirs = append(v.AllowedBaseDirs, os.TempDir())
	return v
}

// NewPermissiveFilePathValidator accepts any directory.
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{AllowHomeExpansion: true, MaxPathLength: maxPathLength}
}

// ValidateAndSanitize returns the cleaned absolute form of path.
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	switch {
	case path == "":
		return "", errors.New("path cannot be empty")
	case v.MaxPathLength > 0 && len(path) > v.MaxPathLength:
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	case strings.HasPrefix(path, `\\`):
		return "", errors.New("UNC paths are not supported")
	}
	if err := checkRunes(path); err != nil {
		return "", err
	}
	if hasParentRef(path) {
		return "", errTraversal
	}

	abs, err := v.absolute(path)
	if err != nil {
		return "", err
	}
	if !v.allowed(abs) {
		return "", fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
	}
	return abs, nil
}

// ValidateFile is ValidateAndSanitize plus a check that path is not an
// existing directory. A file that does not exist yet is fine.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	clean, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(clean); statErr == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", clean)
	}
	return clean, nil
}

func checkRunes(path string) error {
	for _, r := range path {
		if r == 0 {
			return errors.New("path contains null bytes")
		}
		if unicode.IsControl(r) && r != '\t' {
			return errors.New("path contains control characters")
		}
	}
	return nil
}

// hasParentRef reports a ".." element under either separator, before any
// cleaning can hide it.
func hasParentRef(path string) bool {
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

func (v *FilePathValidator) absolute(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		if !v.AllowHomeExpansion || (path != "~" && !strings.HasPrefix(path, "~/")) {
			return "", errors.New("path normalization failed: tilde expansion not allowed or invalid tilde usage")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("path normalization failed: cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("path normalization failed: %w", err)
	}
	return abs, nil
}

func (v *FilePathValidator) allowed(path string) bool {
	if len(v.AllowedBaseDirs) == 0 {
		return true
	}
	for _, dir := range v.AllowedBaseDirs {
		base, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(base, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
