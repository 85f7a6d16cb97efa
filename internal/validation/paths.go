package validation

import (
	"os"
	"path/filepath"
)

// PathHandler resolves the local files sift writes.
type PathHandler struct {
	validator *FilePathValidator
}

func NewSecurePathHandler() *PathHandler {
	return &PathHandler{validator: NewFilePathValidator()}
}

func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{validator: NewPermissiveFilePathValidator()}
}

// HistoryPath validates the history database path, defaulting to
// ~/.sift/history.db.
func (ph *PathHandler) HistoryPath(userPath string) (string, error) {
	return ph.file(userPath, "history.db")
}

// LogPath validates the log file path, defaulting to ~/.sift/sift.log.
func (ph *PathHandler) LogPath(userPath string) (string, error) {
	return ph.file(userPath, "sift.log")
}

func (ph *PathHandler) file(userPath, name string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".sift", name)
	}
	return ph.validator.ValidateFile(userPath)
}
