package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/makemusic/internal/config"
)

// CheckExisting returns an error if dir already holds a makemusic.yml
func CheckExisting(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("already initialized\n\nFound existing: %s\n\nUse 'makemusic init --force' to reinitialize (this will overwrite existing configuration)", config.FileName)
	}

	return nil
}
