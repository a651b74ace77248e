package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/makemusic/internal/config"
	"github.com/dyluth/makemusic/internal/printer"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes a starter makemusic.yml into dir.
// If force is true, an existing makemusic.yml is removed first.
func Initialize(dir string, force bool) error {
	if force {
		if err := handleForce(dir); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles(dir)
	if err != nil {
		return err
	}

	if err := writeFiles(files); err != nil {
		return err
	}

	return validateCreatedFiles(dir)
}

// handleForce removes existing files if --force was specified
func handleForce(dir string) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		printer.Warning("Removing existing %s...\n", config.FileName)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", config.FileName, err)
		}
	}

	return nil
}

// getTemplateFiles reads all template files
func getTemplateFiles(dir string) ([]FileInfo, error) {
	content, err := templatesFS.ReadFile("templates/makemusic.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", config.FileName, err)
	}

	return []FileInfo{{
		Path:        filepath.Join(dir, config.FileName),
		Content:     content,
		Permissions: 0644,
	}}, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles loads the written config through the normal loader,
// so a broken template fails here rather than on first use
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, config.FileName)); err != nil {
		return fmt.Errorf("created %s is not valid: %w", config.FileName, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	printer.Success("Successfully initialized makemusic!\n")
	printer.Println("\nCreated:")
	printer.Printf("  ✓ %s\n", config.FileName)
	printer.Println("\nNext steps:")
	printer.Println("  1. Change the seed or layout in makemusic.yml")
	printer.Println("  2. Run 'makemusic generate > tune.abc' to write your first tune")
	printer.Println("  3. Uncomment the archive section to keep tunes in Redis")
}
