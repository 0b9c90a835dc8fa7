package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles writes outputs to disk and returns the paths that changed.
// Files whose content is already up to date are left untouched.
func WriteFiles(outputs []OutputFile) ([]string, error) {
	var written []string
	for _, file := range outputs {
		existing, err := os.ReadFile(file.Path)
		if err == nil && bytes.Equal(existing, file.Content) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
			return written, fmt.Errorf("create dir %s: %w", filepath.Dir(file.Path), err)
		}
		if err := os.WriteFile(file.Path, file.Content, 0o644); err != nil {
			return written, fmt.Errorf("write file %s: %w", file.Path, err)
		}
		written = append(written, file.Path)
	}
	return written, nil
}
