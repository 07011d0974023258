package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFilename strips control characters from a project name and
// replaces path-hostile runes so the result is safe as an output
// filename. maxLen > 0 truncates the result to that many runes.
func SanitizeFilename(name string, maxLen int) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		}
		switch r {
		case ' ', '-', '_', '.', ',', '(', ')':
			return r
		}
		return '_'
	}, name)

	cleaned := strings.TrimSpace(mapped)
	if maxLen > 0 {
		if runes := []rune(cleaned); len(runes) > maxLen {
			cleaned = string(runes[:maxLen])
		}
	}
	return cleaned
}

// ValidateOutputDir checks that dir exists, is a directory and contains
// no path traversal.
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("output dir is required")
	}

	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == ".." {
			return errors.New("output dir cannot contain path traversal")
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output dir does not exist: %s", dir)
		}
		return fmt.Errorf("invalid output dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output dir is not a directory: %s", dir)
	}
	return nil
}
