// Package testutil generates deterministic directory trees on disk for
// traversal and cache tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TreeConfig defines the structure of a generated filesystem tree.
type TreeConfig struct {
	// Depth is the maximum depth of the directory tree (0 = root only).
	Depth int

	// BreadthPerDir is the number of subdirectories at each level.
	BreadthPerDir int

	// FilesPerDir is the number of files in each directory.
	FilesPerDir int

	// FileSize is the size of each generated file in bytes.
	FileSize int
}

// DefaultTreeConfig returns a reasonable default configuration for testing.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Depth:         3,
		BreadthPerDir: 2,
		FilesPerDir:   3,
		FileSize:      1024,
	}
}

// WriteTree materializes the configured tree under root, which must be an
// existing directory.
func WriteTree(root string, config TreeConfig) error {
	return writeLevel(root, 0, config)
}

func writeLevel(dir string, depth int, config TreeConfig) error {
	for i := 0; i < config.FilesPerDir; i++ {
		name := filepath.Join(dir, fmt.Sprintf("file%d.txt", i))
		if err := os.WriteFile(name, makeFileContent(name, config.FileSize), 0o644); err != nil {
			return err
		}
	}
	if depth >= config.Depth {
		return nil
	}
	for i := 0; i < config.BreadthPerDir; i++ {
		sub := filepath.Join(dir, fmt.Sprintf("dir%d", i))
		if err := os.Mkdir(sub, 0o755); err != nil {
			return err
		}
		if err := writeLevel(sub, depth+1, config); err != nil {
			return err
		}
	}
	return nil
}

// makeFileContent generates file content of the specified size. The content
// is deterministic based on the file path for reproducibility.
func makeFileContent(filePath string, size int) []byte {
	if size == 0 {
		return []byte{}
	}
	content := make([]byte, size)
	pattern := []byte(fmt.Sprintf("Content for %s\n", filePath))
	for i := 0; i < size; i++ {
		content[i] = pattern[i%len(pattern)]
	}
	return content
}

// CountExpectedDirs calculates how many directories the config generates,
// including the root.
func CountExpectedDirs(config TreeConfig) int {
	dirs := 0
	level := 1
	for d := 0; d <= config.Depth; d++ {
		dirs += level
		level *= config.BreadthPerDir
	}
	return dirs
}

// CountExpectedFiles calculates how many files the config generates.
func CountExpectedFiles(config TreeConfig) int {
	return CountExpectedDirs(config) * config.FilesPerDir
}

// TotalBytes is the sum of all generated regular-file byte lengths.
func TotalBytes(config TreeConfig) uint64 {
	return uint64(CountExpectedFiles(config)) * uint64(config.FileSize)
}
