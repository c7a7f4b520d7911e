package io

import (
	"fmt"
	"os"
)

// FileExists reports whether a regular file exists at the given path.
func FileExists(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to check for existence of file at path '%s': %w", filePath, err)
	case info.IsDir():
		return false, fmt.Errorf("path '%s' is a directory, not a file", filePath)
	default:
		return true, nil
	}
}

// DirExists reports whether a directory exists at the given path.
func DirExists(dirPath string) (bool, error) {
	info, err := os.Stat(dirPath)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to check for existence of directory at path '%s': %w", dirPath, err)
	default:
		return info.IsDir(), nil
	}
}
