package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir     = ".abook"
	configFile = "config.yaml"
	logFile    = "abook.log"
)

// Storage resolves the files the app reads and writes locally. Contacts
// themselves live on the server; only exports, logs and config live here.
type Storage struct {
	dataDir string
}

func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewStorageAt(filepath.Join(homeDir, appDir))
}

func NewStorageAt(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) ConfigPath() string {
	return filepath.Join(s.dataDir, configFile)
}

func (s *Storage) LogPath() string {
	return filepath.Join(s.dataDir, logFile)
}

// ExportPath returns where an export named name should be written, creating
// dir first. An empty dir means the data directory.
func (s *Storage) ExportPath(dir, name string) (string, error) {
	if dir == "" {
		dir = s.dataDir
	}

	dir, err := expandHome(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return filepath.Join(dir, name), nil
}

// ResolveImportPath cleans a user-typed path and checks it names a readable
// regular file.
func (s *Storage) ResolveImportPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("no file selected")
	}

	path, err := expandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", abs, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", abs)
	}

	return abs, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
