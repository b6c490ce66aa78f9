package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// sessionFile is the on-disk form of a login.
type sessionFile struct {
	Server  string    `yaml:"server"`
	Email   string    `yaml:"email"`
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// loadSession returns (nil, nil) when no session was saved.
func loadSession(path string) (*sessionFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sf sessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if sf.Token == "" {
		return nil, nil
	}
	return &sf, nil
}

func storeSession(path string, sf sessionFile) error {
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
