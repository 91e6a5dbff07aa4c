// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Gemini API credential. Sources are checked in
// order: the process environment, a .env file, then a directory of
// plain-text key files where the filename is the key name and the trimmed
// contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvAPIKey is the environment variable holding the Gemini API key.
	EnvAPIKey = "GEMINI_API_KEY"

	// FileAPIKey is the key file name inside the secrets directory.
	FileAPIKey = "gemini-api-key"
)

// ErrMissingAPIKey is returned when no source provides a key.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " not found in environment, .env file, or secrets directory")

// LoadDotenv loads variables from the named .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("checking %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
		slog.Debug("loaded env file", slog.String("path", f))
	}
	return nil
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", slog.String("name", name), slog.Any("error", err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey returns the Gemini API key from the environment, falling back to
// the gemini-api-key entry of loaded.
func APIKey(loaded map[string]string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v, nil
	}
	if v, ok := loaded[FileAPIKey]; ok && v != "" {
		return v, nil
	}
	return "", ErrMissingAPIKey
}
