package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type Settings struct {
	DarkMode bool `json:"dark_mode" yaml:"dark_mode"`
}

func DefaultSettings() Settings {
	return Settings{DarkMode: false}
}

// LoadSettings reads the settings file, falling back to defaults when the
// file is missing or malformed.
func LoadSettings(path string) Settings {
	s, _ := ReadSettings(path)
	return s
}

// ReadSettings is LoadSettings that also reports what it recovered from.
// The returned settings are always usable.
func ReadSettings(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("read settings file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return DefaultSettings(), nil
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings file: %w", err)
	}
	return s, nil
}

func SaveSettings(s Settings, path string) error {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := writeFileAtomic(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings file %s: %w", path, err)
	}
	return nil
}
