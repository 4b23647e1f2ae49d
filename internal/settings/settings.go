// Package settings loads the application settings file.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
)

// officialAuthoritySteamID is the account permitted to mutate and publish
// the official-tier documents. Every other instance treats the official tier
// as read-only and may auto-update it.
const officialAuthoritySteamID = "76561198053621506"

// MaxSettingsFileSize bounds the settings file read (1MB).
const MaxSettingsFileSize = 1 * 1024 * 1024

// Settings is the application configuration. Zero values fall back to
// defaults at load time.
type Settings struct {
	// ConfigDir is the directory rule and list documents live in.
	ConfigDir string `yaml:"config_dir"`

	// TFLogPath is the TF2 console.log file to watch (requires -condebug).
	TFLogPath string `yaml:"tf2_log_path"`

	// AllowInternet enables remote refresh of auto-updatable documents.
	AllowInternet bool `yaml:"allow_internet"`

	// SteamID is the local account's SteamID64.
	SteamID string `yaml:"steam_id"`
}

// Default returns settings with every field at its default.
func Default() *Settings {
	return &Settings{
		ConfigDir: configfiles.DefaultDir(),
	}
}

// DefaultPath returns the default settings file location, under the
// platform's user config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tf2-bot-detector", "settings.yaml")
}

// Load reads settings from path. A missing file is not an error: defaults
// are returned, so a fresh install works without any setup.
func Load(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSettingsFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if len(data) > MaxSettingsFileSize {
		return nil, errors.New("settings file too large")
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s.ConfigDir == "" {
		s.ConfigDir = configfiles.DefaultDir()
	}

	return s, nil
}

// IsOfficial reports whether this instance is the official authority for
// curated documents.
func (s *Settings) IsOfficial() bool {
	return s.SteamID == officialAuthoritySteamID
}

// Fetcher returns the remote fetcher documents may auto-update through, or
// nil when internet connectivity is disabled in the settings.
func (s *Settings) Fetcher() configfiles.Fetcher {
	if !s.AllowInternet {
		return nil
	}
	return &configfiles.HTTPFetcher{}
}
