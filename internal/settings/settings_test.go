package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ConfigDir != configfiles.DefaultDir() {
		t.Errorf("ConfigDir = %q, want default", s.ConfigDir)
	}
	if s.AllowInternet {
		t.Error("AllowInternet must default to false")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := strings.Join([]string{
		"config_dir: /tmp/cfg",
		"tf2_log_path: /games/tf/console.log",
		"allow_internet: true",
		"steam_id: \"76561198000000000\"",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ConfigDir != "/tmp/cfg" {
		t.Errorf("ConfigDir = %q, want /tmp/cfg", s.ConfigDir)
	}
	if s.TFLogPath != "/games/tf/console.log" {
		t.Errorf("TFLogPath = %q", s.TFLogPath)
	}
	if !s.AllowInternet {
		t.Error("AllowInternet = false, want true")
	}
	if s.SteamID != "76561198000000000" {
		t.Errorf("SteamID = %q", s.SteamID)
	}
}

func TestLoad_EmptyConfigDirFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("allow_internet: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ConfigDir != configfiles.DefaultDir() {
		t.Errorf("ConfigDir = %q, want default", s.ConfigDir)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("config_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed yaml")
	}
}

func TestIsOfficial(t *testing.T) {
	s := Default()
	if s.IsOfficial() {
		t.Error("default settings must not be official")
	}

	s.SteamID = officialAuthoritySteamID
	if !s.IsOfficial() {
		t.Error("authority steam id must be official")
	}
}

func TestFetcher(t *testing.T) {
	s := Default()
	if s.Fetcher() != nil {
		t.Error("Fetcher() must be nil when internet is disabled")
	}

	s.AllowInternet = true
	if s.Fetcher() == nil {
		t.Error("Fetcher() must be non-nil when internet is allowed")
	}
}
