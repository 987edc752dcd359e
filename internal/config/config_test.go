package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.DBPath != nil || cfg.Practice.Skill != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `log-level = "debug"

[onboarding]
days = 5
speaking = 40

[practice]
skill = "reading"
target-divisor = 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug")
	}
	if cfg.Onboarding.DaysPerWeek == nil || *cfg.Onboarding.DaysPerWeek != 5 {
		t.Fatalf("expected days 5")
	}
	if cfg.Onboarding.Speaking == nil || *cfg.Onboarding.Speaking != 40 || cfg.Onboarding.Reading != nil {
		t.Fatalf("unexpected onboarding percentages: %+v", cfg.Onboarding)
	}
	if cfg.Practice.TargetDivisor == nil || *cfg.Practice.TargetDivisor != 2 {
		t.Fatalf("expected target divisor 2")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "practice.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "skilltrack", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "skilltrack", "skilltrack.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
