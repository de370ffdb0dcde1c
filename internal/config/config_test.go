package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("fingerprints", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Ashlock.Turns != 200 || cfg.Ashlock.Repetitions != 50 {
		t.Errorf("Ashlock = %+v, want 200 turns and 50 repetitions", cfg.Ashlock)
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fingerprint.Kinds(), kinds); diff != "" {
		t.Errorf("Kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{
		"-cache", "x.csv", "-kinds", "transitive,ashlock", "-ashlock-turns", "10",
		"-seed", "7", "-workers", "2", "-force", "-q", "-timeout", "1m",
	}
	cfg, err := ParseConfig("fingerprints", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.CachePath != "x.csv" || !cfg.Force || !cfg.Quiet || cfg.Timeout != time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
	kinds, _ := cfg.Kinds()
	if diff := cmp.Diff([]fingerprint.Kind{fingerprint.Ashlock, fingerprint.Transitive}, kinds); diff != "" {
		t.Errorf("Kinds mismatch (-want +got):\n%s", diff)
	}
	p := cfg.Params()[fingerprint.Ashlock]
	want := fingerprint.Params{Turns: 10, Repetitions: 50, Seed: 7, Workers: 2}
	if p != want {
		t.Errorf("Params()[Ashlock] = %+v, want %+v", p, want)
	}
}

func TestParseConfigValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"zero turns", []string{"-ashlock-turns", "0"}, "ashlock-turns"},
		{"negative repetitions", []string{"-transitive-repetitions", "-1"}, "transitive-repetitions"},
		{"zero opponents", []string{"-opponents", "0"}, "opponents"},
		{"bad step", []string{"-step", "0"}, "step"},
		{"negative workers", []string{"-workers", "-3"}, "workers"},
		{"unknown probe", []string{"-probe", "Nobody"}, "probe"},
		{"unknown kind", []string{"-kinds", "ashlock,spiral"}, "kinds"},
		{"bad log level", []string{"-log-level", "loud"}, "log-level"},
		{"unknown theme", []string{"-theme", "solarized"}, "theme"},
		{"quiet and verbose", []string{"-q", "-v"}, "quiet"},
		{"negative timeout", []string{"-timeout", "-1s"}, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("fingerprints", tt.args, io.Discard)
			var ve apperrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestParseConfigRejectsArguments(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig("fingerprints", []string{"extra"}, io.Discard)
	var ce apperrors.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"OPPONENTS", "5")
	t.Setenv(EnvPrefix+"STEP", "0.25")
	t.Setenv(EnvPrefix+"FORCE", "yes")
	t.Setenv(EnvPrefix+"PROBE", "Cooperator")
	t.Setenv(EnvPrefix+"WORKERS", "not-a-number")
	t.Setenv(EnvPrefix+"THEME", "light")

	cfg, err := ParseConfig("fingerprints", []string{"-probe", "Defector"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Opponents != 5 || cfg.Step != 0.25 || !cfg.Force {
		t.Errorf("environment not applied: %+v", cfg)
	}
	if cfg.Probe != "Defector" {
		t.Errorf("Probe = %q, flag must win over environment", cfg.Probe)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, invalid value must be ignored", cfg.Workers)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fingerprints.yaml")
	content := `
assets: out/assets
opponents: 12
kinds: [Transitive]
ashlock:
  turns: 40
transitive:
  repetitions: 3
timeout: 2m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"OPPONENTS", "8")

	cfg, err := ParseConfig("fingerprints", []string{"-config", path, "-ashlock-turns", "60"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.AssetsDir != "out/assets" {
		t.Errorf("AssetsDir = %q", cfg.AssetsDir)
	}
	if cfg.Opponents != 8 {
		t.Errorf("Opponents = %d, environment must win over file", cfg.Opponents)
	}
	if cfg.Ashlock.Turns != 60 || cfg.Ashlock.Repetitions != 50 {
		t.Errorf("Ashlock = %+v", cfg.Ashlock)
	}
	if cfg.Transitive != (KindParams{Turns: 200, Repetitions: 3}) {
		t.Errorf("Transitive = %+v", cfg.Transitive)
	}
	if cfg.KindsList != "Transitive" || cfg.Timeout != 2*time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestConfigFileFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("seed: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"CONFIG", path)
	cfg, err := ParseConfig("fingerprints", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 99 || cfg.ConfigFile != path {
		t.Errorf("Seed = %d, ConfigFile = %q", cfg.Seed, cfg.ConfigFile)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour: red\n"},
		{"bad timeout", "timeout: soon\n"},
		{"bad type", "opponents: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("err = %v, want ConfigError", err)
			}
		})
	}
	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	if err == nil {
		t.Error("missing file: expected error")
	}
}

func TestEmptyConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile(empty) = %v", err)
	}
}
