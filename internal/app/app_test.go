package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/agbru/fingerprints/internal/artifact"
	"github.com/agbru/fingerprints/internal/cache"
	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/progress"
	"github.com/agbru/fingerprints/internal/report"
)

// fakeFingerprinter writes empty artifacts and records every call.
type fakeFingerprinter struct {
	dir  string
	fail map[string]bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeFingerprinter) Paths(kind fingerprint.Kind, name string) artifact.Files {
	return artifact.Paths(f.dir, kind, name)
}

func (f *fakeFingerprinter) Generate(_ context.Context, _ game.Player, name string, kind fingerprint.Kind, cb progress.ProgressCallback) (artifact.Files, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name+"/"+string(kind))
	f.mu.Unlock()
	if f.fail[name] {
		return artifact.Files{}, errors.New("simulated failure")
	}
	files := f.Paths(kind, name)
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return artifact.Files{}, err
	}
	for _, p := range []string{files.Image, files.Data} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return artifact.Files{}, err
		}
	}
	cb(1)
	return files, nil
}

func (f *fakeFingerprinter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fixture struct {
	dir    string
	fp     *fakeFingerprinter
	groups []orchestration.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir: dir,
		fp:  &fakeFingerprinter{dir: filepath.Join(dir, "assets"), fail: map[string]bool{}},
		groups: []orchestration.Group{
			{Title: report.LibraryGroup, Players: []game.Player{game.Cooperator{}, game.TitForTat{}}},
		},
	}
}

func (fx *fixture) run(t *testing.T, extra ...string) (int, string, string) {
	t.Helper()
	args := append([]string{
		"fingerprints",
		"-cache", filepath.Join(fx.dir, "db.csv"),
		"-assets", filepath.Join(fx.dir, "assets"),
		"-report", filepath.Join(fx.dir, "README.md"),
		"-kinds", "ashlock",
		"-no-color",
	}, extra...)
	var stdout, stderr bytes.Buffer
	application, err := New(args, &stderr, WithGroups(fx.groups...), WithFingerprinter(fx.fp))
	if err != nil {
		t.Fatalf("New: %v (stderr: %s)", err, stderr.String())
	}
	code := application.Run(context.Background(), &stdout)
	return code, stdout.String(), stderr.String()
}

func TestRunUpdate(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	code, stdout, _ := fx.run(t, "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if want := "computed=2 cached=0 failed=0"; !strings.Contains(stdout, want) {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	entries, err := cache.Read(filepath.Join(fx.dir, "db.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("cache has %d entries, want 2", len(entries))
	}

	readme, err := os.ReadFile(filepath.Join(fx.dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"## Cooperator", "## Tit For Tat", "./assets/Tit_For_Tat.png", "| Ashlock | 200 | 50 |"} {
		if !strings.Contains(string(readme), want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(string(readme), "| Transitive |") {
		t.Error("report must only list the selected kinds")
	}

	code, stdout, _ = fx.run(t, "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("second run exit code = %d", code)
	}
	if want := "computed=0 cached=2 failed=0"; !strings.Contains(stdout, want) {
		t.Errorf("second run stdout = %q, want %q", stdout, want)
	}
	if fx.fp.count() != 2 {
		t.Errorf("Generate called %d times, want 2", fx.fp.count())
	}
}

func TestRunPartialFailure(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	fx.fp.fail["Tit For Tat"] = true

	code, stdout, stderr := fx.run(t)
	if code != apperrors.ExitErrorPartial {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorPartial)
	}
	if !strings.Contains(stdout, "1 computed, 0 cached, 1 failed") {
		t.Errorf("summary missing counts:\n%s", stdout)
	}
	if !strings.Contains(stderr, "simulated failure") {
		t.Errorf("stderr must report the failure:\n%s", stderr)
	}
	if _, err := os.Stat(filepath.Join(fx.dir, "README.md")); err != nil {
		t.Errorf("report must be written after a partial failure: %v", err)
	}
}

func TestRunList(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	code, stdout, _ := fx.run(t, "-list")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "* Cooperator (Ashlock)") || !strings.Contains(stdout, "2 of 2 fingerprints to compute") {
		t.Errorf("unexpected plan:\n%s", stdout)
	}
	if fx.fp.count() != 0 {
		t.Error("-list must not compute")
	}
	if _, err := os.Stat(filepath.Join(fx.dir, "README.md")); !os.IsNotExist(err) {
		t.Error("-list must not write the report")
	}
}

func TestRunCompactAndMetrics(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	metricsFile := filepath.Join(fx.dir, "fingerprints.prom")

	if code, _, _ := fx.run(t, "-q"); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	code, _, _ := fx.run(t, "-q", "-force", "-compact", "-metrics-file", metricsFile)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	data, err := os.ReadFile(filepath.Join(fx.dir, "db.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("compacted cache has %d lines, want 2", lines)
	}
	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), `fingerprints_computed_total{kind="Ashlock"} 2`) {
		t.Errorf("metrics textfile missing counter:\n%s", prom)
	}
}

func TestRunVerboseAndPreview(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	code, stdout, _ := fx.run(t, "-v", "-preview")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"--- Execution Configuration ---", "--- Update Summary ---", "Memory: heap", "System:", "Ashlock and transitive fingerprints"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q", want)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	var stderr bytes.Buffer
	application, err := New([]string{"fingerprints", "-cache", filepath.Join(fx.dir, "db.csv"), "-q", "-no-color"}, &stderr,
		WithGroups(fx.groups...), WithFingerprinter(fx.fp))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := application.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if fx.fp.count() != 0 {
		t.Error("canceled run must not compute")
	}
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	var stderr bytes.Buffer
	application, err := New([]string{"fingerprints", "-cache", filepath.Join(fx.dir, "db.csv"),
		"-report", filepath.Join(fx.dir, "README.md"), "-timeout", "1ns", "-q", "-no-color"}, &stderr,
		WithGroups(fx.groups...), WithFingerprinter(fx.fp))
	if err != nil {
		t.Fatal(err)
	}
	if code := application.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if want := `operation "update" timed out after 1ns`; !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr should contain %q, got:\n%s", want, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(fx.dir, "README.md")); !os.IsNotExist(err) {
		t.Error("a timed out run must not write the report")
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"fingerprints", "-h"}, true},
		{"unknown flag", []string{"fingerprints", "-nope"}, false},
		{"invalid value", []string{"fingerprints", "-step", "2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, !tt.help, tt.help)
			}
		})
	}
}

func TestRunCompletionAndVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want string
		code int
	}{
		{[]string{"fingerprints", "-completion", "bash"}, "_fingerprints_completions", apperrors.ExitSuccess},
		{[]string{"fingerprints", "-completion", "tcsh"}, "", apperrors.ExitErrorConfig},
		{[]string{"fingerprints", "-version"}, "fingerprints dev", apperrors.ExitSuccess},
	}
	for _, tt := range tests {
		var stdout bytes.Buffer
		application, err := New(tt.args, &bytes.Buffer{})
		if err != nil {
			t.Fatal(err)
		}
		if code := application.Run(context.Background(), &stdout); code != tt.code {
			t.Errorf("%v: exit code = %d, want %d", tt.args, code, tt.code)
		}
		if !strings.Contains(stdout.String(), tt.want) {
			t.Errorf("%v: stdout missing %q", tt.args, tt.want)
		}
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	if !HasVersionFlag([]string{"-q", "--version"}) {
		t.Error("--version not detected")
	}
	if HasVersionFlag([]string{"-v"}) {
		t.Error("-v is verbose, not version")
	}
}
