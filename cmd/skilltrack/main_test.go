package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/skilltrack/internal/config"
	"github.com/verte-zerg/skilltrack/internal/quotes"
)

type cliEnv struct {
	db     string
	config string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		db:     filepath.Join(dir, "skilltrack.db"),
		config: filepath.Join(dir, "config.toml"),
	}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", e.db, "--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
}

func TestCommandsRequireProfile(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "goals")
	if err == nil || !strings.Contains(err.Error(), "skilltrack init") {
		t.Fatalf("expected init hint, got %v", err)
	}
}

func TestInitUsesConfigDefaults(t *testing.T) {
	env := newCLIEnv(t)
	cfg := "[onboarding]\ndays = 5\nminutes = 30\n"
	if err := os.WriteFile(env.config, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := env.mustRun(t, "init", "--minutes", "20")
	if !strings.Contains(out, "Budget: 5 days × 20 min") {
		t.Fatalf("expected config days and flag minutes:\n%s", out)
	}

	if _, err := env.run(t, "init"); err == nil {
		t.Fatalf("expected second init to fail")
	}
}

func TestPracticeFlow(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")

	out := env.mustRun(t, "log", "--skill", "speaking", "--minutes", "10", "--day", "monday")
	if !strings.Contains(out, "Logged 10 min of speaking on monday") {
		t.Fatalf("unexpected log output:\n%s", out)
	}
	env.mustRun(t, "log", "--skill", "reading", "--minutes", "4", "--day", "tuesday")
	out = env.mustRun(t, "week")
	if !strings.Contains(out, "State: active") || !strings.Contains(out, "50%") {
		t.Fatalf("expected active week with speaking at 50%%:\n%s", out)
	}
	if !strings.Contains(out, "Most practiced: speaking, reading\n") {
		t.Fatalf("expected skills ranked by minutes:\n%s", out)
	}
	if q := quotes.ForWeek(1); !strings.Contains(out, q.Translation) {
		t.Fatalf("expected the week 1 quote:\n%s", out)
	}

	out = env.mustRun(t, "reflect", "--hard-work", "mucho", "--on-track", "si", "--mood", "bien", "--stars", "4")
	if !strings.Contains(out, "Reflection saved for week 1") || !strings.Contains(out, "Stars: ****") {
		t.Fatalf("unexpected reflect output:\n%s", out)
	}
	if _, err := env.run(t, "reflect", "--hard-work", "x", "--on-track", "y", "--mood", "z", "--stars", "6"); err == nil {
		t.Fatalf("expected stars out of range to fail")
	}

	env.mustRun(t, "motivation", "Feliz")
	if _, err := env.run(t, "motivation", "Contento"); err == nil {
		t.Fatalf("expected unknown motivation to fail")
	}

	out = env.mustRun(t, "stats")
	for _, want := range []string{"Summary", "Total practice: 14 min", "Motivation: Feliz", "Weekly History"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestPlanEditsKeepStoredPlanComplete(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")

	out, err := env.run(t, "plan", "set", "--cell", "monday:listening=10")
	if err == nil || !strings.Contains(err.Error(), "listening over by 6 min") {
		t.Fatalf("expected incomplete plan error, got %v\n%s", err, out)
	}
	env.mustRun(t, "plan", "check")

	out = env.mustRun(t, "plan", "set", "--cell", "monday:listening=0", "--cell", "friday:listening=4")
	if !strings.Contains(out, "Plan saved") {
		t.Fatalf("expected moved minutes to save:\n%s", out)
	}
	out = env.mustRun(t, "plan", "export", "--format", "json")
	if !strings.Contains(out, "\"friday\": {\n    \"listening\": 4,") {
		t.Fatalf("expected friday listening in exported plan:\n%s", out)
	}
	env.mustRun(t, "plan", "check")

	out = env.mustRun(t, "plan", "auto", "--skill", "listening")
	if !strings.Contains(out, "Plan saved") {
		t.Fatalf("expected auto distribution to save:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	env.mustRun(t, "plan", "export", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"listening"`) {
		t.Fatalf("unexpected export:\n%s", data)
	}

	env.mustRun(t, "plan", "reset")
	out = env.mustRun(t, "plan", "import", path)
	if !strings.Contains(out, "Plan saved") {
		t.Fatalf("expected import to save:\n%s", out)
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")
	if _, err := env.run(t, "reset"); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}
	env.mustRun(t, "reset", "--yes")
	env.mustRun(t, "init")
}
