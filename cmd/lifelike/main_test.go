package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"lifelike/internal/config"
	"lifelike/internal/sims/lifelike"
	"lifelike/internal/store"
)

// isolate points HOME and the slot store at a temp dir and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"LIFELIKE_WIDTH", "LIFELIKE_HEIGHT", "LIFELIKE_SEED", "LIFELIKE_RULE",
		"LIFELIKE_PRESET", "LIFELIKE_AUTO_REAP", "LIFELIKE_PATTERN",
		"LIFELIKE_INTERVAL", "LIFELIKE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	path := filepath.Join(dir, "slots.db")
	t.Setenv("LIFELIKE_STORE", path)
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "run", "--set", "w=20", "--set", "h=10", "--steps", "50", "--print")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"steps:      50", "rule:       B3/S23", "reseeds:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	var rows int
	for _, line := range strings.Split(out, "\n") {
		if len(line) == 20 && strings.Trim(line, "#.") == "" {
			rows++
		}
	}
	if rows != 10 {
		t.Errorf("printed %d grid rows, want 10", rows)
	}
}

func TestRunCmd_Preset(t *testing.T) {
	isolate(t)
	out, err := execute(t, "run", "--preset", "highlife", "--set", "w=16", "--set", "h=16", "--steps", "5")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "B36/S23") {
		t.Errorf("expected highlife rule in output:\n%s", out)
	}
}

func TestRunCmd_UnknownPattern(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "run", "--steps", "1", "--pattern", "spiral"); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
}

func TestRunCmd_BadSet(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "run", "--set", "nonsense"); err == nil {
		t.Fatal("expected error for malformed --set")
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides([]string{"w=40", " rule = B36/S23 "})
	if err != nil {
		t.Fatalf("parseOverrides: %v", err)
	}
	if got["w"] != "40" || got["rule"] != "B36/S23" {
		t.Errorf("parseOverrides = %v", got)
	}
	for _, bad := range []string{"w", "=5"} {
		if _, err := parseOverrides([]string{bad}); err == nil {
			t.Errorf("parseOverrides(%q): expected error", bad)
		}
	}
}

func TestRulesCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	for _, p := range lifelike.Presets {
		if !strings.Contains(out, p.Name) {
			t.Errorf("rules output missing preset %q", p.Name)
		}
	}

	out, err = execute(t, "rules", "B36/S23")
	if err != nil {
		t.Fatalf("rules B36/S23: %v", err)
	}
	if !strings.Contains(out, "birth [3 6]") || !strings.Contains(out, "survival [2 3]") {
		t.Errorf("unexpected rule description: %q", out)
	}

	if _, err := execute(t, "rules", "B9/S23"); err == nil {
		t.Error("expected error for invalid rule")
	}
}

func TestSurveyCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "survey", "--set", "w=24", "--set", "h=24",
		"--runs", "4", "--steps", "50", "--workers", "2")
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header plus 4 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "SEED") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestSurvey_Deterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Width, cfg.Sim.Height = 20, 20

	a, err := survey(context.Background(), cfg, 3, 120, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := survey(context.Background(), cfg, 3, 120, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs across worker counts: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].seed != cfg.Sim.Seed+int64(i) {
			t.Errorf("run %d seed = %d", i, a[i].seed)
		}
	}
}

func TestSlotsCmd(t *testing.T) {
	path := isolate(t)

	out, err := execute(t, "slots", "list")
	if err != nil {
		t.Fatalf("slots list: %v", err)
	}
	if !strings.Contains(out, "No slots stored.") {
		t.Errorf("empty list output = %q", out)
	}

	sel := lifelike.Selection{W: 3, H: 2, Offsets: []lifelike.Point{{X: 0, Y: 0}, {X: 2, Y: 1}}}
	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	s, err := store.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, 4, data); err != nil {
		t.Fatal(err)
	}
	s.Close()

	out, err = execute(t, "slots", "list")
	if err != nil {
		t.Fatalf("slots list: %v", err)
	}
	if !strings.Contains(out, "3x2") {
		t.Errorf("list output missing slot size:\n%s", out)
	}

	out, err = execute(t, "slots", "show", "4")
	if err != nil {
		t.Fatalf("slots show: %v", err)
	}
	if out != "#..\n..#\n" {
		t.Errorf("show output = %q", out)
	}

	if _, err := execute(t, "slots", "delete", "4"); err != nil {
		t.Fatalf("slots delete: %v", err)
	}
	if _, err := execute(t, "slots", "show", "4"); !errors.Is(err, store.ErrSlotEmpty) {
		t.Errorf("show after delete: err = %v, want ErrSlotEmpty", err)
	}
	if _, err := execute(t, "slots", "show", "12"); !errors.Is(err, store.ErrInvalidSlot) {
		t.Errorf("show 12: err = %v, want ErrInvalidSlot", err)
	}
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q", out)
	}
}
