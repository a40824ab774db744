package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestStyleDisabledByDefault(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "style", "status")
	if err != nil {
		t.Fatalf("style status: %v", err)
	}
	requireContains(t, out, "[WARN] Disabled")

	out, err = env.run(t, "style", "track", "shotType", "close-up")
	if err != nil {
		t.Fatalf("style track: %v", err)
	}
	requireContains(t, out, "Style learning is disabled")

	if _, err := env.run(t, "style", "export"); err == nil {
		t.Fatal("expected export to fail while disabled")
	}

	out, err = env.run(t, "--json", "style", "suggest")
	if err != nil {
		t.Fatalf("style suggest: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload["suggestion"] != nil {
		t.Fatalf("expected null suggestion, got %v", payload["suggestion"])
	}
}

func TestStyleLearningFlow(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "style", "opt-in-shown"); err != nil {
		t.Fatalf("style opt-in-shown: %v", err)
	}
	out, err := env.run(t, "style", "enable")
	if err != nil {
		t.Fatalf("style enable: %v", err)
	}
	requireContains(t, out, "Style learning enabled")

	for range 8 {
		if _, err := env.run(t, "style", "track", "lensChoice", "50mm", "--shot-type", "close-up"); err != nil {
			t.Fatalf("style track: %v", err)
		}
	}
	if _, err := env.run(t, "style", "track", "lighting", "low-key"); err != nil {
		t.Fatalf("style track: %v", err)
	}

	out, err = env.run(t, "style", "suggest", "--shot-type", "close-up")
	if err != nil {
		t.Fatalf("style suggest: %v", err)
	}
	requireContains(t, out, "No suggestion yet (needs at least 10 tracked shots")

	if _, err := env.run(t, "style", "track", "colorgrade", "warm"); err != nil {
		t.Fatalf("style track: %v", err)
	}
	if _, err := env.run(t, "style", "project"); err != nil {
		t.Fatalf("style project: %v", err)
	}

	out, err = env.run(t, "style", "suggest", "--shot-type", "close-up", "--emotion", "tense")
	if err != nil {
		t.Fatalf("style suggest: %v", err)
	}
	requireContains(t, out, "You typically use 50mm for close-up shots (80% of the time)")
	requireContains(t, out, "you favor low-key lighting (10% of your shots)")
	requireContains(t, out, "Your color grading is usually warm (10% of shots)")

	out, err = env.run(t, "style", "status")
	if err != nil {
		t.Fatalf("style status: %v", err)
	}
	requireContains(t, out, "[OK] Enabled")
	requireContains(t, out, "Opt-in prompt shown:")
	requireContains(t, out, "[INFO] yes")
	requireContains(t, out, "[INFO] 10")

	out, err = env.run(t, "style", "summary")
	if err != nil {
		t.Fatalf("style summary: %v", err)
	}
	requireContains(t, out, "Projects analyzed: 1")
	requireContains(t, out, "Shots tracked: 10")
	requireContains(t, out, "Lens (close-up)")
}

func TestStyleExportResetImport(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := env.run(t, "style", "enable"); err != nil {
		t.Fatalf("style enable: %v", err)
	}
	for _, v := range []string{"wide", "wide", "medium"} {
		if _, err := env.run(t, "style", "track", "shotType", v); err != nil {
			t.Fatalf("style track: %v", err)
		}
	}

	exportPath := filepath.Join(t.TempDir(), "profile.json")
	out, err := env.run(t, "style", "export", "--output", exportPath)
	if err != nil {
		t.Fatalf("style export: %v", err)
	}
	requireContains(t, out, "Wrote style profile")
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	requireContains(t, string(data), `"shotTypes": {`)

	out, err = env.run(t, "style", "reset")
	if err != nil {
		t.Fatalf("style reset: %v", err)
	}
	requireContains(t, out, "Style profile reset")

	out, err = env.run(t, "--json", "style", "summary")
	if err != nil {
		t.Fatalf("style summary: %v", err)
	}
	requireContains(t, out, `"shotsTracked": 0`)

	out, err = env.run(t, "style", "import", exportPath)
	if err != nil {
		t.Fatalf("style import: %v", err)
	}
	requireContains(t, out, "Imported style profile (3 shots, 0 projects)")

	out, _, err = runCLI(t, []string{"style", "import", "-"}, env.configPath, `{"ownerId": 7}`)
	if err == nil {
		t.Fatalf("expected invalid profile to be rejected, got %q", out)
	}
}

func TestStyleTrackValidatesArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "style", "track", "focus", "rack"); err == nil {
		t.Fatal("expected unknown pattern type to fail")
	}
	if _, err := env.run(t, "style", "track", "lensChoice", "35mm"); err == nil {
		t.Fatal("expected lensChoice without --shot-type to fail")
	}
}

func TestStyleProjectAndResetEmitJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "--json", "style", "project")
	if err != nil {
		t.Fatalf("style project: %v", err)
	}
	var project map[string]bool
	if err := json.Unmarshal([]byte(out), &project); err != nil {
		t.Fatalf("style project output is not json: %v\n%s", err, out)
	}
	if project["counted"] {
		t.Fatal("project should not be counted while learning is disabled")
	}

	if _, err := env.run(t, "style", "enable"); err != nil {
		t.Fatalf("style enable: %v", err)
	}
	out, err = env.run(t, "--json", "style", "project")
	if err != nil {
		t.Fatalf("style project: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &project); err != nil || !project["counted"] {
		t.Fatalf("expected counted project, got %q (err=%v)", out, err)
	}

	out, err = env.run(t, "--json", "style", "reset")
	if err != nil {
		t.Fatalf("style reset: %v", err)
	}
	var reset map[string]bool
	if err := json.Unmarshal([]byte(out), &reset); err != nil || !reset["reset"] {
		t.Fatalf("expected reset json, got %q (err=%v)", out, err)
	}
}
