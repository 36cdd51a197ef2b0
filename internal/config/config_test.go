package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skeinlang/skein/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skein.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunConfig(t *testing.T) {
	path := writeConfig(t, `
defs: basis.sk
trace: out.json
precompile: false
color: never
expressions:
  - "(I a)"
  - "((K a) b)"
`)

	cfg, err := config.LoadRunConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	precompile := false
	expected := &config.RunConfig{
		Defs:        "basis.sk",
		Trace:       "out.json",
		Precompile:  &precompile,
		Color:       config.ColorNever,
		Expressions: []string{"(I a)", "((K a) b)"},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRunConfigEmptyFileMeansDefaults(t *testing.T) {
	cfg, err := config.LoadRunConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Defs != "" || cfg.Trace != "" || cfg.Precompile != nil || cfg.Color != "" || cfg.Expressions != nil {
		t.Errorf("empty file should leave every field unset, got %+v", cfg)
	}
}

func TestLoadRunConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"invalid_yaml", ":\n - ["},
		{"bad_color", "color: sometimes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := config.LoadRunConfig(writeConfig(t, tc.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadRunConfigMissingFile(t *testing.T) {
	if _, err := config.LoadRunConfig(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
