package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "esrelay dev") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	if got := resolveEnv(""); got != "prod" {
		t.Errorf("expected ENV fallback, got %q", got)
	}
	if got := resolveEnv("local"); got != "local" {
		t.Errorf("expected flag to win, got %q", got)
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--env", "missing"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing config")
	}
}
