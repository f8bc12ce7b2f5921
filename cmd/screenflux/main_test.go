package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghalamif/screenflux"
)

func TestExitMessageSourceNotFound(t *testing.T) {
	err := &screenflux.SourceError{Path: "/Users/me/knowledgeC.db", Err: screenflux.ErrSourceNotFound}
	got := exitMessage("run", err)
	if got != "Could not find knowledgeC.db at /Users/me/knowledgeC.db." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestExitMessageSourceUnreadable(t *testing.T) {
	err := &screenflux.SourceError{Path: "/Users/me/knowledgeC.db", Err: screenflux.ErrSourceUnreadable}
	got := exitMessage("run", err)
	if !strings.Contains(got, "is not readable") || !strings.Contains(got, "Full Disk Access") {
		t.Fatalf("expected remediation hint, got %q", got)
	}
}

func TestExitMessageOtherErrors(t *testing.T) {
	err := &screenflux.StageError{Stage: "sink", Err: errors.New("401 unauthorized")}
	got := exitMessage("run", err)
	if got != "screenflux run: sink: 401 unauthorized" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRunCommandMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := "source:\n  path: " + filepath.Join(dir, "knowledgeC.db") + "\nlog:\n  level: error\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	err := runCommand([]string{"-config", cfgPath, "-dry-run"}, &out)
	if !errors.Is(err, screenflux.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written to stdout, got %q", out.String())
	}
}

func TestValidateCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("sink: stdout\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := validateCommand([]string{"-config", cfgPath}, &out); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "looks good") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunCommandWithoutConfigRequiresToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := runCommand(nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "influxdb.token is required") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestRunCommandDryRunReachesSourceChecks(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := runCommand([]string{"-dry-run"}, &bytes.Buffer{})
	var se *screenflux.SourceError
	if !errors.As(err, &se) || !errors.Is(err, screenflux.ErrSourceNotFound) {
		t.Fatalf("expected missing source error, got %v", err)
	}
	want := filepath.Join(home, "Library", "Application Support", "Knowledge", "knowledgeC.db")
	if got := exitMessage("run", err); got != "Could not find knowledgeC.db at "+want+"." {
		t.Fatalf("unexpected diagnostic %q", got)
	}
}
