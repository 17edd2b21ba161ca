package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/regolith-linux/i3xrocks/internal/ini"
	"github.com/regolith-linux/i3xrocks/internal/kv"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	// Loading changes the working directory.
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err = app.Run(append([]string{"i3xrocks-config"}, args...))
	return out.String(), errOut.String(), err
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	writeFile(t, path, "interval=5\n[time]\ncommand=date\n")
	writeFile(t, filepath.Join(dir, "conf.d", "10-battery"), "[battery]\ninterval=30\n")

	stdout, _, err := runApp(t, "-c", path, "-d", filepath.Join(dir, "conf.d"), "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	expected := []map[string]string{
		{"name": "time", "interval": "5", "command": "date"},
		{"name": "battery", "interval": "30"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_INI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	writeFile(t, path, "color=#ffffff\n[cpu]\n[volume]\ninstance=Master\n")

	stdout, _, err := runApp(t, "--config", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	h := ini.HandlerFuncs{
		OnSection: func(name string) error {
			got = append(got, "["+name+"]")
			return nil
		},
		OnProperty: func(key, value string) error {
			got = append(got, key+"="+value)
			return nil
		},
	}
	if err := ini.Read(strings.NewReader(stdout), -1, h); !errors.Is(err, io.EOF) {
		t.Fatalf("output does not parse back: %v", err)
	}
	expected := []string{"[cpu]", "color=#ffffff", "[volume]", "color=#ffffff", "instance=Master"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Check(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	writeFile(t, path, "[cpu]\n[volume]\n")

	stdout, stderr, err := runApp(t, "--check", "-c", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if !strings.Contains(stderr, "configuration OK: 2 blocks") {
		t.Errorf("expected a summary, got %q", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken")
	writeFile(t, broken, "[cpu\n")
	valid := filepath.Join(dir, "valid")
	writeFile(t, valid, "[cpu]\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(dir, "missing")}},
		{name: "malformed file", args: []string{"-c", broken}},
		{name: "unknown format", args: []string{"-c", valid, "--format", "yaml"}},
		{name: "unreadable directory", args: []string{"-c", valid, "-d", filepath.Join(dir, "none")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, append(tt.args, "--log-level", "error")...)
			exit, ok := err.(cli.ExitCoder)
			if !ok {
				t.Fatalf("expected an exit error, got %v", err)
			}
			if exit.ExitCode() != 1 {
				t.Errorf("expected exit code 1, got %d", exit.ExitCode())
			}
		})
	}
}

func TestToINI(t *testing.T) {
	section := kv.New()
	section.Set("interval", "5")
	section.Set("name", "time")
	section.Set("command", "date")

	expected := []ini.Section{{
		Name: "time",
		Properties: []ini.Property{
			{Key: "interval", Value: "5"},
			{Key: "command", Value: "date"},
		},
	}}
	if diff := cmp.Diff(expected, toINI([]*kv.Map{section})); diff != "" {
		t.Errorf("toINI() mismatch (-want +got):\n%s", diff)
	}
}
