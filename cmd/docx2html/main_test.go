package main

// Notes:
// - run: dispatch and exit codes for each command; conversion itself is
//   covered by the command tests.
// - newLogger: level selection for -q and -v.

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitUsage, "", "Usage: docx2html <command>"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "", "Unknown command: frobnicate"},
		{"version", []string{"version"}, ExitSuccess, "docx2html dev", ""},
		{"version flag", []string{"--version"}, ExitSuccess, "docx2html dev", ""},
		{"help", []string{"help"}, ExitSuccess, "", ""},
		{"help convert", []string{"help", "convert"}, ExitSuccess, "", ""},
		{"bad flag", []string{"convert", "--bogus"}, ExitUsage, "", "error: invalid usage"},
		{"no input", []string{"convert"}, ExitIO, "", "no input specified"},
		{"review nothing", []string{"review"}, ExitIO, "", "no input specified"},
		{"completion bash", []string{"completion", "bash"}, ExitSuccess, "_docx2html_completions", ""},
		{"completion unknown shell", []string{"completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
		{"help completion", []string{"help", "completion"}, ExitSuccess, "Usage: docx2html completion", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := run(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("run(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRun_Convert(t *testing.T) {
	t.Parallel()

	in := sessionTree(t)
	env, _, stderr := testEnv()
	out := filepath.Join(filepath.Dir(in), "site")

	if code := run(context.Background(), []string{"convert", in, "-o", out, "-q"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}
	if !fileExists(filepath.Join(out, "Modulo 1", "session1-guide.html")) {
		t.Error("guide not written")
	}
}

func TestRun_HelpTopics(t *testing.T) {
	t.Parallel()

	for _, topic := range []string{"convert", "watch", "restyle", "review"} {
		env, stdout, stderr := testEnv()
		run(context.Background(), []string{"help", topic}, env)
		got := stdout.String() + stderr.String()
		if !strings.Contains(got, "docx2html "+topic) {
			t.Errorf("help %s: output = %q", topic, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Verbosity levels
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name           string
		quiet, verbose bool
		debug, info    bool
	}{
		{"default", false, false, false, true},
		{"quiet", true, false, false, false},
		{"verbose", false, true, true, true},
		{"verbose wins", true, true, true, true},
	}
	for _, tt := range tests {
		log := newLogger(&strings.Builder{}, tt.quiet, tt.verbose)
		if got := log.Enabled(ctx, slog.LevelDebug); got != tt.debug {
			t.Errorf("%s: debug enabled = %v, want %v", tt.name, got, tt.debug)
		}
		if got := log.Enabled(ctx, slog.LevelInfo); got != tt.info {
			t.Errorf("%s: info enabled = %v, want %v", tt.name, got, tt.info)
		}
		if !log.Enabled(ctx, slog.LevelError) {
			t.Errorf("%s: errors disabled", tt.name)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := splitList(" cleanup, ,css ,")
	if strings.Join(got, "|") != "cleanup|css" {
		t.Errorf("splitList() = %q", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
