package main

// Notes:
// - runMain: we test dispatch and exit codes. Site output is covered by
//   build_test.go.
// - main itself only wires maxprocs and os.Exit.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: []string{"md2site"}, wantCode: ExitUsage, wantStderr: "Usage: md2site"},
		{name: "unknown command", args: []string{"md2site", "publish"}, wantCode: ExitUsage, wantStderr: "unknown command: publish"},
		{name: "version", args: []string{"md2site", "version"}, wantCode: ExitSuccess, wantStdout: "md2site " + Version},
		{name: "help", args: []string{"md2site", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help build", args: []string{"md2site", "help", "build"}, wantCode: ExitSuccess, wantStdout: "Usage: md2site build"},
		{name: "help unknown", args: []string{"md2site", "help", "publish"}, wantCode: ExitUsage, wantStderr: "Unknown command: publish"},
		{name: "build --help", args: []string{"md2site", "build", "--help"}, wantCode: ExitSuccess, wantStdout: "Usage: md2site build"},
		{name: "list -h", args: []string{"md2site", "list", "-h"}, wantCode: ExitSuccess, wantStdout: "Usage: md2site list"},
		{name: "bad flag", args: []string{"md2site", "build", "--nope"}, wantCode: ExitUsage, wantStderr: "unknown flag"},
		{
			name:       "missing config",
			args:       []string{"md2site", "build", "-c", "/does/not/exist/md2site.yaml"},
			wantCode:   ExitUsage,
			wantStderr: "config file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			code := runMain(tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_ContentDirectory(t *testing.T) {
	t.Parallel()

	t.Run("missing directory is an IO error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := runMain([]string{"md2site", "build", "-c", writeConfig(t, nil), "/does/not/exist"}, env.Environment)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stderr.String(), "content directory not found") {
			t.Errorf("stderr = %q", env.stderr)
		}
	})

	t.Run("two directories is a usage error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := runMain([]string{"md2site", "build", "-c", writeConfig(t, nil), t.TempDir(), t.TempDir()}, env.Environment)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for _, cmd := range commands {
		if !isCommand(cmd) {
			t.Errorf("isCommand(%q) = false", cmd)
		}
	}
	for _, arg := range []string{"", "convert", "Build", "-v"} {
		if isCommand(arg) {
			t.Errorf("isCommand(%q) = true", arg)
		}
	}
}
