package main

// Notes:
// - runMain: we test exit codes and output for each command against an
//   httptest SOAP endpoint. Real network calls are never made.
// - configureMaxProcs: not tested, it only forwards to automaxprocs.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSplitCommand - Command dispatch
// ---------------------------------------------------------------------------

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{"no args", nil, "process", nil},
		{"explicit process", []string{"process", "a.txt"}, "process", []string{"a.txt"}},
		{"file argument", []string{"a.txt"}, "process", []string{"a.txt"}},
		{"flag first", []string{"--text", "x"}, "process", []string{"--text", "x"}},
		{"doctor", []string{"doctor", "--json"}, "doctor", []string{"--json"}},
		{"config", []string{"config"}, "config", []string{}},
		{"version", []string{"version"}, "version", []string{}},
		{"help", []string{"help", "doctor"}, "help", []string{"doctor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, rest := splitCommand(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("command = %q, want %q", cmd, tt.wantCmd)
			}
			if len(rest) != len(tt.wantRest) || !slices.Equal(rest, tt.wantRest) {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - version and help
// ---------------------------------------------------------------------------

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := runCLI(env, "version"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if got, want := env.stdout.String(), "typograf "+Version+"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := runCLI(env, "help"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stdout.String(), "Commands:") {
		t.Errorf("stdout = %q, want command list", env.stdout.String())
	}

	env = newTestEnv("")
	if code := runCLI(env, "--help"); code != ExitSuccess {
		t.Fatalf("--help exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stderr.String(), "--quotes1") {
		t.Errorf("stderr = %q, want process usage", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Process - Single input
// ---------------------------------------------------------------------------

func TestRunMain_Process(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)

	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantStdout string
	}{
		{
			name:       "text flag with named entities",
			args:       []string{"--text", "He said «hello»."},
			wantStdout: "He said &laquo;hello&raquo;.\n",
		},
		{
			name:       "unicode format",
			args:       []string{"--text", "He said «hello».", "-f", "unicode"},
			wantStdout: "He said «hello».\n",
		},
		{
			name:       "english quotes",
			args:       []string{"--text", "x", "--quotes1", "english-double", "--format", "unicode"},
			wantStdout: "He said “hello”.\n",
		},
		{
			name:       "explicit stdin",
			stdin:      "He said «hello».",
			args:       []string{"-", "-f", "unicode"},
			wantStdout: "He said «hello».\n",
		},
		{
			name:       "piped stdin",
			stdin:      "He said «hello».",
			args:       []string{"-f", "unicode"},
			wantStdout: "He said «hello».\n",
		},
		{
			name:       "explicit process command",
			args:       []string{"process", "--text", "x", "-f", "numeric"},
			wantStdout: "He said &#171;hello&#187;.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.stdin)
			args := append(slices.Clone(tt.args), "--endpoint", svc.URL)
			if code := runCLI(env, args...); code != ExitSuccess {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, ExitSuccess, env.stderr)
			}
			if got := env.stdout.String(); got != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", got, tt.wantStdout)
			}
		})
	}
}

func TestRunMain_ProcessFile(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(input, []byte("He said «hello»."), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("result to stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv("")
		if code := runCLI(env, input, "-f", "unicode", "--endpoint", svc.URL); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if got := env.stdout.String(); got != "He said «hello».\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("result to output file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "nested", "out.txt")
		env := newTestEnv("")
		if code := runCLI(env, input, "-o", out, "-f", "unicode", "--endpoint", svc.URL); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(data) != "He said «hello».\n" {
			t.Errorf("output = %q", data)
		}
		if !strings.Contains(env.stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q, want Created message", env.stdout)
		}
	})

	t.Run("quiet hides created message", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.txt")
		env := newTestEnv("")
		if code := runCLI(env, input, "-q", "-o", out, "--endpoint", svc.URL); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if env.stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", env.stdout)
		}
	})
}

func TestRunMain_PreviewAndCopy(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	env := newTestEnv("")

	code := runCLI(env, "--text", "x", "--preview", "--copy", "--endpoint", svc.URL)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}

	want := "He said &laquo;hello&raquo;.\n" + previewSeparator + "\nHe said «hello».\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if env.clipboard.copied != "He said &laquo;hello&raquo;." {
		t.Errorf("clipboard = %q", env.clipboard.copied)
	}
}

func TestRunMain_Truncation(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	env := newTestEnv(strings.Repeat("a", 70000))

	if code := runCLI(env, "--endpoint", svc.URL); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}
	if !strings.Contains(env.stderr.String(), "input truncated from 70000 to 65536 characters") {
		t.Errorf("stderr = %q, want truncation notice", env.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ProcessErrors - Exit codes for failures
// ---------------------------------------------------------------------------

func TestRunMain_ProcessErrors(t *testing.T) {
	t.Parallel()

	ok := newFakeService(t, http.StatusOK)
	broken := newFakeService(t, http.StatusInternalServerError)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown flag", []string{"--nope"}, ExitUsage, "invalid usage"},
		{"whitespace text", []string{"--text", "   ", "--endpoint", ok.URL}, ExitUsage, "input text cannot be empty"},
		{"no input", []string{"--endpoint", ok.URL}, ExitIO, "no input specified"},
		{"missing file", []string{"/nonexistent/in.txt", "--endpoint", ok.URL}, ExitIO, "failed to read input"},
		{"two inputs", []string{"a.txt", "b.txt"}, ExitUsage, "expected one input"},
		{"text and file", []string{"--text", "x", "a.txt"}, ExitUsage, "cannot be combined"},
		{"bad quote style", []string{"--text", "x", "--quotes1", "klingon"}, ExitUsage, "quotes.primary"},
		{"bad format", []string{"--text", "x", "-f", "html"}, ExitUsage, "output.format"},
		{"negative maxNobr", []string{"--text", "x", "--max-nobr", "-1"}, ExitUsage, "service.maxNobr"},
		{"bad endpoint", []string{"--text", "x", "--endpoint", "ftp://example.com"}, ExitUsage, "invalid service endpoint"},
		{"unknown config", []string{"--text", "x", "-c", "surely-missing-config"}, ExitUsage, "hint:"},
		{"service failure", []string{"--text", "x", "--endpoint", broken.URL}, ExitService, "typography service call failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if code := runCLI(env, tt.args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want containing %q", env.stderr, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Batch - Directory input
// ---------------------------------------------------------------------------

func TestRunMain_Batch(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":          "one",
		"sub/b.md":       "two",
		"c.pdf":          "skipped",
		"d.typograf.txt": "already processed",
	})

	env := newTestEnv("")
	if code := runCLI(env, dir, "-f", "unicode", "-w", "2", "--endpoint", svc.URL); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}

	for _, rel := range []string{"a.typograf.txt", filepath.Join("sub", "b.typograf.md")} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			t.Errorf("missing output %s: %v", rel, err)
			continue
		}
		if string(data) != "He said «hello».\n" {
			t.Errorf("%s = %q", rel, data)
		}
	}
	for _, rel := range []string{"c.typograf.pdf", "d.typograf.typograf.txt"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err == nil {
			t.Errorf("unexpected output %s", rel)
		}
	}
	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", env.stdout)
	}
}

func TestRunMain_BatchOutputDir(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTree(t, dir, map[string]string{"sub/a.html": "<p>x</p>"})

	env := newTestEnv("")
	if code := runCLI(env, dir, "-o", out, "--endpoint", svc.URL); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "a.typograf.html")); err != nil {
		t.Errorf("output not mirrored under -o: %v", err)
	}
}

func TestRunMain_BatchFailures(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, http.StatusOK)
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "one", "empty.txt": "  \n"})

	env := newTestEnv("")
	if code := runCLI(env, dir, "--endpoint", svc.URL); code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(env.stderr.String(), "FAILED") || !strings.Contains(env.stderr.String(), "1 of 2 file(s) failed") {
		t.Errorf("stderr = %q", env.stderr)
	}
}

func TestRunMain_BatchEmptyDir(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := runCLI(env, t.TempDir()); code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
}

// writeTree creates files relative to dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}
