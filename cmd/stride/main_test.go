package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stride-tracker/stride/internal/config"
)

// loggingConfig builds a logging section for logger tests.
func loggingConfig(level, file string) config.LoggingConfig {
	return config.LoggingConfig{Level: level, File: file}
}

// fakeProgram represents fake program data used by this package.
type fakeProgram struct {
	runErr error
}

// Run runs the requested command flow.
func (f fakeProgram) Run() (tea.Model, error) {
	return nil, f.runErr
}

// setTestEnv keeps path resolution hermetic for CLI tests.
func setTestEnv(t *testing.T) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("STRIDE_CONFIG_DIR", "")
	t.Setenv("STRIDE_DATA_DIR", "")
	t.Setenv("STRIDE_CONFIG", "")
	t.Setenv("STRIDE_DB_PATH", "")
	t.Setenv("STRIDE_DEV_MODE", "false")
	t.Setenv("STRIDE_APP_NAME", "")
}

// executeCommand runs one command tree invocation and returns stdout.
func executeCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v (stderr: %s)", args, err, errOut.String())
	}
	return out.String()
}

func TestPathsCommand(t *testing.T) {
	setTestEnv(t)
	out := executeCommand(t, "paths")
	for _, want := range []string{"app: stride", "config:", "data_dir:", "db:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("paths output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "stride.db") {
		t.Fatalf("expected stride.db in paths output:\n%s", out)
	}
}

func TestAdvanceAndDayCommands(t *testing.T) {
	setTestEnv(t)
	dbPath := filepath.Join(t.TempDir(), "stride.db")

	out := executeCommand(t, "advance", "45", "--db", dbPath)
	if !strings.Contains(out, "current day: 45") {
		t.Fatalf("unexpected advance output %q", out)
	}

	out = executeCommand(t, "day", "--db", dbPath)
	if !strings.Contains(out, "current day: 45") {
		t.Fatalf("unexpected day output %q", out)
	}
}

func TestAdvanceRejectsOutOfRangeDay(t *testing.T) {
	setTestEnv(t)
	dbPath := filepath.Join(t.TempDir(), "stride.db")

	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs([]string{"advance", "91", "--db", dbPath})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for day 91")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()
	sourceDB := filepath.Join(dir, "source.db")
	targetDB := filepath.Join(dir, "target.db")
	snapPath := filepath.Join(dir, "snapshot.json")

	executeCommand(t, "advance", "12", "--db", sourceDB)
	executeCommand(t, "export", "--db", sourceDB, "--out", snapPath)

	content, err := os.ReadFile(snapPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "activities") {
		t.Fatalf("expected activities in snapshot, got %s", content)
	}

	executeCommand(t, "import", "--db", targetDB, "--in", snapPath)
	out := executeCommand(t, "day", "--db", targetDB)
	if !strings.Contains(out, "current day: 12") {
		t.Fatalf("unexpected day after import: %q", out)
	}
}

func TestExportToStdout(t *testing.T) {
	setTestEnv(t)
	dbPath := filepath.Join(t.TempDir(), "stride.db")
	executeCommand(t, "advance", "3", "--db", dbPath)

	out := executeCommand(t, "export", "--db", dbPath)
	if !strings.Contains(out, "\"activities\"") {
		t.Fatalf("expected snapshot JSON on stdout, got %q", out)
	}
}

func TestImportRequiresInputPath(t *testing.T) {
	setTestEnv(t)
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs([]string{"import", "--db", filepath.Join(t.TempDir(), "stride.db")})
	if err := root.Execute(); err == nil {
		t.Fatal("expected missing --in error")
	}
}

func TestTUICommandUsesProgramFactory(t *testing.T) {
	setTestEnv(t)
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })
	started := false
	programFactory = func(_ tea.Model) program {
		started = true
		return fakeProgram{}
	}

	executeCommand(t, "tui", "--db", filepath.Join(t.TempDir(), "stride.db"))
	if !started {
		t.Fatal("expected tui program factory invocation")
	}
}

func TestNewRuntimeLoggerFileSink(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "stride.log")
	logger, closeLog, err := newRuntimeLogger(nil, "stride", loggingConfig("debug", logPath), false)
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}
	logger.Info("hello", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatalf("closeLog() error = %v", err)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Fatalf("expected log line in file, got %q", content)
	}
}

func TestNewRuntimeLoggerRejectsBadLevel(t *testing.T) {
	if _, _, err := newRuntimeLogger(nil, "stride", loggingConfig("loud", ""), true); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("STRIDE_TEST_BOOL", "")
	if _, ok := parseBoolEnv("STRIDE_TEST_BOOL"); ok {
		t.Fatal("expected unset env to report not ok")
	}
	t.Setenv("STRIDE_TEST_BOOL", "true")
	if v, ok := parseBoolEnv("STRIDE_TEST_BOOL"); !ok || !v {
		t.Fatalf("expected true, got %v ok=%v", v, ok)
	}
	t.Setenv("STRIDE_TEST_BOOL", "nope")
	if _, ok := parseBoolEnv("STRIDE_TEST_BOOL"); ok {
		t.Fatal("expected invalid value to report not ok")
	}
}
