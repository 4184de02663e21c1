package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const fullReport = "12: 2\n14: 2\n1969: 654\n100756: 33583\nr14: 2\nr100756: 50346\nAcc: 51316\n"

func writeModules(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modules.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write modules: %v", err)
	}
	return path
}

func TestRunBatch(t *testing.T) {
	path := writeModules(t, "12\n14\n1969\n100756\n")

	var out bytes.Buffer
	if err := runBatch(&out, path, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("runBatch returned error: %v", err)
	}
	if out.String() != fullReport {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), fullReport)
	}
}

func TestRunBatchMalformedInput(t *testing.T) {
	path := writeModules(t, "12\nabc\n")

	var out bytes.Buffer
	if err := runBatch(&out, path, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for malformed input")
	}
	if bytes.Contains(out.Bytes(), []byte("Acc:")) {
		t.Fatalf("expected no Acc line, got:\n%s", out.String())
	}
}

func TestRunIgnoresEnvironmentAndArguments(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("PORT", "not-a-port")
	t.Setenv("MODULE_MASSES", "abc")
	t.Setenv("RATE_LIMIT_RPS", "-5")
	t.Setenv("RATE_LIMIT_BURST", "lots")

	path := writeModules(t, "12\n14\n1969\n100756\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "NoArguments", args: nil},
		{name: "ExtraArguments", args: []string{"extra", "args"}},
		{name: "ExplicitRun", args: []string{"run", "extra"}},
		{name: "InvalidLogLevelFlag", args: []string{"--log-level=verbose"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCLI()
			command, err := c.app.Parse(tc.args)
			if err != nil {
				t.Fatalf("parse %v: %v", tc.args, err)
			}
			if command != c.run.FullCommand() {
				t.Fatalf("expected run command, got %q", command)
			}

			var out bytes.Buffer
			if err := runBatch(&out, path, batchLogger(*c.logLevel)); err != nil {
				t.Fatalf("runBatch returned error: %v", err)
			}
			if out.String() != fullReport {
				t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), fullReport)
			}
		})
	}
}

func TestBatchLoggerFallsBackToInfo(t *testing.T) {
	logger := batchLogger("verbose")
	if logger == nil {
		t.Fatalf("expected a logger")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info level to be enabled")
	}
}
