package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// setTestFlags pins every package-level flag to a known state so tests do
// not depend on each other's leftovers.
func setTestFlags(t *testing.T) {
	t.Helper()

	verbose, quiet, debug, jsonOut = false, false, false, false
	backendName, reserveFlag, granFlag = "sim", "4MB", ""
	demoPause = false

	t.Cleanup(func() {
		verbose, quiet, debug, jsonOut = false, false, false, false
		backendName, reserveFlag, granFlag = "sim", "64MB", ""
		demoPause = false
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
