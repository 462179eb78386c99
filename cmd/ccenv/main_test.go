// Package main tests for the ccenv CLI entry point.
package main

import (
	"os/exec"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", "/dev/null", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build main package: %v", err)
	}
}

// TestMain_HelpFlag verifies the --help flag works correctly.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}
	if len(out) == 0 {
		t.Error("--help produced empty output")
	}
}
