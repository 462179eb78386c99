package pkgmgr

import (
	"context"
	"errors"
	"testing"

	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/testing/mocks"
)

func TestQuery_Pairs(t *testing.T) {
	runner := mocks.NewRunner().
		WithTool("pacman", "/usr/bin/pacman").
		WithOutput("pacman", "gcc 13.2.1-3\n")

	inv := &family.InventoryConfig{Tool: "pacman", Args: []string{"-Q", "gcc"}, Parse: "pairs"}
	pkgs, ok := Query(context.Background(), runner, inv)
	if !ok {
		t.Fatal("Query() ok = false, want true")
	}
	if len(pkgs) != 1 {
		t.Fatalf("len(pkgs) = %d, want 1", len(pkgs))
	}
	if pkgs[0].Name != "gcc" || pkgs[0].Version != "13.2.1-3" {
		t.Errorf("pkgs[0] = %+v", pkgs[0])
	}
}

func TestQuery_Paths(t *testing.T) {
	runner := mocks.NewRunner().
		WithTool("vswhere", `C:\vswhere.exe`).
		WithOutput("vswhere", "C:\\VS\\2022\\Community\r\nC:\\VS\\2022\\BuildTools\r\n")

	inv := &family.InventoryConfig{Tool: "vswhere", Parse: "paths"}
	pkgs, ok := Query(context.Background(), runner, inv)
	if !ok {
		t.Fatal("Query() ok = false, want true")
	}
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}
	if pkgs[0].Location != `C:\VS\2022\Community` {
		t.Errorf("pkgs[0].Location = %q", pkgs[0].Location)
	}
}

func TestQuery_NoInformation(t *testing.T) {
	inv := &family.InventoryConfig{Tool: "pacman", Parse: "pairs"}

	tests := []struct {
		name   string
		runner *mocks.Runner
		inv    *family.InventoryConfig
	}{
		{
			name:   "nil inventory",
			runner: mocks.NewRunner(),
			inv:    nil,
		},
		{
			name:   "tool not on path",
			runner: mocks.NewRunner().WithOutput("pacman", "gcc 13.2.1"),
			inv:    inv,
		},
		{
			name: "nonzero exit",
			runner: mocks.NewRunner().
				WithTool("pacman", "/usr/bin/pacman").
				WithResult("pacman", execx.Result{ExitCode: 1, Stderr: "error: package 'gcc' was not found"}),
			inv: inv,
		},
		{
			name: "timeout",
			runner: mocks.NewRunner().
				WithTool("pacman", "/usr/bin/pacman").
				WithResult("pacman", execx.Result{ExitCode: -1, TimedOut: true}),
			inv: inv,
		},
		{
			name: "start failure",
			runner: mocks.NewRunner().
				WithTool("pacman", "/usr/bin/pacman").
				WithError("pacman", errors.New("permission denied")),
			inv: inv,
		},
		{
			name: "empty output",
			runner: mocks.NewRunner().
				WithTool("pacman", "/usr/bin/pacman").
				WithOutput("pacman", "\n\n"),
			inv: inv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgs, ok := Query(context.Background(), tt.runner, tt.inv)
			if ok || pkgs != nil {
				t.Errorf("Query() = %v, %v; want nil, false", pkgs, ok)
			}
		})
	}
}
