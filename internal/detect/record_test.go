package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccenv/ccenv/internal/version"
)

func TestDedupe(t *testing.T) {
	records := []Record{
		{Family: "gcc", Path: "/usr/bin/g++", Provenance: Provenance{Method: "path"}},
		{Family: "gcc", Path: "/usr/bin/g++", Provenance: Provenance{Root: "/usr", Method: "roots"}},
		{Family: "gcc", Path: "/opt/gcc13/bin/g++", Provenance: Provenance{Root: "/opt/gcc13", Method: "roots"}},
	}

	out := dedupe(records)
	if len(out) != 2 {
		t.Fatalf("len(dedupe()) = %d, want 2", len(out))
	}
	// The richer provenance replaces the earlier bare-PATH record in place.
	if out[0].Provenance.Method != "roots" || out[0].Provenance.Root != "/usr" {
		t.Errorf("out[0].Provenance = %+v, want roots provenance", out[0].Provenance)
	}
	if out[1].Path != "/opt/gcc13/bin/g++" {
		t.Errorf("out[1].Path = %q, order not preserved", out[1].Path)
	}
}

func TestDedupe_KeepsRicherFirst(t *testing.T) {
	records := []Record{
		{Family: "gcc", Path: "/usr/bin/g++", Provenance: Provenance{Root: "/usr", PackageManager: "pacman", Method: "inventory"}},
		{Family: "gcc", Path: "/usr/bin/g++", Provenance: Provenance{Root: "/usr", Method: "roots"}},
	}

	out := dedupe(records)
	if len(out) != 1 {
		t.Fatalf("len(dedupe()) = %d, want 1", len(out))
	}
	if out[0].Provenance.PackageManager != "pacman" {
		t.Errorf("Provenance = %+v, want inventory provenance kept", out[0].Provenance)
	}
}

func TestRank(t *testing.T) {
	records := []Record{
		{Path: "a", Version: version.Info{Major: 9, Minor: 4}},
		{Path: "b", Version: version.Info{Major: 13, Minor: 2}},
		{Path: "c", Version: version.Info{Major: 11}},
	}

	out := rank(records)
	if out[0].Path != "b" || out[1].Path != "c" || out[2].Path != "a" {
		t.Errorf("rank order = %s, %s, %s; want b, c, a", out[0].Path, out[1].Path, out[2].Path)
	}
	if !out[0].Recommended {
		t.Error("head record not flagged Recommended")
	}
	if out[1].Recommended || out[2].Recommended {
		t.Error("non-head record flagged Recommended")
	}
}

func TestRank_StableOnTies(t *testing.T) {
	// Equal versions keep their strategy-priority order.
	records := []Record{
		{Path: "first", Version: version.Info{Major: 13}},
		{Path: "second", Version: version.Info{Major: 13}},
	}

	out := rank(records)
	if out[0].Path != "first" {
		t.Errorf("rank() head = %q, want %q", out[0].Path, "first")
	}
}

func TestCrossRecord_Valid(t *testing.T) {
	root := t.TempDir()
	compiler := filepath.Join(root, "bin", "aarch64-linux-gnu-gcc")
	sysroot := filepath.Join(root, "sysroot")
	if err := os.MkdirAll(filepath.Dir(compiler), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(compiler, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sysroot, 0o755); err != nil {
		t.Fatal(err)
	}

	rec := &CrossRecord{
		Record:  Record{Path: compiler},
		Sysroot: sysroot,
	}
	if !rec.Valid() {
		t.Error("Valid() = false, want true")
	}

	// Validity is re-checked on every call, not cached.
	if err := os.RemoveAll(sysroot); err != nil {
		t.Fatal(err)
	}
	if rec.Valid() {
		t.Error("Valid() = true after sysroot removal, want false")
	}
}

func TestHintsForRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "include"), 0o755); err != nil {
		t.Fatal(err)
	}

	h := hintsForRoot(root)
	if len(h.IncludeDirs) != 1 {
		t.Errorf("IncludeDirs = %v, want one entry", h.IncludeDirs)
	}
	if len(h.LibDirs) != 0 {
		t.Errorf("LibDirs = %v, want empty for missing lib dir", h.LibDirs)
	}

	if h := hintsForRoot(""); len(h.IncludeDirs) != 0 || len(h.LibDirs) != 0 {
		t.Errorf("hintsForRoot(\"\") = %+v, want empty", h)
	}
}
