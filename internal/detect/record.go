// Package detect implements the per-family toolchain discovery pipeline:
// ordered strategies produce candidate executables, each candidate is probed
// for its version and capabilities, and results are deduplicated and ranked.
package detect

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/version"
)

// Hints carries environment-relevant paths discovered alongside a
// toolchain. They are advisory inputs for package-manager integrations.
type Hints struct {
	IncludeDirs []string
	LibDirs     []string
	Extra       map[string]string
}

// Provenance records how and where a toolchain was found.
type Provenance struct {
	Root           string // installation root
	Method         string // discovery strategy name
	PackageManager string // inventory tool that reported it, if any
}

// richness orders provenance for duplicate merging: a record that knows its
// package manager beats one that only knows its root, which beats a bare
// PATH hit.
func (p Provenance) richness() int {
	n := 0
	if p.Root != "" {
		n++
	}
	if p.PackageManager != "" {
		n++
	}
	return n
}

// Record is the canonical detection output. Identity is (Family, Path);
// records are constructed fresh on every detection pass and never mutated
// afterwards — re-detection supersedes, it does not update.
//
// A Record whose version query produced no parseable token is kept with
// version 0.0.0 and HasVersion false rather than dropped; callers that need
// reliable versioning must filter on HasVersion explicitly.
type Record struct {
	Family       string
	Version      version.Info
	HasVersion   bool
	Path         string
	Arch         arch.Spec
	Capabilities family.Capabilities
	Hints        Hints
	Provenance   Provenance

	// Recommended marks the head of the version-sorted family list.
	Recommended bool
}

// CrossRecord specializes Record for a (target platform, target
// architecture) pair.
type CrossRecord struct {
	Record
	TargetPlatform string
	TargetArch     string
	Triple         string
	Sysroot        string
	GeneratorHint  string
}

// Valid reports whether every referenced tool path still exists on disk.
// It re-checks the filesystem on every call; validity is never cached
// across filesystem changes.
func (r *CrossRecord) Valid() bool {
	if _, err := os.Stat(r.Path); err != nil {
		return false
	}
	if r.Sysroot != "" {
		if _, err := os.Stat(r.Sysroot); err != nil {
			return false
		}
	}
	for _, dir := range r.Hints.IncludeDirs {
		if _, err := os.Stat(dir); err != nil {
			return false
		}
	}
	for _, dir := range r.Hints.LibDirs {
		if _, err := os.Stat(dir); err != nil {
			return false
		}
	}
	return true
}

// dedupe merges records sharing the (Family, Path) identity, preferring the
// one with richer provenance. Input order is preserved for distinct
// identities.
func dedupe(records []Record) []Record {
	type key struct{ family, path string }
	index := make(map[key]int, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := key{r.Family, r.Path}
		if i, ok := index[k]; ok {
			if r.Provenance.richness() > out[i].Provenance.richness() {
				out[i] = r
			}
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// rank sorts records descending by version and flags the head as
// recommended. The sort is stable so strategy priority breaks version ties.
func rank(records []Record) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return version.Compare(records[j].Version, records[i].Version) < 0
	})
	for i := range records {
		records[i].Recommended = i == 0
	}
	return records
}

// hintsForRoot derives include/lib hints from an installation root,
// keeping only directories that exist.
func hintsForRoot(root string) Hints {
	var h Hints
	if root == "" {
		return h
	}
	if dir := filepath.Join(root, "include"); dirExists(dir) {
		h.IncludeDirs = append(h.IncludeDirs, dir)
	}
	if dir := filepath.Join(root, "lib"); dirExists(dir) {
		h.LibDirs = append(h.LibDirs, dir)
	}
	return h
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
