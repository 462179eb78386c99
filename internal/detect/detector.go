package detect

import (
	"context"
	"os"
	"regexp"
	"runtime"
	"slices"

	"github.com/qiniu/x/log"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/errors"
	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/version"
)

// Detector runs the detection chain for one family. All per-family behavior
// (compiler names, roots, version regex, capability thresholds) comes from
// the family configuration record; the detector itself is family-agnostic.
type Detector struct {
	cfg        *family.Config
	runner     execx.Runner
	spec       arch.Spec
	strategies []Strategy
	pattern    *regexp.Regexp
}

// New builds a detector for cfg on the given architecture spec. The
// strategy order is fixed: inventory query, conventional roots,
// package-manager layouts, platform registry (Windows only), PATH fallback.
func New(cfg *family.Config, runner execx.Runner, spec arch.Spec) *Detector {
	d := &Detector{cfg: cfg, runner: runner, spec: spec}

	if cfg.VersionRegex != "" {
		if re, err := regexp.Compile(cfg.VersionRegex); err == nil {
			d.pattern = re
		} else {
			log.Warnf("family %s: invalid version regex %q, using default", cfg.Name, cfg.VersionRegex)
		}
	}

	fragment := spec.PathFragment()
	if cfg.Inventory != nil {
		d.strategies = append(d.strategies, &inventoryStrategy{cfg: cfg, runner: runner, fragment: fragment})
	}
	if len(cfg.Roots) > 0 {
		d.strategies = append(d.strategies, &rootsStrategy{cfg: cfg, fragment: fragment, patterns: cfg.Roots, method: "roots"})
	}
	if len(cfg.PackageLayouts) > 0 {
		d.strategies = append(d.strategies, &rootsStrategy{cfg: cfg, fragment: fragment, patterns: cfg.PackageLayouts, method: "package-layout"})
	}
	d.strategies = append(d.strategies, platformStrategies(cfg, fragment)...)
	d.strategies = append(d.strategies, &pathStrategy{cfg: cfg, runner: runner})

	return d
}

// Family returns the configured family name.
func (d *Detector) Family() string { return d.cfg.Name }

// Config returns the family configuration record driving this detector.
func (d *Detector) Config() *family.Config { return d.cfg }

// SupportsHost reports whether the family applies to the running platform.
func (d *Detector) SupportsHost() bool {
	if len(d.cfg.Platforms) == 0 {
		return true
	}
	return slices.Contains(d.cfg.Platforms, runtime.GOOS)
}

// Detect runs every strategy, probes each candidate, and returns the
// deduplicated records sorted descending by version with the head flagged
// recommended. Strategy failures are logged and contribute zero records;
// Detect itself never fails.
func (d *Detector) Detect(ctx context.Context) []Record {
	var records []Record
	for _, s := range d.strategies {
		candidates, err := s.Discover(ctx)
		if err != nil {
			log.Warnf("family %s: strategy %s failed: %v", d.cfg.Name, s.Name(), err)
			continue
		}
		for _, cand := range candidates {
			if rec, ok := d.probe(ctx, cand); ok {
				records = append(records, rec)
			}
		}
	}
	return rank(dedupe(records))
}

// probe qualifies one candidate: existence check, version query under a
// short timeout, version extraction, capability derivation. A timeout or
// nonzero exit skips the candidate; a failed version extraction keeps it
// with a zero version.
func (d *Detector) probe(ctx context.Context, cand Candidate) (Record, bool) {
	if info, err := os.Stat(cand.Path); err != nil || info.IsDir() {
		return Record{}, false
	}

	res, err := d.runner.Run(ctx, execx.VersionQueryTimeout, cand.Path, d.cfg.VersionArgs...)
	if err != nil || !res.Ok() {
		return Record{}, false
	}

	v, ok := version.Extract(d.pattern, res.Output())
	if !ok {
		v = version.Info{Raw: firstLine(res.Output())}
	}

	rec := Record{
		Family:       d.cfg.Name,
		Version:      v,
		HasVersion:   ok,
		Path:         cand.Path,
		Arch:         d.spec,
		Capabilities: d.cfg.DeriveCapabilities(v),
		Hints:        hintsForRoot(cand.Root),
		Provenance: Provenance{
			Root:           cand.Root,
			Method:         cand.Method,
			PackageManager: cand.PackageManager,
		},
	}
	if d.cfg.Cross != nil {
		if rec.Hints.Extra == nil {
			rec.Hints.Extra = make(map[string]string)
		}
		rec.Hints.Extra["triple"] = d.cfg.Cross.Triple
	}
	return rec, true
}

// DetectVersion probes a single executable for its version without running
// the full chain.
func (d *Detector) DetectVersion(ctx context.Context, path string) (version.Info, error) {
	res, err := d.runner.Run(ctx, execx.VersionQueryTimeout, path, d.cfg.VersionArgs...)
	if err != nil {
		return version.Info{}, errors.Wrap(err, "version query failed").WithComponent("detect")
	}
	if !res.Ok() {
		return version.Info{}, errors.Validationf("version query for %s exited with %d", path, res.ExitCode).WithComponent("detect")
	}
	v, ok := version.Extract(d.pattern, res.Output())
	if !ok {
		return version.Info{Raw: firstLine(res.Output())}, nil
	}
	return v, nil
}

// DetectCapabilities derives the capability flags for a version under this
// family's threshold table.
func (d *Detector) DetectCapabilities(v version.Info) family.Capabilities {
	return d.cfg.DeriveCapabilities(v)
}

// Validate re-checks a previously detected record against the current
// filesystem without mutating anything.
func (d *Detector) Validate(rec Record) error {
	if info, err := os.Stat(rec.Path); err != nil || info.IsDir() {
		return errors.Validationf("compiler %s no longer exists", rec.Path).WithComponent("detect")
	}
	for _, dir := range rec.Hints.IncludeDirs {
		if !dirExists(dir) {
			return errors.Validationf("include directory %s no longer exists", dir).WithComponent("detect")
		}
	}
	for _, dir := range rec.Hints.LibDirs {
		if !dirExists(dir) {
			return errors.Validationf("library directory %s no longer exists", dir).WithComponent("detect")
		}
	}
	return nil
}

// DetectCross runs detection and wraps each record as a cross-toolchain
// record, discovering the sysroot via the configured compiler query.
// Returns nil when the family is not a cross family.
func (d *Detector) DetectCross(ctx context.Context) []CrossRecord {
	cross := d.cfg.Cross
	if cross == nil {
		return nil
	}

	records := d.Detect(ctx)
	out := make([]CrossRecord, 0, len(records))
	for _, rec := range records {
		cr := CrossRecord{
			Record:         rec,
			TargetPlatform: cross.TargetPlatform,
			TargetArch:     cross.TargetArch,
			Triple:         cross.Triple,
			GeneratorHint:  cross.GeneratorHint,
		}
		if len(cross.SysrootQuery) > 0 {
			if res, err := d.runner.Run(ctx, execx.VersionQueryTimeout, rec.Path, cross.SysrootQuery...); err == nil && res.Ok() {
				if sysroot := firstLine(res.Stdout); sysroot != "" {
					cr.Sysroot = sysroot
				}
			}
		}
		out = append(out, cr)
	}
	return out
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
