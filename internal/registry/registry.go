// Package registry is the top-level façade over toolchain detection,
// validation, generator selection, and environment activation. It drives
// the per-family detectors strictly in sequence, isolates per-family
// failures, and caches results until an explicit refresh.
package registry

import (
	"context"
	"fmt"
	"runtime"

	"github.com/qiniu/x/log"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/detect"
	"github.com/ccenv/ccenv/internal/envsession"
	"github.com/ccenv/ccenv/internal/errors"
	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/generator"
)

// Problem is one structured failure collected during detection or
// validation. Problems never abort the registry call that produced them;
// they ride alongside partial results.
type Problem struct {
	Component  string
	Kind       errors.Kind
	Message    string
	Suggestion string
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s", p.Component, p.Message)
}

// Report is the result of ValidateAll.
type Report struct {
	Valid    bool
	Errors   []Problem
	Warnings []string
}

type cacheKey struct {
	family string
	arch   string
}

// Registry coordinates detection across all configured families.
//
// The cache is keyed by (family, architecture) and invalidated only by
// Refresh — never by time, because toolchain installation state changes
// only through external action.
type Registry struct {
	families *family.File
	runner   execx.Runner
	selector *generator.Selector
	session  *envsession.Session

	cache      map[cacheKey][]detect.Record
	crossCache map[cacheKey][]detect.CrossRecord
}

// New creates a registry over the given families configuration.
func New(families *family.File, runner execx.Runner) *Registry {
	return &Registry{
		families:   families,
		runner:     runner,
		selector:   generator.NewSelector(runner),
		session:    envsession.NewSession(runner),
		cache:      make(map[cacheKey][]detect.Record),
		crossCache: make(map[cacheKey][]detect.CrossRecord),
	}
}

// Families returns the effective families configuration.
func (r *Registry) Families() *family.File { return r.families }

// Session returns the registry's environment activation session.
func (r *Registry) Session() *envsession.Session { return r.session }

// Refresh discards all cached detection results wholesale.
func (r *Registry) Refresh() {
	log.Infof("registry: refreshing detection cache (%d entries)", len(r.cache)+len(r.crossCache))
	r.cache = make(map[cacheKey][]detect.Record)
	r.crossCache = make(map[cacheKey][]detect.CrossRecord)
}

// detectorFor resolves a family name to a configured detector.
func (r *Registry) detectorFor(name string, spec arch.Spec) (*detect.Detector, error) {
	cfg, ok := r.families.Get(name)
	if !ok {
		return nil, errors.InvalidArgument("toolchain family", name, r.families.Names()).WithComponent("registry")
	}
	return detect.New(cfg, r.runner, spec), nil
}

// DetectFamily runs (or serves from cache) detection for one family on one
// architecture spec and returns all records, best first.
func (r *Registry) DetectFamily(ctx context.Context, name string, spec arch.Spec) ([]detect.Record, error) {
	key := cacheKey{family: name, arch: spec.String()}
	if records, ok := r.cache[key]; ok {
		return records, nil
	}

	d, err := r.detectorFor(name, spec)
	if err != nil {
		return nil, err
	}
	records := d.Detect(ctx)
	r.cache[key] = records
	return records, nil
}

// Detect resolves one family/architecture to its recommended record.
// Returns a not-found error when nothing matches.
func (r *Registry) Detect(ctx context.Context, name string, spec arch.Spec) (*detect.Record, error) {
	records, err := r.DetectFamily(ctx, name, spec)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		cfg, _ := r.families.Get(name)
		suggestion := "install the toolchain or add its root to .ccenv/families.yaml"
		if cfg != nil && cfg.Inventory != nil && cfg.Inventory.PackageManager != "" {
			suggestion = "install it via " + cfg.Inventory.PackageManager + " or add its root to .ccenv/families.yaml"
		}
		return nil, errors.NotFoundWithSuggestion("toolchain", name+" ("+spec.String()+")", suggestion).WithComponent("registry")
	}
	return &records[0], nil
}

// DetectCross runs cross-toolchain detection for one cross family.
func (r *Registry) DetectCross(ctx context.Context, name string) ([]detect.CrossRecord, error) {
	cfg, ok := r.families.Get(name)
	if !ok {
		return nil, errors.InvalidArgument("toolchain family", name, r.families.Names()).WithComponent("registry")
	}
	if !cfg.IsCross() {
		return nil, errors.InvalidArgument("cross-toolchain family", name, r.families.CrossNames()).WithComponent("registry")
	}

	spec := arch.NativeSpec()
	key := cacheKey{family: name, arch: spec.String()}
	if records, ok := r.crossCache[key]; ok {
		return records, nil
	}

	d := detect.New(cfg, r.runner, spec)
	records := d.DetectCross(ctx)
	r.crossCache[key] = records
	return records, nil
}

// DetectAll fans detection out across every configured family — native and
// cross — strictly in sequence, on the host's native architecture spec.
// A failure in one family is recorded as a Problem and does not prevent
// other families from reporting results. Families that do not apply to the
// running platform are skipped silently.
func (r *Registry) DetectAll(ctx context.Context) (map[string][]detect.Record, []Problem) {
	results := make(map[string][]detect.Record)
	var problems []Problem

	spec := arch.NativeSpec()
	for _, name := range r.families.Names() {
		cfg, _ := r.families.Get(name)
		d := detect.New(cfg, r.runner, spec)
		if !d.SupportsHost() {
			continue
		}

		records, err := r.DetectFamily(ctx, name, spec)
		if err != nil {
			problems = append(problems, Problem{
				Component:  "detect/" + name,
				Kind:       errors.KindOf(err),
				Message:    errors.MessageOf(err),
				Suggestion: errors.SuggestionOf(err),
			})
			continue
		}
		if len(records) > 0 {
			results[name] = records
		}
	}

	return results, problems
}

// ValidateAll re-checks every detected toolchain and its activation
// prerequisites without mutating anything.
func (r *Registry) ValidateAll(ctx context.Context) Report {
	report := Report{Valid: true}

	results, problems := r.DetectAll(ctx)
	report.Errors = append(report.Errors, problems...)

	spec := arch.NativeSpec()
	for _, name := range r.families.Names() {
		records, ok := results[name]
		if !ok {
			cfg, _ := r.families.Get(name)
			if cfg != nil && detect.New(cfg, r.runner, spec).SupportsHost() {
				report.Warnings = append(report.Warnings, fmt.Sprintf("no %s toolchain detected", name))
			}
			continue
		}

		cfg, _ := r.families.Get(name)
		d := detect.New(cfg, r.runner, spec)
		if err := d.Validate(records[0]); err != nil {
			report.Errors = append(report.Errors, Problem{
				Component:  "validate/" + name,
				Kind:       errors.KindOf(err),
				Message:    errors.MessageOf(err),
				Suggestion: errors.SuggestionOf(err),
			})
			continue
		}

		if err := r.session.Validate(r.activation(records[0], spec)); err != nil {
			report.Warnings = append(report.Warnings, err.Error())
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// Activate resolves the requested family/architecture to a concrete record
// and applies its environment through the activation session, returning the
// post-activation snapshot.
func (r *Registry) Activate(ctx context.Context, name string, spec arch.Spec) (envsession.Snapshot, error) {
	rec, err := r.Detect(ctx, name, spec)
	if err != nil {
		return envsession.Snapshot{}, err
	}
	return r.session.Activate(ctx, r.activation(*rec, spec))
}

// Restore returns the process environment to the pre-activation snapshot.
func (r *Registry) Restore() {
	r.session.Restore()
}

// SelectGenerator picks a build generator for a detected family. An empty
// platform defaults to the running platform.
func (r *Registry) SelectGenerator(name, platform string, opts generator.Options) (generator.Selection, error) {
	if _, ok := r.families.Get(name); !ok {
		return generator.Selection{}, errors.InvalidArgument("toolchain family", name, r.families.Names()).WithComponent("registry")
	}
	if platform == "" {
		platform = runtime.GOOS
	}
	return r.selector.Select(name, platform, opts)
}

// activation builds the session activation context for a record.
func (r *Registry) activation(rec detect.Record, spec arch.Spec) envsession.Activation {
	cfg, _ := r.families.Get(rec.Family)
	triple := ""
	if cfg != nil && cfg.Cross != nil {
		triple = cfg.Cross.Triple
	}
	return envsession.Activation{
		Config: cfg,
		Root:   rec.Provenance.Root,
		Triple: triple,
		Spec:   spec,
	}
}
