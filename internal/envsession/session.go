package envsession

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/errors"
	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
)

// State is the session lifecycle state. Activating and Restoring are
// transient; execution is single-threaded, so callers only ever observe
// Idle and Active.
type State int

const (
	StateIdle State = iota
	StateActivating
	StateActive
	StateRestoring
)

func (s State) String() string {
	switch s {
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateRestoring:
		return "restoring"
	default:
		return "idle"
	}
}

// Activation names the toolchain context a session applies.
type Activation struct {
	Config *family.Config
	Root   string // installation root of the activated record
	Triple string // canonical target triple
	Spec   arch.Spec
}

// Session owns the process environment for the duration of one activation.
// The original snapshot is retained until Restore and never discarded
// earlier; restore returns the environment byte-identical to it.
//
// Caller contract: at most one session may be Active per process at a time.
// This is documented, not enforced by a lock — there is no concurrent
// caller in this system.
type Session struct {
	runner   execx.Runner
	state    State
	original *Snapshot
	active   *Snapshot
}

// NewSession creates an idle session.
func NewSession(runner execx.Runner) *Session {
	return &Session{runner: runner}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Original returns the pre-activation snapshot while the session is active.
func (s *Session) Original() (Snapshot, bool) {
	if s.original == nil {
		return Snapshot{}, false
	}
	return *s.original, true
}

// Activate applies the toolchain environment described by act and returns
// the post-activation snapshot. Families with an activation script are
// activated by invoking the script and applying the diff of its resulting
// environment; all others by the static variable table.
//
// Activate is idempotent: a second Activate without Restore re-applies on
// top of the retained original snapshot, so path entries never duplicate.
// On script failure the process environment is left unmodified.
func (s *Session) Activate(ctx context.Context, act Activation) (Snapshot, error) {
	base := s.original
	if base == nil {
		captured := Capture()
		base = &captured
	}

	var diff Diff
	if act.Config.Activation != nil {
		var err error
		diff, err = s.scriptDiff(ctx, act, *base)
		if err != nil {
			return Snapshot{}, err
		}
	} else {
		diff = tableDiff(act, *base)
	}

	s.state = StateActivating
	s.original = base

	// Re-activation resets to the original first so the diff applies to the
	// same base every time.
	if s.active != nil {
		applySnapshot(*base)
	}
	for name, value := range diff.Added {
		os.Setenv(name, value)
	}
	for name, value := range diff.Changed {
		os.Setenv(name, value)
	}
	// Removals are intentionally not propagated: activation scripts run in a
	// wrapper shell that drops transient variables inconsistently, and
	// activation must only ever add to the environment.

	captured := Capture()
	s.active = &captured
	s.state = StateActive
	return captured, nil
}

// Restore replaces the process environment with the retained original
// snapshot and returns the session to Idle. Restoring an idle session is a
// no-op that logs a warning.
func (s *Session) Restore() {
	if s.state == StateIdle || s.original == nil {
		log.Warn("envsession: restore called on idle session")
		return
	}
	s.state = StateRestoring
	applySnapshot(*s.original)
	s.original = nil
	s.active = nil
	s.state = StateIdle
}

// Validate re-derives what activation would need — required variables and
// referenced directories — without mutating anything. It reports the first
// problem found.
func (s *Session) Validate(act Activation) error {
	if act.Config.Activation != nil {
		script := scriptPath(act)
		if _, err := os.Stat(script); err != nil {
			return errors.Validationf("activation script not found: %s", script).WithComponent("envsession")
		}
		return nil
	}
	env := act.Config.Env
	if env == nil {
		return errors.Validationf("family %s defines neither an activation script nor an environment table", act.Config.Name).WithComponent("envsession")
	}
	for _, dir := range env.PathPrepend {
		full := filepath.Join(act.Root, filepath.FromSlash(dir))
		if info, err := os.Stat(full); err != nil || !info.IsDir() {
			return errors.Validationf("activation path entry does not exist: %s", full).WithComponent("envsession")
		}
	}
	return nil
}

// scriptPath resolves the activation script for the architecture spec.
func scriptPath(act Activation) string {
	a := act.Config.Activation
	name := a.Script
	if name == "" {
		name = act.Spec.ScriptName() + a.Suffix
	}
	return filepath.Join(act.Root, filepath.FromSlash(a.ScriptDir), name)
}

// scriptDiff invokes the activation script in a wrapper shell, captures the
// environment it produces, and returns the diff relative to the retained
// base snapshot. Diffing against base keeps re-activation idempotent.
func (s *Session) scriptDiff(ctx context.Context, act Activation, base Snapshot) (Diff, error) {
	script := scriptPath(act)
	if _, err := os.Stat(script); err != nil {
		return Diff{}, errors.Activation("activation script not found: "+script, err).WithComponent("envsession")
	}

	var name string
	var args []string
	if runtime.GOOS == "windows" {
		// cmd applies the script then dumps the resulting environment.
		line := "\"" + script + "\""
		for _, a := range act.Config.Activation.Args {
			line += " " + a
		}
		name, args = "cmd", []string{"/C", line + " && set"}
	} else {
		line := ". '" + script + "'"
		for _, a := range act.Config.Activation.Args {
			line += " " + a
		}
		name, args = "sh", []string{"-c", line + " && env"}
	}

	res, err := s.runner.Run(ctx, execx.ActivationScriptTimeout, name, args...)
	if err != nil {
		return Diff{}, errors.Activation("activation script could not be started", err).WithComponent("envsession")
	}
	if !res.Ok() {
		return Diff{}, errors.Activation("activation script failed: "+script, errors.Newf("exit code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))).WithComponent("envsession")
	}

	captured := FromEnviron(strings.Split(res.Stdout, "\n"))
	if captured.Len() == 0 {
		return Diff{}, errors.Activation("activation script produced no environment: "+script, nil).WithComponent("envsession")
	}
	return base.Diff(captured), nil
}

// tableDiff builds the activation diff from the family's static variable
// table: expanded variable assignments plus duplicate-guarded search-path
// prepends.
func tableDiff(act Activation, base Snapshot) Diff {
	diff := Diff{
		Added:   make(map[string]string),
		Changed: make(map[string]string),
	}
	env := act.Config.Env
	if env == nil {
		return diff
	}

	record := func(name, value string) {
		old, ok := base.Get(name)
		switch {
		case !ok:
			diff.Added[name] = value
		case old != value:
			diff.Changed[name] = value
		}
	}

	for name, value := range env.Set {
		record(name, expandValue(value, act))
	}

	pathName, path, _ := base.GetFold("PATH")
	for i := len(env.PathPrepend) - 1; i >= 0; i-- {
		dir := filepath.Join(act.Root, filepath.FromSlash(env.PathPrepend[i]))
		path = prependPath(path, dir)
	}
	record(pathName, path)

	return diff
}

// expandValue substitutes the {root} and {triple} placeholders.
func expandValue(value string, act Activation) string {
	value = strings.ReplaceAll(value, "{root}", act.Root)
	return strings.ReplaceAll(value, "{triple}", act.triple())
}

// triple resolves the {triple} placeholder. An explicit triple (cross
// records) wins; otherwise MSVC-convention families get the vcvars matrix
// triple and everything else the GNU-style triple for the running platform.
func (act Activation) triple() string {
	if act.Triple != "" {
		return act.Triple
	}
	if act.Config.Compat == "msvc" {
		return act.Spec.Triple()
	}
	return act.Spec.GNUTriple()
}

// prependPath puts dir at the front of a PATH-style value unless it is
// already a component, guarding against duplicate entries on repeated
// activation.
func prependPath(path, dir string) string {
	sep := string(os.PathListSeparator)
	for _, entry := range strings.Split(path, sep) {
		if entry == dir {
			return path
		}
	}
	if path == "" {
		return dir
	}
	return dir + sep + path
}

// applySnapshot replaces the whole process environment with snap.
func applySnapshot(snap Snapshot) {
	current := Capture()
	for _, name := range current.Names() {
		if _, ok := snap.Get(name); !ok {
			os.Unsetenv(name)
		}
	}
	for _, name := range snap.Names() {
		value, _ := snap.Get(name)
		if cur, ok := current.Get(name); !ok || cur != value {
			os.Setenv(name, value)
		}
	}
}
