// Package envsession models the process environment as a single owned
// resource: every mutation happens inside a session that pairs it with a
// recorded snapshot, so any activation is traceable and reversible.
package envsession

import (
	"os"
	"sort"
	"strings"
)

// Snapshot is an immutable point-in-time capture of the process
// environment.
type Snapshot struct {
	vars map[string]string
}

// Capture snapshots the current process environment.
func Capture() Snapshot {
	return FromEnviron(os.Environ())
}

// FromEnviron builds a snapshot from "KEY=VALUE" pairs.
func FromEnviron(environ []string) Snapshot {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return Snapshot{vars: vars}
}

// Get returns the value of a variable and whether it is present.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// GetFold looks a variable up by name, falling back to a case-insensitive
// match, and reports the spelling actually present in the snapshot. Windows
// environments spell the search path "Path".
func (s Snapshot) GetFold(name string) (actual, value string, ok bool) {
	if v, ok := s.vars[name]; ok {
		return name, v, true
	}
	for k, v := range s.vars {
		if strings.EqualFold(k, name) {
			return k, v, true
		}
	}
	return name, "", false
}

// Len returns the number of captured variables.
func (s Snapshot) Len() int { return len(s.vars) }

// Names returns all variable names sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Environ returns the snapshot as sorted "KEY=VALUE" pairs, suitable for
// exec.Cmd.Env.
func (s Snapshot) Environ() []string {
	out := make([]string, 0, len(s.vars))
	for _, name := range s.Names() {
		out = append(out, name+"="+s.vars[name])
	}
	return out
}

// Equal reports whether two snapshots contain byte-identical variables.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.vars) != len(other.vars) {
		return false
	}
	for name, value := range s.vars {
		if ov, ok := other.vars[name]; !ok || ov != value {
			return false
		}
	}
	return true
}

// Diff describes how to get from this snapshot to another.
type Diff struct {
	Added   map[string]string
	Changed map[string]string
	Removed []string
}

// Empty reports whether the diff carries no changes.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// Diff computes the changes from s to other.
func (s Snapshot) Diff(other Snapshot) Diff {
	d := Diff{
		Added:   make(map[string]string),
		Changed: make(map[string]string),
	}
	for name, value := range other.vars {
		old, ok := s.vars[name]
		switch {
		case !ok:
			d.Added[name] = value
		case old != value:
			d.Changed[name] = value
		}
	}
	for name := range s.vars {
		if _, ok := other.vars[name]; !ok {
			d.Removed = append(d.Removed, name)
		}
	}
	sort.Strings(d.Removed)
	return d
}
