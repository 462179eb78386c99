// Package version provides the toolchain version value type, tolerant
// extraction of version tokens from compiler output, and total ordering.
package version

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// TokenRegex matches a dotted version token inside arbitrary compiler
// output, e.g. "13.2.0" in "gcc (GCC) 13.2.0" or "19.38.33130" in the
// cl.exe banner. The fourth component, when present, is build metadata.
var TokenRegex = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Info is an immutable toolchain version. Ordering is total over
// (Major, Minor, Patch); Build is informational only and never affects
// comparison. Raw preserves the token as it appeared in tool output.
type Info struct {
	Major int
	Minor int
	Patch int
	Build int
	Raw   string
}

// Parse parses a dotted version string with one to four numeric components;
// short forms are canonicalized (so "13" means 13.0.0). All components must
// be non-negative integers.
func Parse(s string) (Info, error) {
	canonical := semver.Canonical("v" + strings.TrimPrefix(s, "v"))
	if canonical == "" {
		// Not valid semver; fall back to plain dotted-component parsing so
		// four-component tool versions (e.g. 10.0.19041.0) still parse.
		canonical = "v" + s
	}
	parts := strings.Split(strings.TrimPrefix(canonical, "v"), ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Info{}, fmt.Errorf("invalid version format: %q", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Info{}, fmt.Errorf("invalid version component %q in %q", p, s)
		}
		nums[i] = n
	}

	v := Info{Major: nums[0], Minor: nums[1], Raw: s}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}
	if len(nums) > 3 {
		v.Build = nums[3]
	}
	return v, nil
}

// Extract pulls the first version token matching pattern out of combined
// tool output. A nil pattern uses TokenRegex. Returns (zero, false) when no
// token is found; callers decide whether a versionless record is acceptable.
func Extract(pattern *regexp.Regexp, text string) (Info, bool) {
	if pattern == nil {
		pattern = TokenRegex
	}
	match := pattern.FindString(text)
	if match == "" {
		return Info{}, false
	}
	v, err := Parse(match)
	if err != nil {
		return Info{}, false
	}
	return v, true
}

// Compare returns -1, 0 or 1 ordering a against b by (Major, Minor, Patch).
func Compare(a, b Info) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	return cmp.Compare(a.Patch, b.Patch)
}

// Less reports whether v orders before other.
func (v Info) Less(other Info) bool {
	return Compare(v, other) < 0
}

// AtLeast reports whether v is at or above the given threshold.
func (v Info) AtLeast(other Info) bool {
	return Compare(v, other) >= 0
}

// IsZero reports whether v is the zero version 0.0.0. A zero version marks
// a toolchain whose version query produced no parseable token; the Raw
// field still carries whatever the tool printed.
func (v Info) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0
}

// String returns the dotted representation without build metadata.
func (v Info) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
