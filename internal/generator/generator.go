// Package generator selects a build-file generator compatible with a
// compiler family and target platform. Candidate lists are static ordered
// preference tables — most specific generator first — and the order is
// load-bearing: fallback walks it deterministically.
package generator

import (
	"fmt"
	"slices"

	"github.com/ccenv/ccenv/internal/errors"
	"github.com/ccenv/ccenv/internal/execx"
)

// Candidate is one build generator with its validation requirements.
type Candidate struct {
	Name         string
	MultiConfig  bool
	RequiredTool string
	Platforms    []string // empty means every platform
}

func (c Candidate) supportsPlatform(platform string) bool {
	return len(c.Platforms) == 0 || slices.Contains(c.Platforms, platform)
}

// The generator catalog. Identifiers are the exact strings build tools
// accept (cmake -G).
var (
	vs2022     = Candidate{Name: "Visual Studio 17 2022", MultiConfig: true, RequiredTool: "msbuild", Platforms: []string{"windows"}}
	ninjaMulti = Candidate{Name: "Ninja Multi-Config", MultiConfig: true, RequiredTool: "ninja"}
	ninja      = Candidate{Name: "Ninja", RequiredTool: "ninja"}
	nmake      = Candidate{Name: "NMake Makefiles", RequiredTool: "nmake", Platforms: []string{"windows"}}
	mingwMake  = Candidate{Name: "MinGW Makefiles", RequiredTool: "mingw32-make", Platforms: []string{"windows"}}
	unixMake   = Candidate{Name: "Unix Makefiles", RequiredTool: "make", Platforms: []string{"linux", "darwin"}}
	xcode      = Candidate{Name: "Xcode", MultiConfig: true, RequiredTool: "xcodebuild", Platforms: []string{"darwin"}}
)

// candidates maps (family, platform) to its ordered preference list.
var candidates = map[string][]Candidate{
	"msvc/windows":        {vs2022, ninjaMulti, ninja, nmake},
	"msvc-clang/windows":  {ninja, vs2022, nmake},
	"mingw-gcc/windows":   {ninja, mingwMake},
	"mingw-clang/windows": {ninja, mingwMake},
	"gcc/linux":           {ninja, unixMake},
	"clang/linux":         {ninja, unixMake},
	"gcc/darwin":          {ninja, unixMake},
	"clang/darwin":        {ninja, xcode, unixMake},
}

// platformDefaults is the fallback generator when no (family, platform)
// entry exists or every candidate fails validation.
var platformDefaults = map[string]Candidate{
	"windows": nmake,
	"linux":   unixMake,
	"darwin":  unixMake,
}

// Platforms returns the platforms with a default generator, sorted.
func Platforms() []string {
	names := make([]string, 0, len(platformDefaults))
	for name := range platformDefaults {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Options controls selection behavior.
type Options struct {
	// PreferMultiConfig tries multi-configuration generators first.
	PreferMultiConfig bool
	// AllowFallback walks the candidate list on validation failure instead
	// of returning an error.
	AllowFallback bool
}

// Selection is the selector result. FallbackUsed reports whether the
// returned generator is not the first preference — callers surface that as
// a warning to the user.
type Selection struct {
	Generator    Candidate
	FallbackUsed bool
	Warnings     []string
}

// Selector validates candidates against locally installed tooling.
type Selector struct {
	runner execx.Runner
}

// NewSelector creates a selector using runner for tool lookups.
func NewSelector(runner execx.Runner) *Selector {
	return &Selector{runner: runner}
}

// Select picks a generator for the compiler family on the target platform.
//
// The first preference is the head of the (family, platform) candidate
// list — or of its multi-config subset when PreferMultiConfig and the
// subset is non-empty. Validation checks platform membership (hard error)
// and companion-tool presence on the search path (soft: recorded as a
// warning, and with AllowFallback the next candidate in the original list
// is tried). When the list is exhausted the platform default is the last
// resort. Without AllowFallback any validation failure of the first
// preference is returned as an error.
func (s *Selector) Select(compilerFamily, targetPlatform string, opts Options) (Selection, error) {
	if _, ok := platformDefaults[targetPlatform]; !ok {
		return Selection{}, errors.InvalidArgument("platform", targetPlatform, Platforms()).WithComponent("generator")
	}

	list, ok := candidates[compilerFamily+"/"+targetPlatform]
	fallbackToDefault := false
	if !ok {
		list = []Candidate{platformDefaults[targetPlatform]}
		fallbackToDefault = true
	}

	order := s.tryOrder(list, targetPlatform, opts)

	var warnings []string
	for i, cand := range order {
		hardErr, warning := s.validate(cand, targetPlatform)
		if hardErr != nil {
			if !opts.AllowFallback {
				return Selection{}, hardErr
			}
			warnings = append(warnings, hardErr.Error())
			continue
		}
		if warning != "" {
			warnings = append(warnings, warning)
			if opts.AllowFallback && i < len(order)-1 {
				continue
			}
			if !opts.AllowFallback {
				return Selection{}, errors.NotFoundWithSuggestion(
					"companion tool for generator", cand.Name,
					fmt.Sprintf("install %s or enable fallback", cand.RequiredTool)).WithComponent("generator")
			}
			// Last resort: accept with the warning — the generator can
			// still be used once its tool is installed.
		}
		return Selection{
			Generator:    cand,
			FallbackUsed: fallbackToDefault || i > 0,
			Warnings:     warnings,
		}, nil
	}

	return Selection{}, errors.NotFoundWithSuggestion(
		"build generator", compilerFamily+"/"+targetPlatform,
		"install ninja or the platform's native build tool").WithComponent("generator")
}

// tryOrder builds the deterministic probe order: the (possibly
// multi-config-preferred) head, the remaining original list, then the
// platform default.
func (s *Selector) tryOrder(list []Candidate, platform string, opts Options) []Candidate {
	head := list[0]
	if opts.PreferMultiConfig {
		for _, cand := range list {
			if cand.MultiConfig {
				head = cand
				break
			}
		}
	}

	order := []Candidate{head}
	for _, cand := range list {
		if cand.Name != head.Name {
			order = append(order, cand)
		}
	}
	if def := platformDefaults[platform]; !slices.ContainsFunc(order, func(c Candidate) bool { return c.Name == def.Name }) {
		order = append(order, def)
	}
	return order
}

// validate checks one candidate. Platform mismatch is a hard error;
// a missing companion tool is a soft warning.
func (s *Selector) validate(cand Candidate, platform string) (*errors.Error, string) {
	if !cand.supportsPlatform(platform) {
		return errors.Validationf("generator %s does not support platform %s", cand.Name, platform).WithComponent("generator"), ""
	}
	if cand.RequiredTool != "" {
		if _, ok := s.runner.LookPath(cand.RequiredTool); !ok {
			return nil, fmt.Sprintf("generator %s requires %s, which was not found on the search path", cand.Name, cand.RequiredTool)
		}
	}
	return nil, ""
}

// Candidates returns a copy of the ordered candidate list for a
// (family, platform) pair, if one is defined.
func Candidates(compilerFamily, targetPlatform string) ([]Candidate, bool) {
	list, ok := candidates[compilerFamily+"/"+targetPlatform]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}
