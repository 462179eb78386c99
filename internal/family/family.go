// Package family defines per-toolchain-family configuration records and the
// capability model derived from them. Families are data, not code: one
// parametrized detector consumes these records, so per-family behavior lives
// entirely in the configuration table.
package family

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ccenv/ccenv/internal/version"
)

// Capabilities is the fixed set of flags implied by a toolchain version.
// Language-standard flags are derived from the family's staged threshold
// table; the two compatibility flags describe which environment convention
// the family follows and come from the family record itself.
type Capabilities struct {
	Cpp14      bool `json:"cpp14"`
	Cpp17      bool `json:"cpp17"`
	Cpp20      bool `json:"cpp20"`
	Cpp23      bool `json:"cpp23"`
	Modules    bool `json:"modules"`
	Coroutines bool `json:"coroutines"`

	// MSVCCompatible marks toolchains that follow native MSVC environment
	// conventions (INCLUDE/LIB, vcvars activation).
	MSVCCompatible bool `json:"msvc_compatible"`
	// PosixCompatible marks toolchains hosted in a POSIX layer (MSYS2
	// subsystems, Unix shells).
	PosixCompatible bool `json:"posix_compatible"`
}

// Capability flag names usable in a stage's "sets" list.
const (
	FlagCpp14      = "cpp14"
	FlagCpp17      = "cpp17"
	FlagCpp20      = "cpp20"
	FlagCpp23      = "cpp23"
	FlagModules    = "modules"
	FlagCoroutines = "coroutines"
)

// Stage is one row of a family's capability threshold table: at MinVersion
// and above, every flag in Sets is on. Stages are cumulative — a flag
// switched on by a lower stage stays on at all higher versions — so
// monotonicity holds by construction.
type Stage struct {
	MinVersion string   `yaml:"min_version" json:"min_version"`
	Sets       []string `yaml:"sets" json:"sets"`
}

// EnvConfig is the static activation variable table for families activated
// by direct assignment. Values may reference {root} (installation root) and
// {triple} (canonical target triple); PathPrepend entries are relative to
// the installation root and are prepended to the search path.
type EnvConfig struct {
	Set         map[string]string `yaml:"set" json:"set,omitempty"`
	PathPrepend []string          `yaml:"path_prepend" json:"path_prepend,omitempty"`
}

// ActivationConfig describes script-based activation. When Script is empty
// the script name is derived from the architecture spec (ScriptDir +
// arch.ScriptName() + Suffix).
type ActivationConfig struct {
	ScriptDir string   `yaml:"script_dir" json:"script_dir,omitempty"`
	Script    string   `yaml:"script" json:"script,omitempty"`
	Suffix    string   `yaml:"suffix" json:"suffix,omitempty"`
	Args      []string `yaml:"args" json:"args,omitempty"`
}

// InventoryConfig describes the platform install-inventory query used as
// the highest-priority detection strategy.
type InventoryConfig struct {
	Tool           string   `yaml:"tool" json:"tool"`
	Args           []string `yaml:"args" json:"args,omitempty"`
	PackageManager string   `yaml:"package_manager" json:"package_manager,omitempty"`
	// Parse selects the output shape: "pairs" for "name version" lines
	// (pacman -Q), "paths" for one installation root per line (vswhere
	// -property installationPath).
	Parse string `yaml:"parse" json:"parse,omitempty"`
}

// RegistryKey names a Windows registry location (under HKLM) whose string
// values are installation roots. Values selects "all" enumerated values or
// only the "default" value.
type RegistryKey struct {
	Key    string `yaml:"key" json:"key"`
	Values string `yaml:"values" json:"values,omitempty"`
}

// CrossConfig marks a family as a cross-compilation toolchain and carries
// the target identity and sysroot discovery query.
type CrossConfig struct {
	Triple         string   `yaml:"triple" json:"triple"`
	TargetPlatform string   `yaml:"target_platform" json:"target_platform"`
	TargetArch     string   `yaml:"target_arch" json:"target_arch"`
	SysrootQuery   []string `yaml:"sysroot_query" json:"sysroot_query,omitempty"`
	GeneratorHint  string   `yaml:"generator_hint" json:"generator_hint,omitempty"`
}

// Config is one family record. Everything a detector, activator or
// validator needs to know about a family is here.
type Config struct {
	Name  string `yaml:"-" json:"-"`
	Title string `yaml:"title" json:"title,omitempty"`

	// Compilers lists candidate executable names in preference order.
	Compilers []string `yaml:"compilers" json:"compilers"`
	// Platforms restricts detection to these GOOS values; empty means all.
	Platforms []string `yaml:"platforms" json:"platforms,omitempty"`

	VersionArgs  []string `yaml:"version_args" json:"version_args,omitempty"`
	VersionRegex string   `yaml:"version_regex" json:"version_regex,omitempty"`

	// Roots lists conventional installation roots scanned by the
	// filesystem strategy. Entries may reference {arch_fragment}.
	Roots []string `yaml:"roots" json:"roots,omitempty"`
	// BinDir is the executable directory relative to an installation root.
	BinDir string `yaml:"bin_dir" json:"bin_dir,omitempty"`
	// PackageLayouts lists package-manager install layouts (scoop,
	// chocolatey, homebrew cellars) scanned after Roots.
	PackageLayouts []string `yaml:"package_layouts" json:"package_layouts,omitempty"`

	Inventory *InventoryConfig `yaml:"inventory" json:"inventory,omitempty"`

	// Registry lists Windows registry keys that record installation roots.
	// Consulted only on Windows.
	Registry []RegistryKey `yaml:"registry" json:"registry,omitempty"`

	Capabilities []Stage `yaml:"capabilities" json:"capabilities,omitempty"`

	// Compat is "msvc" or "posix" and feeds the two compatibility flags.
	Compat string `yaml:"compat" json:"compat,omitempty"`

	Env        *EnvConfig        `yaml:"env" json:"env,omitempty"`
	Activation *ActivationConfig `yaml:"activation" json:"activation,omitempty"`

	Cross *CrossConfig `yaml:"cross" json:"cross,omitempty"`
}

// IsCross reports whether the family targets a foreign platform.
func (c *Config) IsCross() bool { return c.Cross != nil }

// DisplayTitle returns Title, falling back to a title-cased family name.
func (c *Config) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(c.Name, "-", " "))
}

// DeriveCapabilities computes the capability flags implied by v under this
// family's stage table. Stages whose MinVersion fails to parse are skipped;
// the configuration schema rejects them before this point in practice.
func (c *Config) DeriveCapabilities(v version.Info) Capabilities {
	caps := Capabilities{
		MSVCCompatible:  c.Compat == "msvc",
		PosixCompatible: c.Compat == "posix",
	}
	for _, stage := range c.Capabilities {
		min, err := version.Parse(stage.MinVersion)
		if err != nil {
			continue
		}
		if !v.AtLeast(min) {
			continue
		}
		for _, flag := range stage.Sets {
			caps.set(flag)
		}
	}
	return caps
}

func (caps *Capabilities) set(flag string) {
	switch flag {
	case FlagCpp14:
		caps.Cpp14 = true
	case FlagCpp17:
		caps.Cpp17 = true
	case FlagCpp20:
		caps.Cpp20 = true
	case FlagCpp23:
		caps.Cpp23 = true
	case FlagModules:
		caps.Modules = true
	case FlagCoroutines:
		caps.Coroutines = true
	}
}

// File is the full families configuration: embedded defaults merged with
// any user override file.
type File struct {
	Version  string             `yaml:"version" json:"version"`
	Families map[string]*Config `yaml:"families" json:"families"`
}

// Get retrieves a family record by name.
func (f *File) Get(name string) (*Config, bool) {
	c, ok := f.Families[name]
	return c, ok
}

// Names returns all family names sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Families))
	for name := range f.Families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NativeNames returns the names of native (non-cross) families, sorted.
func (f *File) NativeNames() []string {
	var names []string
	for name, c := range f.Families {
		if !c.IsCross() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// CrossNames returns the names of cross-compilation families, sorted.
func (f *File) CrossNames() []string {
	var names []string
	for name, c := range f.Families {
		if c.IsCross() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
