package family

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ccenv/ccenv/internal/schema"
)

//go:embed families.yaml
var defaultsYAML []byte

// OverridePath is the user override file, relative to the working tree.
const OverridePath = ".ccenv/families.yaml"

// Defaults parses the embedded family table. The embedded table is
// validated at build time by its schema test, so a parse failure here is a
// programming error.
func Defaults() (*File, error) {
	return parse(defaultsYAML)
}

// Load returns the effective families configuration: embedded defaults with
// the user override file (if present under root) merged on top. Overrides
// are validated against the configuration schema before merging; users only
// specify the fields they want to change.
func Load(root string) (*File, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}

	overridePath := filepath.Join(root, filepath.FromSlash(OverridePath))
	data, err := os.ReadFile(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("read families override: %w", err)
	}

	if err := schema.ValidateFamilies(data); err != nil {
		return nil, fmt.Errorf("families override %s: %w", overridePath, err)
	}

	override, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("families override %s: %w", overridePath, err)
	}

	return Merge(defaults, override), nil
}

func parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse families configuration: %w", err)
	}
	for name, cfg := range f.Families {
		if cfg == nil {
			cfg = &Config{}
			f.Families[name] = cfg
		}
		cfg.Name = name
	}
	return &f, nil
}

// Merge layers override on top of defaults. Families present only in the
// override are added whole; families present in both are merged field by
// field, with non-zero override fields winning.
func Merge(defaults, override *File) *File {
	result := &File{
		Version:  defaults.Version,
		Families: make(map[string]*Config, len(defaults.Families)),
	}
	if override.Version != "" {
		result.Version = override.Version
	}

	for name, cfg := range defaults.Families {
		copied := *cfg
		result.Families[name] = &copied
	}

	for name, over := range override.Families {
		base, ok := result.Families[name]
		if !ok {
			copied := *over
			copied.Name = name
			result.Families[name] = &copied
			continue
		}
		mergeConfig(base, over)
	}

	return result
}

// mergeConfig overwrites base fields with non-zero override fields. List
// and map fields replace rather than append: an override that names a field
// owns it entirely, matching how the default table is authored.
func mergeConfig(base, over *Config) {
	if over.Title != "" {
		base.Title = over.Title
	}
	if len(over.Compilers) > 0 {
		base.Compilers = over.Compilers
	}
	if len(over.Platforms) > 0 {
		base.Platforms = over.Platforms
	}
	if len(over.VersionArgs) > 0 {
		base.VersionArgs = over.VersionArgs
	}
	if over.VersionRegex != "" {
		base.VersionRegex = over.VersionRegex
	}
	if len(over.Roots) > 0 {
		base.Roots = over.Roots
	}
	if over.BinDir != "" {
		base.BinDir = over.BinDir
	}
	if len(over.PackageLayouts) > 0 {
		base.PackageLayouts = over.PackageLayouts
	}
	if over.Inventory != nil {
		base.Inventory = over.Inventory
	}
	if len(over.Registry) > 0 {
		base.Registry = over.Registry
	}
	if len(over.Capabilities) > 0 {
		base.Capabilities = over.Capabilities
	}
	if over.Compat != "" {
		base.Compat = over.Compat
	}
	if over.Env != nil {
		base.Env = over.Env
	}
	if over.Activation != nil {
		base.Activation = over.Activation
	}
	if over.Cross != nil {
		base.Cross = over.Cross
	}
}
