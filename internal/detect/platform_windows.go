//go:build windows

package detect

import (
	"context"

	"golang.org/x/sys/windows/registry"

	"github.com/ccenv/ccenv/internal/family"
)

// platformStrategies contributes the Windows registry strategy when the
// family configures registry keys.
func platformStrategies(cfg *family.Config, fragment string) []Strategy {
	if len(cfg.Registry) == 0 {
		return nil
	}
	return []Strategy{&registryStrategy{cfg: cfg, fragment: fragment}}
}

// registryStrategy reads installation roots from HKLM registry keys. Keys
// are tried under both the 64-bit and WOW64 views.
type registryStrategy struct {
	cfg      *family.Config
	fragment string
}

func (s *registryStrategy) Name() string { return "registry" }

func (s *registryStrategy) Discover(ctx context.Context) ([]Candidate, error) {
	var out []Candidate
	for _, entry := range s.cfg.Registry {
		for _, root := range s.readRoots(entry) {
			out = append(out, scanRoot(s.cfg, root, s.fragment, s.Name(), "")...)
		}
	}
	return out, nil
}

func (s *registryStrategy) readRoots(entry family.RegistryKey) []string {
	var roots []string
	for _, access := range []uint32{registry.READ | registry.WOW64_64KEY, registry.READ | registry.WOW64_32KEY} {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, entry.Key, access)
		if err != nil {
			continue
		}
		if entry.Values == "all" {
			names, err := key.ReadValueNames(0)
			if err == nil {
				for _, name := range names {
					if v, _, err := key.GetStringValue(name); err == nil && v != "" {
						roots = append(roots, v)
					}
				}
			}
		} else {
			if v, _, err := key.GetStringValue(""); err == nil && v != "" {
				roots = append(roots, v)
			}
		}
		key.Close()
	}
	return roots
}
