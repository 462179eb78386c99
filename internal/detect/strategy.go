package detect

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/pkgmgr"
)

// Candidate is one executable location produced by a strategy, before
// version probing.
type Candidate struct {
	Path           string
	Root           string
	Method         string
	PackageManager string
}

// Strategy is one independent discovery technique in a family's detection
// chain. Strategies are exception-isolated: an error aborts only that
// strategy, never the family detection.
type Strategy interface {
	Name() string
	Discover(ctx context.Context) ([]Candidate, error)
}

// exeSuffix is appended to configured compiler names on Windows.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// expandPattern substitutes the {home} and {arch_fragment} placeholders
// used in root and bin-dir patterns.
func expandPattern(pattern, fragment string) string {
	if strings.Contains(pattern, "{home}") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		pattern = strings.ReplaceAll(pattern, "{home}", home)
	}
	return strings.ReplaceAll(pattern, "{arch_fragment}", fragment)
}

// scanRoot locates configured compiler executables under one installation
// root, honoring glob patterns in the bin-dir.
func scanRoot(cfg *family.Config, root, fragment, method, packageManager string) []Candidate {
	binPattern := expandPattern(cfg.BinDir, fragment)
	if binPattern == "" {
		binPattern = "bin"
	}

	binDirs, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(binPattern)))
	if err != nil || len(binDirs) == 0 {
		return nil
	}

	var out []Candidate
	for _, binDir := range binDirs {
		for _, name := range cfg.Compilers {
			path := filepath.Join(binDir, name+exeSuffix())
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				continue
			}
			out = append(out, Candidate{
				Path:           path,
				Root:           root,
				Method:         method,
				PackageManager: packageManager,
			})
			break // first matching compiler name wins per bin dir
		}
	}
	return out
}

// rootsStrategy scans the family's conventional installation roots.
type rootsStrategy struct {
	cfg      *family.Config
	fragment string
	patterns []string
	method   string
}

func (s *rootsStrategy) Name() string { return s.method }

func (s *rootsStrategy) Discover(ctx context.Context) ([]Candidate, error) {
	var out []Candidate
	for _, pattern := range s.patterns {
		expanded := expandPattern(pattern, s.fragment)
		if expanded == "" {
			continue
		}
		roots, err := filepath.Glob(filepath.FromSlash(expanded))
		if err != nil {
			continue
		}
		for _, root := range roots {
			out = append(out, scanRoot(s.cfg, root, s.fragment, s.method, "")...)
		}
	}
	return out, nil
}

// inventoryStrategy asks the platform's install-inventory tool. For
// path-shaped output each reported location becomes an installation root;
// for pair-shaped output the inventory only confirms the package is
// present, and the family's configured roots are scanned with inventory
// provenance.
type inventoryStrategy struct {
	cfg      *family.Config
	runner   execx.Runner
	fragment string
}

func (s *inventoryStrategy) Name() string { return "inventory" }

func (s *inventoryStrategy) Discover(ctx context.Context) ([]Candidate, error) {
	inv := s.cfg.Inventory
	pkgs, ok := pkgmgr.Query(ctx, s.runner, inv)
	if !ok {
		return nil, nil
	}

	var out []Candidate
	if inv.Parse == "paths" {
		for _, pkg := range pkgs {
			out = append(out, scanRoot(s.cfg, pkg.Location, s.fragment, s.Name(), inv.PackageManager)...)
		}
		return out, nil
	}

	for _, pattern := range s.cfg.Roots {
		expanded := expandPattern(pattern, s.fragment)
		if expanded == "" {
			continue
		}
		roots, err := filepath.Glob(filepath.FromSlash(expanded))
		if err != nil {
			continue
		}
		for _, root := range roots {
			out = append(out, scanRoot(s.cfg, root, s.fragment, s.Name(), inv.PackageManager)...)
		}
	}
	return out, nil
}

// pathStrategy is the generic fallback: look each configured compiler name
// up on the search path.
type pathStrategy struct {
	cfg    *family.Config
	runner execx.Runner
}

func (s *pathStrategy) Name() string { return "path" }

func (s *pathStrategy) Discover(ctx context.Context) ([]Candidate, error) {
	var out []Candidate
	for _, name := range s.cfg.Compilers {
		path, ok := s.runner.LookPath(name)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			Path:   path,
			Root:   filepath.Dir(filepath.Dir(path)),
			Method: s.Name(),
		})
		break
	}
	return out, nil
}
