//go:build !windows

package detect

import "github.com/ccenv/ccenv/internal/family"

// platformStrategies contributes OS-specific strategies. There are none
// outside Windows; the registry strategy lives in platform_windows.go.
func platformStrategies(cfg *family.Config, fragment string) []Strategy {
	return nil
}
