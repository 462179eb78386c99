// Package arch defines the closed host×target architecture matrix and the
// static mappings derived from it: activation-script names, host/target
// path fragments inside a toolchain tree, and canonical target triples.
//
// The matrix is explicitly enumerated. Adding an architecture combination
// is a single table edit; no other component branches on architecture.
package arch

import (
	"runtime"
	"sort"
	"strings"

	"github.com/ccenv/ccenv/internal/errors"
)

// ID names a CPU architecture in toolchain vocabulary.
type ID string

const (
	X86   ID = "x86"
	X64   ID = "x64"
	ARM   ID = "arm"
	ARM64 ID = "arm64"
)

// Spec is a validated (host, target) pair drawn from the supported matrix.
// Native/Cross are computed, never stored.
type Spec struct {
	Host   ID
	Target ID
}

// Native reports whether the spec compiles for the architecture it runs on.
func (s Spec) Native() bool { return s.Host == s.Target }

// Cross reports whether the spec targets a different architecture.
func (s Spec) Cross() bool { return !s.Native() }

// String returns the canonical spelling: the bare target for native specs
// ("x64"), host_target for cross specs ("x64_arm64"). FromString accepts
// exactly this form, so round-tripping is lossless.
func (s Spec) String() string {
	if s.Native() {
		return string(s.Target)
	}
	return string(s.Host) + "_" + string(s.Target)
}

// mapping holds the per-combination derived values. All three columns are
// static data; nothing computes them procedurally.
type mapping struct {
	script   string // activation-script name inside the toolchain tree
	fragment string // host-dir/target-dir fragment for locating executables
	triple   string // canonical target triple
}

// matrix is the closed set of supported host×target combinations. Pairs
// absent from this table are invalid: notably, 32-bit hosts cannot target
// arm64, and arm hosts are not supported at all.
var matrix = map[Spec]mapping{
	{X86, X86}:     {"vcvars32", "Hostx86/x86", "i686-pc-windows-msvc"},
	{X86, X64}:     {"vcvarsx86_amd64", "Hostx86/x64", "x86_64-pc-windows-msvc"},
	{X86, ARM}:     {"vcvarsx86_arm", "Hostx86/arm", "armv7-pc-windows-msvc"},
	{X64, X86}:     {"vcvarsamd64_x86", "Hostx64/x86", "i686-pc-windows-msvc"},
	{X64, X64}:     {"vcvars64", "Hostx64/x64", "x86_64-pc-windows-msvc"},
	{X64, ARM}:     {"vcvarsamd64_arm", "Hostx64/arm", "armv7-pc-windows-msvc"},
	{X64, ARM64}:   {"vcvarsamd64_arm64", "Hostx64/arm64", "aarch64-pc-windows-msvc"},
	{ARM64, X86}:   {"vcvarsarm64_x86", "Hostarm64/x86", "i686-pc-windows-msvc"},
	{ARM64, X64}:   {"vcvarsarm64_amd64", "Hostarm64/x64", "x86_64-pc-windows-msvc"},
	{ARM64, ARM64}: {"vcvarsarm64", "Hostarm64/arm64", "aarch64-pc-windows-msvc"},
}

// ScriptName returns the activation-script name for this combination.
func (s Spec) ScriptName() string { return matrix[s].script }

// PathFragment returns the "host-dir/target-dir" fragment used to locate
// compiler executables inside a toolchain installation.
func (s Spec) PathFragment() string { return matrix[s].fragment }

// Triple returns the canonical MSVC-convention target triple.
func (s Spec) Triple() string { return matrix[s].triple }

// gnuCPU maps matrix IDs onto GNU triple CPU names.
var gnuCPU = map[ID]string{X86: "i686", X64: "x86_64", ARM: "armv7", ARM64: "aarch64"}

// GNUTriple returns the conventional GNU-style triple for the target on the
// running platform. POSIX-convention toolchains (gcc, clang, the MinGW
// subsystems) expect this form in CHOST-style variables, not the MSVC one.
func (s Spec) GNUTriple() string {
	cpu := gnuCPU[s.Target]
	switch runtime.GOOS {
	case "windows":
		return cpu + "-w64-mingw32"
	case "darwin":
		return cpu + "-apple-darwin"
	default:
		return cpu + "-pc-linux-gnu"
	}
}

// Supported returns every valid spec spelling, sorted, for error messages.
func Supported() []string {
	specs := make([]string, 0, len(matrix))
	for s := range matrix {
		specs = append(specs, s.String())
	}
	sort.Strings(specs)
	return specs
}

// FromHostTarget validates a (host, target) pair against the matrix.
func FromHostTarget(host, target string) (Spec, error) {
	s := Spec{Host: ID(host), Target: ID(target)}
	if _, ok := matrix[s]; !ok {
		return Spec{}, errors.InvalidArgument("architecture combination", host+"/"+target, Supported())
	}
	return s, nil
}

// FromString parses a canonical spec spelling: a bare architecture for
// native specs, or host_target for cross specs.
func FromString(s string) (Spec, error) {
	if host, target, ok := strings.Cut(s, "_"); ok {
		return FromHostTarget(host, target)
	}
	return FromHostTarget(s, s)
}

// HostID maps the running process architecture onto the matrix vocabulary.
func HostID() ID {
	switch runtime.GOARCH {
	case "386":
		return X86
	case "arm":
		return ARM
	case "arm64":
		return ARM64
	default:
		return X64
	}
}

// NativeSpec returns the native spec for the running host.
func NativeSpec() Spec {
	h := HostID()
	return Spec{Host: h, Target: h}
}
