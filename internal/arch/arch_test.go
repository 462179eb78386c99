package arch

import (
	"runtime"
	"testing"

	"github.com/ccenv/ccenv/internal/errors"
)

func TestSpec_String(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"native x64", Spec{X64, X64}, "x64"},
		{"native arm64", Spec{ARM64, ARM64}, "arm64"},
		{"cross x64 to arm64", Spec{X64, ARM64}, "x64_arm64"},
		{"cross x86 to x64", Spec{X86, X64}, "x86_x64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromString_RoundTrip(t *testing.T) {
	// Every supported spelling must parse back to a spec that prints the
	// same spelling.
	for _, spelling := range Supported() {
		spec, err := FromString(spelling)
		if err != nil {
			t.Errorf("FromString(%q) error = %v", spelling, err)
			continue
		}
		if got := spec.String(); got != spelling {
			t.Errorf("FromString(%q).String() = %q", spelling, got)
		}
	}
}

func TestMatrix_Total(t *testing.T) {
	// Every supported combination must have all three derived values.
	for _, spelling := range Supported() {
		spec, _ := FromString(spelling)
		if spec.ScriptName() == "" {
			t.Errorf("%s: ScriptName() is empty", spelling)
		}
		if spec.PathFragment() == "" {
			t.Errorf("%s: PathFragment() is empty", spelling)
		}
		if spec.Triple() == "" {
			t.Errorf("%s: Triple() is empty", spelling)
		}
	}
}

func TestFromHostTarget_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		host, target string
	}{
		{"x86 host cannot target arm64", "x86", "arm64"},
		{"arm host unsupported", "arm", "arm"},
		{"arm64 host cannot target arm", "arm64", "arm"},
		{"unknown architecture", "mips", "mips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHostTarget(tt.host, tt.target)
			if err == nil {
				t.Fatalf("FromHostTarget(%q, %q) expected error", tt.host, tt.target)
			}
			if !errors.IsKind(err, errors.KindInvalidArgument) {
				t.Errorf("error kind = %v, want KindInvalidArgument", err)
			}
		})
	}
}

func TestSpec_ScriptName(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{X64, X64}, "vcvars64"},
		{Spec{X86, X86}, "vcvars32"},
		{Spec{X64, ARM64}, "vcvarsamd64_arm64"},
		{Spec{ARM64, X64}, "vcvarsarm64_amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			if got := tt.spec.ScriptName(); got != tt.want {
				t.Errorf("ScriptName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpec_Triple(t *testing.T) {
	// The triple depends only on the target column.
	for _, spelling := range []string{"x64", "x86_x64", "arm64_x64"} {
		spec, _ := FromString(spelling)
		if got := spec.Triple(); got != "x86_64-pc-windows-msvc" {
			t.Errorf("%s: Triple() = %q, want x86_64-pc-windows-msvc", spelling, got)
		}
	}
}

func TestSpec_GNUTriple(t *testing.T) {
	var suffix string
	switch runtime.GOOS {
	case "windows":
		suffix = "-w64-mingw32"
	case "darwin":
		suffix = "-apple-darwin"
	default:
		suffix = "-pc-linux-gnu"
	}

	tests := []struct {
		spec Spec
		cpu  string
	}{
		{Spec{X64, X64}, "x86_64"},
		{Spec{X64, X86}, "i686"},
		{Spec{X64, ARM64}, "aarch64"},
		{Spec{X64, ARM}, "armv7"},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			if got, want := tt.spec.GNUTriple(), tt.cpu+suffix; got != want {
				t.Errorf("GNUTriple() = %q, want %q", got, want)
			}
		})
	}
}

func TestNativeSpec(t *testing.T) {
	spec := NativeSpec()
	if !spec.Native() {
		t.Errorf("NativeSpec() = %v, want native", spec)
	}
	if spec.Cross() {
		t.Error("NativeSpec().Cross() = true, want false")
	}
}
