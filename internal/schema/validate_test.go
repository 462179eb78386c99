package schema

import (
	"os"
	"testing"
)

func TestValidateFamilies_EmbeddedDefaults(t *testing.T) {
	// The shipped default table must satisfy its own schema.
	data, err := os.ReadFile("../family/families.yaml")
	if err != nil {
		t.Fatalf("read default families: %v", err)
	}
	if err := ValidateFamilies(data); err != nil {
		t.Errorf("ValidateFamilies(defaults) error = %v", err)
	}
}

func TestValidateFamilies(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "minimal valid",
			yaml: `
version: "1"
families:
  gcc:
    compilers: [gcc]
`,
		},
		{
			name: "partial family override",
			yaml: `
families:
  gcc:
    roots: [/custom]
`,
		},
		{
			name: "empty document",
			yaml: `{}`,
		},
		{
			name: "unknown top-level key",
			yaml: `
toolchains: {}
`,
			wantErr: true,
		},
		{
			name: "unknown family field",
			yaml: `
families:
  gcc:
    flavor: classic
`,
			wantErr: true,
		},
		{
			name: "bad compat value",
			yaml: `
families:
  gcc:
    compat: sysv
`,
			wantErr: true,
		},
		{
			name: "bad capability flag",
			yaml: `
families:
  gcc:
    capabilities:
      - {min_version: "5.0", sets: [cpp26]}
`,
			wantErr: true,
		},
		{
			name: "bad min_version format",
			yaml: `
families:
  gcc:
    capabilities:
      - {min_version: "five", sets: [cpp14]}
`,
			wantErr: true,
		},
		{
			name: "stage without sets",
			yaml: `
families:
  gcc:
    capabilities:
      - {min_version: "5.0"}
`,
			wantErr: true,
		},
		{
			name: "bad platform",
			yaml: `
families:
  gcc:
    platforms: [freebsd]
`,
			wantErr: true,
		},
		{
			name: "cross missing triple",
			yaml: `
families:
  aarch64-gcc:
    cross:
      target_platform: linux
      target_arch: arm64
`,
			wantErr: true,
		},
		{
			name:    "not YAML",
			yaml:    "families: [\x00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFamilies([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFamilies() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
