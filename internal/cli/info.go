package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/arch"
)

var infoArch string

var infoCmd = &cobra.Command{
	Use:   "info <family>",
	Short: "Show details for one toolchain family",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoArch, "arch", "", "architecture spec, e.g. x64 or x64_arm64")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	name := args[0]
	cfg, ok := reg.Families().Get(name)
	if !ok {
		return invalidFamily(reg, name)
	}

	spec := arch.NativeSpec()
	if infoArch != "" {
		spec, err = arch.FromString(infoArch)
		if err != nil {
			return err
		}
	}

	out.Heading("%s", cfg.DisplayTitle())
	out.Println("  family:    %s", cfg.Name)
	out.Println("  compilers: %s", strings.Join(cfg.Compilers, ", "))
	out.Println("  platforms: %s", strings.Join(cfg.Platforms, ", "))
	if cfg.IsCross() {
		out.Println("  target:    %s/%s (%s)", cfg.Cross.TargetPlatform, cfg.Cross.TargetArch, cfg.Cross.Triple)
	}

	rec, err := reg.Detect(cmd.Context(), name, spec)
	if err != nil {
		return err
	}
	out.Println("  version:   %s", versionLabel(*rec))
	out.Println("  path:      %s", rec.Path)
	if rec.Provenance.Root != "" {
		out.Println("  root:      %s", rec.Provenance.Root)
	}
	out.Println("  via:       %s%s", rec.Provenance.Method, pkgSuffix(*rec))
	if flags := capabilityFlags(rec.Capabilities); flags != "" {
		out.Println("  supports:  %s", flags)
	}
	for _, dir := range rec.Hints.IncludeDirs {
		out.Info("  include:   %s", dir)
	}
	for _, dir := range rec.Hints.LibDirs {
		out.Info("  lib:       %s", dir)
	}
	return nil
}
