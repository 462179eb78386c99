package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/detect"
	"github.com/ccenv/ccenv/internal/family"
)

var (
	detectArch    string
	detectRefresh bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [family...]",
	Short: "Detect installed toolchains",
	Long: `Detect locates installed toolchains for the named families, or for
every configured family when none is given, and prints them best first.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectArch, "arch", "", "architecture spec, e.g. x64 or x64_arm64")
	detectCmd.Flags().BoolVar(&detectRefresh, "refresh", false, "discard cached detection results first")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	if detectRefresh {
		reg.Refresh()
	}

	spec := arch.NativeSpec()
	if detectArch != "" {
		spec, err = arch.FromString(detectArch)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if len(args) == 0 {
		results, problems := reg.DetectAll(ctx)
		for _, name := range reg.Families().Names() {
			records, ok := results[name]
			if !ok {
				continue
			}
			cfg, _ := reg.Families().Get(name)
			printRecords(cfg, records)
		}
		for _, p := range problems {
			out.Warning("%s", p)
		}
		if len(results) == 0 {
			out.Info("no toolchains detected")
		}
		return nil
	}

	for _, name := range args {
		cfg, ok := reg.Families().Get(name)
		if !ok {
			return invalidFamily(reg, name)
		}
		if cfg.IsCross() {
			records, err := reg.DetectCross(ctx, name)
			if err != nil {
				return err
			}
			printCrossRecords(cfg, records)
			continue
		}
		records, err := reg.DetectFamily(ctx, name, spec)
		if err != nil {
			return err
		}
		printRecords(cfg, records)
	}
	return nil
}

func printRecords(cfg *family.Config, records []detect.Record) {
	out.Heading("%s", cfg.DisplayTitle())
	if len(records) == 0 {
		out.Info("  (not found)")
		return
	}
	for _, rec := range records {
		marker := " "
		if rec.Recommended {
			marker = "*"
		}
		out.Println("%s %-12s %s", marker, versionLabel(rec), rec.Path)
		out.Info("    arch %s, via %s%s", rec.Arch, rec.Provenance.Method, pkgSuffix(rec))
		if flags := capabilityFlags(rec.Capabilities); flags != "" {
			out.Info("    supports %s", flags)
		}
	}
}

func printCrossRecords(cfg *family.Config, records []detect.CrossRecord) {
	out.Heading("%s", cfg.DisplayTitle())
	if len(records) == 0 {
		out.Info("  (not found)")
		return
	}
	for _, rec := range records {
		out.Println("  %-12s %s", versionLabel(rec.Record), rec.Path)
		out.Info("    targets %s/%s (%s)", rec.TargetPlatform, rec.TargetArch, rec.Triple)
		if rec.Sysroot != "" {
			out.Info("    sysroot %s", rec.Sysroot)
		}
	}
}

func versionLabel(rec detect.Record) string {
	if !rec.HasVersion {
		return "unknown"
	}
	return rec.Version.String()
}

func pkgSuffix(rec detect.Record) string {
	if rec.Provenance.PackageManager == "" {
		return ""
	}
	return " (" + rec.Provenance.PackageManager + ")"
}

func capabilityFlags(caps family.Capabilities) string {
	var flags []string
	if caps.Cpp14 {
		flags = append(flags, "c++14")
	}
	if caps.Cpp17 {
		flags = append(flags, "c++17")
	}
	if caps.Cpp20 {
		flags = append(flags, "c++20")
	}
	if caps.Cpp23 {
		flags = append(flags, "c++23")
	}
	if caps.Modules {
		flags = append(flags, "modules")
	}
	if caps.Coroutines {
		flags = append(flags, "coroutines")
	}
	return strings.Join(flags, ", ")
}
