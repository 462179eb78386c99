package cli

import (
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/arch"
	"github.com/ccenv/ccenv/internal/envsession"
)

var (
	activateArch  string
	activatePrint bool
)

var activateCmd = &cobra.Command{
	Use:   "activate <family>",
	Short: "Print the activation environment for a toolchain family",
	Long: `Activate resolves the family to its recommended toolchain, computes the
environment that toolchain needs, and prints it as shell assignments on
stdout. Evaluate the output in the calling shell:

  eval "$(ccenv activate gcc --print)"`,
	Args: cobra.ExactArgs(1),
	RunE: runActivate,
}

func init() {
	activateCmd.Flags().StringVar(&activateArch, "arch", "", "architecture spec, e.g. x64 or x64_arm64")
	activateCmd.Flags().BoolVar(&activatePrint, "print", false, "print the activation diff as shell assignments")
	rootCmd.AddCommand(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	spec := arch.NativeSpec()
	if activateArch != "" {
		spec, err = arch.FromString(activateArch)
		if err != nil {
			return err
		}
	}

	rec, err := reg.Detect(cmd.Context(), args[0], spec)
	if err != nil {
		return err
	}

	original := envsession.Capture()
	activated, err := reg.Activate(cmd.Context(), args[0], spec)
	if err != nil {
		return err
	}
	defer reg.Restore()

	if !activatePrint {
		out.Success("activated %s %s (%s)", rec.Family, versionLabel(*rec), spec)
		out.Info("re-run with --print to emit shell assignments")
		return nil
	}

	diff := original.Diff(activated)
	printAssignments(diff.Added)
	printAssignments(diff.Changed)
	return nil
}

// printAssignments emits the variables as shell assignments, sorted for
// stable output.
func printAssignments(vars map[string]string) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if runtime.GOOS == "windows" {
			out.Println("set %s=%s", name, vars[name])
		} else {
			out.Println("export %s=%q", name, strings.ReplaceAll(vars[name], "\n", ""))
		}
	}
}
