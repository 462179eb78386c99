// Package cli provides the ccenv command-line interface.
package cli

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/errors"
	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
	"github.com/ccenv/ccenv/internal/output"
	"github.com/ccenv/ccenv/internal/registry"
)

// Version is set at build time.
var Version = "dev"

// out is the shared output writer for CLI commands.
var out = output.New()

var (
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ccenv",
	Short: "ccenv discovers and activates C/C++ toolchains",
	Long: `ccenv locates native and cross C/C++ toolchains on this machine,
ranks them by version and capability, selects a compatible build generator,
and produces an activated process environment for downstream build tools.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		out.SetQuiet(flagQuiet)
		if flagVerbose {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Lwarn)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Run executes the CLI with the given arguments and returns the process
// exit code.
func Run(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		out.ErrorPrefix("%v", err)
		out.Suggestion(errors.SuggestionOf(err))
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}

// invalidFamily builds the standard unknown-family error.
func invalidFamily(reg *registry.Registry, name string) error {
	return errors.InvalidArgument("toolchain family", name, reg.Families().Names())
}

// newRegistry loads the effective families configuration and builds a
// registry over the real system runner.
func newRegistry() (*registry.Registry, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	families, err := family.Load(wd)
	if err != nil {
		return nil, err
	}
	return registry.New(families, execx.System{}), nil
}
