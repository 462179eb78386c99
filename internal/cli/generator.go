package cli

import (
	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/generator"
)

var (
	genPlatform    string
	genMultiConfig bool
	genNoFallback  bool
)

var generatorCmd = &cobra.Command{
	Use:   "generator <family>",
	Short: "Select a build generator for a toolchain family",
	Long: `Generator picks the preferred build-file generator for the family on
the target platform, walking the candidate list when the preferred one is
unavailable. The selected name is printed on stdout for use with cmake -G.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerator,
}

func init() {
	generatorCmd.Flags().StringVar(&genPlatform, "platform", "", "target platform (default: current)")
	generatorCmd.Flags().BoolVar(&genMultiConfig, "multi-config", false, "prefer multi-configuration generators")
	generatorCmd.Flags().BoolVar(&genNoFallback, "no-fallback", false, "fail instead of falling back to the next candidate")
	rootCmd.AddCommand(generatorCmd)
}

func runGenerator(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	sel, err := reg.SelectGenerator(args[0], genPlatform, generator.Options{
		PreferMultiConfig: genMultiConfig,
		AllowFallback:     !genNoFallback,
	})
	if err != nil {
		return err
	}

	for _, w := range sel.Warnings {
		out.Warning("%s", w)
	}
	if sel.FallbackUsed {
		out.Warning("preferred generator unavailable, falling back to %s", sel.Generator.Name)
	}
	out.Println("%s", sel.Generator.Name)
	return nil
}
