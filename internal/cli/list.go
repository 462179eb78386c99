package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured toolchain families",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	families := reg.Families()
	out.Heading("Native families")
	for _, name := range families.NativeNames() {
		cfg, _ := families.Get(name)
		out.Println("  %-14s %s (%s)", name, cfg.DisplayTitle(), strings.Join(cfg.Platforms, ", "))
	}

	crossNames := families.CrossNames()
	if len(crossNames) == 0 {
		return nil
	}
	out.Heading("Cross families")
	for _, name := range crossNames {
		cfg, _ := families.Get(name)
		out.Println("  %-14s %s -> %s/%s", name, cfg.DisplayTitle(), cfg.Cross.TargetPlatform, cfg.Cross.TargetArch)
	}
	return nil
}
