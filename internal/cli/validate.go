package cli

import (
	"github.com/spf13/cobra"

	"github.com/ccenv/ccenv/internal/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate detected toolchains and their activation prerequisites",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	report := reg.ValidateAll(cmd.Context())
	for _, w := range report.Warnings {
		out.Warning("%s", w)
	}
	for _, p := range report.Errors {
		out.ErrorPrefix("%s", p)
		out.Suggestion(p.Suggestion)
	}

	if !report.Valid {
		return errors.Validationf("%d problem(s) found", len(report.Errors))
	}
	out.Success("all detected toolchains are valid")
	return nil
}
