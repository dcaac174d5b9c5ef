package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newspulse/internal/analysis"
	"newspulse/internal/dates"
)

var monthCmd = &cobra.Command{
	Use:   "month <from> <to>",
	Short: "Analyze news headlines for each month in a range",
	Long: `Analyze every calendar month from <from> through <to> inclusive (YYYY-MM).

Months that fail (provider or budget) are reported inline; the rest of the
range still completes. A from after to yields an empty range.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := dates.ParseMonth(args[0])
		if err != nil {
			return err
		}
		to, err := dates.ParseMonth(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		opts := analysis.RunOptions{}
		if cmd.Flags().Changed("allow-overage") {
			opts.AllowOverage = &flagAllowOverage
		}

		report, err := a.pipeline.AnalyzeMonths(cmd.Context(), from, to, opts)
		if err != nil {
			return err
		}

		fmt.Println(renderMonthRange(report))
		return nil
	},
}
