package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newspulse/internal/analysis"
	"newspulse/internal/budget"
	"newspulse/internal/dates"
)

var flagAllowOverage bool

var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Analyze news headlines for a single day",
	Long: `Fetch, filter and score headlines for one day.

The date can be machine-formatted (2025-06-14) or natural language ("yesterday").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dates.ParseDay(args[0], time.Now())
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

		report, err := a.pipeline.AnalyzeDay(cmd.Context(), day, opts)
		if err != nil {
			var exhausted *budget.ExhaustedError
			if errors.As(err, &exhausted) {
				return fmt.Errorf("%w (retry next month or pass --allow-overage)", err)
			}
			return err
		}

		fmt.Println(renderDayReport(report))
		return nil
	},
}

func init() {
	dayCmd.Flags().BoolVar(&flagAllowOverage, "allow-overage", false, "permit spending past the monthly allowance")
	monthCmd.Flags().BoolVar(&flagAllowOverage, "allow-overage", false, "permit spending past the monthly allowance")
}
