package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the month-to-date token ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		snap := a.governor.Snapshot()
		fmt.Printf("Month-to-date: %d / %d tokens\n", snap.MTDTokens, snap.MonthlyAllowance)
		fmt.Printf("Soft cap: %.0f%% (%d tokens)\n", snap.SoftCapPct,
			int(snap.SoftCapPct/100*float64(snap.MonthlyAllowance)))
		fmt.Printf("Hard cap: %.0f%% (%d tokens)\n", snap.HardCapPct,
			int(snap.HardCapPct/100*float64(snap.MonthlyAllowance)))
		return nil
	},
}
