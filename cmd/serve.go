package cmd

import (
	"github.com/spf13/cobra"

	"newspulse/internal/mcptool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyze_day and analyze_month MCP tools on stdio",
	Long: `Run newspulse as an MCP server over stdio.

All logging goes to stderr; stdout carries the MCP transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		server := mcptool.NewServer(a.pipeline, a.log, version)
		return server.Run(cmd.Context())
	},
}
