/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// serveCmd runs the web server without opening a browser.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server without opening a browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), appConfig, nil, false)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServerFlags(serveCmd)
}
