// Serve command: the JSON API for the settings GUI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/fathomdata/larder/internal/server"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project over a local JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		e := server.New(project)
		return e.Start(flagServeAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "127.0.0.1:8787", "listen address")
}
