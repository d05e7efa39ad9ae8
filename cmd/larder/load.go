// Load command: read, verify, and print a catalog entry.
package main

import (
	"github.com/spf13/cobra"
)

var flagLoadCached bool

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a catalog entry and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}

		var value any
		if flagLoadCached {
			value, err = project.LoadCached(args[0])
		} else {
			value, err = project.Load(args[0])
		}
		if err != nil {
			fail(exitUserError, err)
		}
		return printJSON(value)
	},
}

func init() {
	loadCmd.Flags().BoolVar(&flagLoadCached, "cached", false, "serve from the computation cache when valid")
}
