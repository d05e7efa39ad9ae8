// Larder is a local-first data catalog and cache for reproducible analysis
// projects.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
