// Init command: scaffolds a larder project.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fathomdata/larder/pkg/larder"
)

// Directories scaffolded under the project root. Files under data/private
// resolve as private catalog entries.
var projectDirs = []string{
	filepath.Join("data", "raw"),
	filepath.Join("data", "private"),
	"output",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a larder project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := larder.WriteDefaultConfig(resolvedConfigDir); err != nil {
			fail(exitSysError, err)
		}

		for _, dir := range projectDirs {
			if err := os.MkdirAll(filepath.Join(projectConfig.ProjectRoot, dir), 0o755); err != nil {
				fail(exitSysError, err)
			}
		}

		// Reload so the freshly written config takes effect, then open the
		// project to initialize the metadata store and cache dir.
		cfg, err := larder.LoadConfig(resolvedConfigDir, projectConfig.ProjectRoot)
		if err != nil {
			fail(exitSysError, err)
		}
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			fail(exitSysError, err)
		}
		project, err := larder.Open(cfg, newLogger())
		if err != nil {
			fail(exitSysError, err)
		}

		storeID, err := project.StoreID()
		if err != nil {
			fail(exitSysError, err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"project_root": cfg.ProjectRoot,
				"config_dir":   resolvedConfigDir,
				"store":        cfg.StorePath,
				"cache_dir":    cfg.CacheDir,
				"store_id":     storeID,
			})
		}
		fmt.Println("Larder project initialized")
		fmt.Println("  root:  ", cfg.ProjectRoot)
		fmt.Println("  config:", resolvedConfigDir)
		fmt.Println("  store: ", cfg.StorePath)
		fmt.Println("  cache: ", cfg.CacheDir)
		return nil
	},
}
