// Status command: project overview.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project configuration and record counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}

		entries, err := project.Entries()
		if err != nil {
			fail(exitSysError, err)
		}
		dataRecords, err := project.DataRecords()
		if err != nil {
			fail(exitSysError, err)
		}
		cacheRecords, err := project.CacheRecords()
		if err != nil {
			fail(exitSysError, err)
		}
		storeID, err := project.StoreID()
		if err != nil {
			fail(exitSysError, err)
		}

		cfg := project.Config()
		if flagJSON {
			return printJSON(map[string]any{
				"project_root":    cfg.ProjectRoot,
				"store":           cfg.StorePath,
				"store_id":        storeID,
				"cache_dir":       cfg.CacheDir,
				"cache_ttl_hours": cfg.CacheTTLHours,
				"catalog_entries": len(entries),
				"data_records":    len(dataRecords),
				"cache_records":   len(cacheRecords),
			})
		}

		fmt.Println("root:            ", cfg.ProjectRoot)
		fmt.Println("store:           ", cfg.StorePath)
		fmt.Println("store id:        ", storeID)
		fmt.Println("cache dir:       ", cfg.CacheDir)
		fmt.Println("cache ttl hours: ", cfg.CacheTTLHours)
		fmt.Println("catalog entries: ", len(entries))
		fmt.Println("data records:    ", len(dataRecords))
		fmt.Println("cache records:   ", len(cacheRecords))
		return nil
	},
}
