// Cache commands: list and purge cached computations.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and purge the computation cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cache records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		records, err := project.CacheRecords()
		if err != nil {
			fail(exitSysError, err)
		}

		if flagJSON {
			return printJSON(records)
		}
		w := newTable()
		fmt.Fprintln(w, "NAME\tHASH\tEXPIRES\tLAST READ")
		for _, r := range records {
			expires := "never"
			if r.ExpireAt != nil {
				expires = r.ExpireAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%s\t%.12s\t%s\t%s\n", r.Name, r.Hash, expires, r.LastReadAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge [name]",
	Short: "Remove one cache entry, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}

		if flagPurgeAll {
			records, err := project.CacheRecords()
			if err != nil {
				fail(exitSysError, err)
			}
			for _, r := range records {
				if err := project.CacheInvalidate(r.Name); err != nil {
					fail(exitSysError, err)
				}
			}
			fmt.Println("purged", len(records), "cache entries")
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("a cache name or --all is required")
		}
		if err := project.CacheInvalidate(args[0]); err != nil {
			fail(exitUserError, err)
		}
		fmt.Println("purged", args[0])
		return nil
	},
}

var flagPurgeAll bool

func init() {
	cachePurgeCmd.Flags().BoolVar(&flagPurgeAll, "all", false, "purge every cache entry")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}
