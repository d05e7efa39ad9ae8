// Data commands: catalog listing and integrity records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect the data catalog",
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		entries, err := project.Entries()
		if err != nil {
			fail(exitUserError, err)
		}

		if flagJSON {
			return printJSON(entries)
		}
		w := newTable()
		fmt.Fprintln(w, "NAME\tFORMAT\tLOCKED\tENCRYPTED\tPATH")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\n", e.LogicalPath, e.Format, e.Locked, e.Encrypted, e.FilePath)
		}
		return w.Flush()
	},
}

var dataRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List integrity records for data entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		records, err := project.DataRecords()
		if err != nil {
			fail(exitSysError, err)
		}

		if flagJSON {
			return printJSON(records)
		}
		w := newTable()
		fmt.Fprintln(w, "NAME\tHASH\tLAST READ")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%.12s\t%s\n", r.Name, r.Hash, r.LastReadAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var dataShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		entry, err := project.Resolve(args[0])
		if err != nil {
			fail(exitUserError, err)
		}
		return printJSON(entry)
	},
}

func init() {
	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataRecordsCmd)
	dataCmd.AddCommand(dataShowCmd)
}
