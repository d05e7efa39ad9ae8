// Verify and rebaseline commands: the data governance audit surface.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fathomdata/larder/internal/loader"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [name]",
	Short: "Re-hash catalog entries and report drift or violations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}

		var results []loader.VerifyResult
		if len(args) == 1 {
			res, err := project.Verify(args[0])
			if err != nil {
				fail(exitUserError, err)
			}
			results = []loader.VerifyResult{res}
		} else {
			results, err = project.VerifyAll()
			if err != nil {
				fail(exitUserError, err)
			}
		}

		violations := 0
		for _, r := range results {
			if r.Status == loader.StatusViolation {
				violations++
			}
		}

		if flagJSON {
			if err := printJSON(results); err != nil {
				return err
			}
		} else {
			w := newTable()
			fmt.Fprintln(w, "NAME\tSTATUS\tLOCKED\tPATH")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", r.Name, r.Status, r.Locked, r.Path)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if violations > 0 {
			return fmt.Errorf("%d locked entries changed; run larder rebaseline to accept", violations)
		}
		return nil
	},
}

var rebaselineCmd = &cobra.Command{
	Use:   "rebaseline <name>",
	Short: "Accept an entry's current content as the new baseline",
	Long: "Rebaseline re-records the entry's current hash. This is the only\n" +
		"remediation for a locked entry whose content legitimately changed;\n" +
		"loads never update a locked baseline.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			fail(exitSysError, err)
		}
		if err := project.Rebaseline(args[0]); err != nil {
			fail(exitUserError, err)
		}
		fmt.Println("rebaselined", args[0])
		return nil
	},
}
