package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/explain"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Print a regular expression cheat sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, section := range explain.Guide() {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, section.Title)
			fmt.Fprintln(out, rule(len(section.Title)))
			for _, e := range section.Entries {
				fmt.Fprintf(out, "  %-14s %-48s %s\n", e.Syntax, e.Meaning, e.Example)
			}
		}
		return nil
	},
}
