package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/explain"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List the built-in pattern library",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		entries := explain.Library()
		if len(args) == 1 {
			e, ok := explain.FindLibraryEntry(args[0])
			if !ok {
				return fmt.Errorf("no library entry named %q (have: %s)", args[0], libraryNames())
			}
			entries = []explain.LibraryEntry{e}
		}

		if asJSON {
			return writeJSON(out, entries)
		}
		for i, e := range entries {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printLibraryEntry(out, e)
		}
		return nil
	},
}

func init() {
	examplesCmd.Flags().Bool("json", false, "Print JSON")
}

func printLibraryEntry(w io.Writer, e explain.LibraryEntry) {
	fmt.Fprintf(w, "%s\n", e.Name)
	fmt.Fprintf(w, "  pattern:  %s\n", e.Pattern)
	fmt.Fprintf(w, "  %s\n", e.Description)
	fmt.Fprintf(w, "  valid:    %s\n", strings.Join(e.ValidExamples, ", "))
	fmt.Fprintf(w, "  invalid:  %s\n", strings.Join(e.InvalidExamples, ", "))
}

func libraryNames() string {
	var names []string
	for _, e := range explain.Library() {
		names = append(names, fmt.Sprintf("%q", e.Name))
	}
	return strings.Join(names, ", ")
}
