package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/structure"
)

var treeCmd = &cobra.Command{
	Use:   "tree <pattern>",
	Short: "Show the syntax tree and capture groups of a pattern",
	Long: `Parse the pattern and print its syntax tree, the s-expression form and
the exact capture groups. The lexical explanation only estimates groups,
so its count is shown alongside for comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		out := cmd.OutOrStdout()

		outline, err := structure.Parse(pattern)
		if err != nil {
			return err
		}

		fmt.Fprint(out, outline.Tree())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "syntax:   %s\n", outline.Syntax)
		fmt.Fprintf(out, "captures: %d\n", outline.Captures())
		for _, g := range outline.Groups {
			name := g.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(out, "  $%d  %-10s %s\n", g.Index, name, g.Text)
		}

		for _, s := range explain.Analyze(pattern, nil) {
			if strings.Contains(s, "capture group(s)") {
				fmt.Fprintf(out, "estimate: %s\n", s)
			}
		}
		return nil
	},
}
