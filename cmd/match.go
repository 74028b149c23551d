package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/matcher"
)

// appFs is the filesystem commands read and write. Tests swap in an
// in-memory one.
var appFs = afero.NewOsFs()

var testCmd = &cobra.Command{
	Use:   "test <pattern> [line...]",
	Short: "Test a regular expression against sample lines",
	Long: `Search each line for the pattern and report the match and captured groups.
Lines come from the arguments and from --file ("-" reads stdin). Blank
lines are skipped.`,
	Example: `  regexlab test '^\d{2}-\d{2}-\d{4}$' 01-01-2023 1-1-2023
  regexlab test -i --file names.txt '^[a-z]+$'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringP("file", "f", "", `Read test lines from a file ("-" for stdin)`)
	testCmd.Flags().Bool("json", false, "Print JSON")
	addMatchFlags(testCmd)
}

type testOutput struct {
	Pattern string           `json:"pattern"`
	Flags   string           `json:"flags"`
	Results []matcher.Result `json:"results"`
	matcher.Stats
}

func runTest(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	lines := args[1:]
	file, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")
	flags := matchFlags(cmd)
	out := cmd.OutOrStdout()

	if file != "" {
		data, err := readInput(cmd, file)
		if err != nil {
			return err
		}
		lines = append(lines, matcher.SplitLines(string(data))...)
	}
	if len(lines) == 0 {
		return errors.New("no test lines: pass them as arguments or with --file")
	}

	results, err := matcher.Test(pattern, flags, lines)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	stats := matcher.Summary(results)

	if asJSON {
		return writeJSON(out, testOutput{
			Pattern: pattern,
			Flags:   flags.String(),
			Results: results,
			Stats:   stats,
		})
	}

	for _, r := range results {
		mark := "✗"
		if r.Matched {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %3d  %s", mark, r.Line, r.Text)
		if detail := matcher.FormatMatch(r); detail != "" {
			fmt.Fprintf(out, "  %s", detail)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, stats)
	return nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := afero.ReadFile(appFs, name)
	if err != nil {
		return nil, fmt.Errorf("read test lines: %w", err)
	}
	return data, nil
}
