package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/matcher"
)

// addMatchFlags registers the compile flag switches on cmd.
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolP("multiline", "m", false, "Let ^ and $ match at line breaks")
	cmd.Flags().BoolP("dot-all", "s", false, "Let . match newlines")
	cmd.Flags().BoolP("verbose", "x", false, "Ignore whitespace and # comments in the pattern")
}

func matchFlags(cmd *cobra.Command) matcher.Flags {
	var f matcher.Flags
	f.IgnoreCase, _ = cmd.Flags().GetBool("ignore-case")
	f.Multiline, _ = cmd.Flags().GetBool("multiline")
	f.DotAll, _ = cmd.Flags().GetBool("dot-all")
	f.Verbose, _ = cmd.Flags().GetBool("verbose")
	return f
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// documentOutput is the --json form of an explanation.
type documentOutput struct {
	Pattern    string   `json:"pattern"`
	Model      string   `json:"model,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
	explain.Document
}

func printDocument(w io.Writer, out documentOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	fmt.Fprintln(w, explain.Format(out.Document))
	for _, m := range out.Mismatches {
		fmt.Fprintf(w, "warning: %s\n", m)
	}
	return nil
}

func mismatchStrings(ms []assist.Mismatch) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func rule(n int) string {
	return strings.Repeat("─", n)
}
