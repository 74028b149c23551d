package cmd

import (
	"fmt"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain <pattern>",
	Short: "Explain a regular expression in plain language",
	Long: `Explain a regular expression.

Without flags the explanation is built locally: well-known patterns get a
curated description with examples, anything else is described piece by
piece. --ai asks the configured language model instead, and --structured
asks it for sentences plus examples, which are then checked against the
pattern.`,
	Example: `  regexlab explain '^\d{5}$'
  regexlab explain --ai --prompt 'Explain in French' '^[A-Z]{2}\d+$'
  regexlab explain --structured --json '^0[1-9]([ .-]?\d{2}){4}$'`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Bool("ai", false, "Ask the language model for a free-text explanation")
	explainCmd.Flags().String("prompt", "", "Custom prompt for --ai; the pattern is appended to it")
	explainCmd.Flags().Bool("structured", false, "Ask the language model for sentences and examples")
	explainCmd.Flags().Bool("json", false, "Print JSON")
	addMatchFlags(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	useAI, _ := cmd.Flags().GetBool("ai")
	prompt, _ := cmd.Flags().GetString("prompt")
	structured, _ := cmd.Flags().GetBool("structured")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if !useAI && !structured && prompt == "" {
		return printDocument(out, documentOutput{Pattern: pattern, Document: explain.Explain(pattern)}, asJSON)
	}

	return withAssistant(cmd, func(svc *assist.Service) error {
		ctx := cmd.Context()

		if structured {
			doc, err := svc.ExplainStructured(ctx, pattern)
			if err != nil {
				return err
			}
			result := documentOutput{Pattern: pattern, Model: svc.ModelID(), Document: doc}
			mismatches, err := assist.CheckExamples(pattern, matchFlags(cmd), doc)
			if err != nil {
				log.Warn("examples not checked", "error", err)
			}
			result.Mismatches = mismatchStrings(mismatches)
			return printDocument(out, result, asJSON)
		}

		text, err := svc.Explain(ctx, pattern, prompt)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, struct {
				Pattern     string `json:"pattern"`
				Model       string `json:"model"`
				Explanation string `json:"explanation"`
			}{pattern, svc.ModelID(), text})
		}
		fmt.Fprintln(out, text)
		return nil
	})
}
