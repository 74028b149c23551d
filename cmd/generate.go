package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/matcher"
)

var generateCmd = &cobra.Command{
	Use:     "generate <description>",
	Short:   "Ask the language model to write a regular expression",
	Example: `  regexlab generate a French postcode`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGenerate,
}

func init() {
	generateCmd.Flags().Bool("raw", false, "Print the model output as is instead of the extracted pattern")
	generateCmd.Flags().Bool("json", false, "Print JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	raw, _ := cmd.Flags().GetBool("raw")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	return withAssistant(cmd, func(svc *assist.Service) error {
		gen, err := svc.Generate(cmd.Context(), description)
		if err != nil {
			return err
		}
		log.Debug("model output", "raw", gen.Raw)

		if asJSON {
			return writeJSON(out, struct {
				Description string `json:"description"`
				Model       string `json:"model"`
				Pattern     string `json:"pattern"`
				Raw         string `json:"raw"`
			}{description, svc.ModelID(), gen.Pattern, gen.Raw})
		}
		if raw {
			fmt.Fprintln(out, gen.Raw)
			return nil
		}
		if gen.Pattern == "" {
			return errors.New("the model answer contained no pattern; rerun with --raw to see it")
		}
		if _, err := matcher.Compile(gen.Pattern, matcher.Flags{}); err != nil {
			log.Warn("generated pattern does not compile", "pattern", gen.Pattern, "error", err)
		}
		fmt.Fprintln(out, gen.Pattern)
		return nil
	})
}
