package cmd

import (
	"errors"
	"fmt"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [pattern]",
	Short: "Generate Go code for a pattern",
	Long: `Generate a Go file holding the compiled pattern and a validator
function. When the explanation has examples a table test is generated too.
Without --out the source is printed.`,
	Example: `  regexlab export --name postcode '^\d{5}$'
  regexlab export --library "French phone number" --out ./patterns`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("name", "", "Identifier stem, e.g. \"postcode\" gives PostcodeRegexp")
	exportCmd.Flags().String("package", export.DefaultPackage, "Go package name")
	exportCmd.Flags().StringP("out", "o", "", "Directory to write the files to")
	exportCmd.Flags().String("library", "", "Export a library entry, with its examples")
	addMatchFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	pkg, _ := cmd.Flags().GetString("package")
	dir, _ := cmd.Flags().GetString("out")
	entryName, _ := cmd.Flags().GetString("library")
	out := cmd.OutOrStdout()

	opts := export.Options{Package: pkg, Name: name, Flags: matchFlags(cmd)}
	switch {
	case entryName != "":
		e, ok := explain.FindLibraryEntry(entryName)
		if !ok {
			return fmt.Errorf("no library entry named %q (have: %s)", entryName, libraryNames())
		}
		opts.Pattern = e.Pattern
		opts.Doc = explain.Document{
			Sentences:       []string{e.Description},
			ValidExamples:   e.ValidExamples,
			InvalidExamples: e.InvalidExamples,
		}
		if opts.Name == "" {
			opts.Name = e.Name
		}
	case len(args) == 1:
		opts.Pattern = args[0]
	default:
		return errors.New("pass a pattern or --library")
	}
	if opts.Name == "" {
		opts.Name = "pattern"
	}

	files, err := export.Generate(opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, m := range files.Skipped {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: left out of the test:", m)
	}

	if dir == "" {
		_, err := out.Write(files.Source)
		return err
	}

	written, err := export.Write(appFs, dir, files)
	if err != nil {
		return err
	}
	for _, p := range written {
		log.Debug("wrote file", "path", p)
		fmt.Fprintln(out, p)
	}
	return nil
}
