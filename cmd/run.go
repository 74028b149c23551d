package cmd

import (
	"fmt"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/regexlab/internal/app"
	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/logging"
	"github.com/abhisek/regexlab/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// Log lines would corrupt the alt screen, so the TUI logs to a file.
	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	_, closer, err := logging.Setup(logging.Options{
		Level: viper.GetString("log-level"),
		Dir:   dataDir,
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	if logCloser != nil {
		logCloser.Close()
	}
	logCloser = closer

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		Context:    cmd.Context(),
		SkipSplash: skipSplash,
	}

	st := openEventStore()
	if st != nil {
		defer st.Close()
		opts.Events = st.EventRepo()
	}

	provider, err := buildProvider(cmd, st)
	if err != nil {
		log.Info("starting offline", "reason", err)
		opts.Unavailable = err.Error()
	} else {
		opts.Assistant = assist.New(provider)
	}

	return app.Run(opts)
}

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Open the workbench without the welcome screen")
}
