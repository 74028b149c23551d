package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"charm.land/log/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/regexlab/internal/llm"
	"github.com/abhisek/regexlab/internal/logging"
	"github.com/abhisek/regexlab/internal/store"
)

// logCloser releases the log output opened by setup.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "regexlab",
	Short: "Understand and test regular expressions",
	Long: `regexlab explains regular expressions in plain language and tests them
against sample lines. With an API key it can also ask a language model to
explain a pattern or write one from a description.

Run without a subcommand to open the interactive workbench.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides REGEXLAB_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error (default warn)")
	pf.String("provider", "", "LLM provider: albert, openai, anthropic, gemini or mock")
	pf.String("model", "", "Model for the selected provider")
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/regexlab/config.yaml)")

	for _, name := range []string{"db", "log-level", "provider", "model"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
	viper.BindEnv("db", "REGEXLAB_DB")
	viper.BindEnv("log-level", "REGEXLAB_LOG_LEVEL")
	viper.BindEnv("provider", "REGEXLAB_LLM_PROVIDER")
	viper.BindEnv("model", "REGEXLAB_MODEL")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the config file, configures logging and tags the
// command context with a fresh session id.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if err := readConfig(configFile); err != nil {
		return err
	}

	_, closer, err := logging.Setup(logging.Options{
		Level:  viper.GetString("log-level"),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logCloser = closer

	session := uuid.NewString()
	cmd.SetContext(llm.WithSession(cmd.Context(), session))
	log.Debug("session started", "session", session, "command", cmd.CommandPath())
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// readConfig loads file, or the default config file when file is empty.
// A missing default file is not an error.
func readConfig(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(dir, "regexlab"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	log.Debug("loaded config", "file", viper.ConfigFileUsed())
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then REGEXLAB_DB env var or the config file, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
