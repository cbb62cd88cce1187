package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/config"
	"github.com/abhisek/aptiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aptiz",
	Short: "Aptitude test trainer",
	Long:  "Aptiz: practise consulting-style aptitude questions (logical, numerical, verbal, case study) generated on demand.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite usage log (overrides APTIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides APTIZ_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("no-usage-log", false, "Do not record LLM requests in the usage log")
	rootCmd.Flags().String("log-file", "", "Write debug logs to this file (overrides APTIZ_LOG_FILE env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the YAML config named by --config or APTIZ_CONFIG.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from the config file, then APTIZ_DB, then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
