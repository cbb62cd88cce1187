package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/app"
)

// runApp loads configuration, builds the question provider and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	logPath, _ := cmd.Flags().GetString("log-file")
	if logPath == "" {
		logPath = os.Getenv("APTIZ_LOG_FILE")
	}
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "aptiz")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		// The terminal belongs to the renderer.
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openUsageLog(cmd, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	provider, err := buildProvider(cmd.Context(), cfg, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set APTIZ_GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY).")
		return err
	}

	return app.Run(app.Options{Provider: provider})
}
