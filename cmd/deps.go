package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/config"
	"github.com/abhisek/aptiz/internal/llm"
	"github.com/abhisek/aptiz/internal/question"
	"github.com/abhisek/aptiz/internal/store"
)

// openUsageLog opens the usage log unless --no-usage-log is set. A nil
// store means requests are not recorded.
func openUsageLog(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	if off, _ := cmd.Flags().GetBool("no-usage-log"); off {
		return nil, nil
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// buildProvider wires the configured model provider into a question
// provider. st may be nil.
func buildProvider(ctx context.Context, cfg config.Config, st *store.Store) (question.Provider, error) {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}

	var repo store.EventRepo
	if st != nil {
		repo = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	log.Printf("aptiz: using %s (%s)", llmCfg.Provider, provider.ModelID())

	return question.NewLLMProvider(provider, question.DefaultConfig()), nil
}
