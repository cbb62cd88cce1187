package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/config"
	"github.com/abhisek/aptiz/internal/question"
	"github.com/abhisek/aptiz/internal/quiz"
)

func newFlagCmd(t *testing.T, db string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	if db != "" {
		if err := c.Flags().Set("db", db); err != nil {
			t.Fatalf("set flag: %v", err)
		}
	}
	return c
}

func TestResolveDBPath_Priority(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APTIZ_DB", filepath.Join(dir, "env.db"))

	var cfg config.Config
	cfg.Store.Path = filepath.Join(dir, "file", "cfg.db")

	flagPath := filepath.Join(dir, "flag", "flag.db")
	got, err := resolveDBPath(newFlagCmd(t, flagPath), cfg)
	if err != nil || got != flagPath {
		t.Fatalf("flag: got %q, %v", got, err)
	}

	got, err = resolveDBPath(newFlagCmd(t, ""), cfg)
	if err != nil || got != cfg.Store.Path {
		t.Fatalf("config: got %q, %v", got, err)
	}

	got, err = resolveDBPath(newFlagCmd(t, ""), config.Config{})
	if err != nil || got != filepath.Join(dir, "env.db") {
		t.Fatalf("env: got %q, %v", got, err)
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0.00123, "$0.0012"},
		{1.5, "$1.50"},
		{0, "$0.0000"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "preview": false, "llm": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGrade(t *testing.T) {
	q := &question.Question{
		Category:    question.Numerical,
		Prompt:      "Which region sold most?",
		Options:     []string{"North", "South", "East", "south"},
		Answer:      "South",
		Explanation: "South leads every quarter.",
	}

	fb, ok := grade(q, 1)
	if !ok || !fb.Correct || fb.Headline != quiz.HeadlineCorrect || fb.CorrectAnswer != "" {
		t.Fatalf("expected correct feedback, got %+v ok=%v", fb, ok)
	}

	fb, ok = grade(q, 3)
	if !ok || fb.Correct || fb.Headline != quiz.HeadlineIncorrect {
		t.Fatalf("case must matter, got %+v", fb)
	}
	if fb.CorrectAnswer != "South" || fb.Explanation != q.Explanation {
		t.Fatalf("unexpected reveal: %+v", fb)
	}

	if _, ok := grade(q, 4); ok {
		t.Fatal("out-of-range choice must not be graded")
	}
}
