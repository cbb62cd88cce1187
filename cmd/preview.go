package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/question"
	"github.com/abhisek/aptiz/internal/quiz"
	"github.com/abhisek/aptiz/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a category (no timer, no usage log)",
	Long: `Generate and interactively answer questions for one category.

This is a stateless developer tool with no countdown and no usage log.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "", "Category: logical, numerical, verbal or case-study (required)")
	previewCmd.Flags().Int("count", 3, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("category")
}

func runPreview(cmd *cobra.Command, args []string) error {
	catVal, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")

	category, err := question.ParseCategory(catVal)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	provider, err := buildProvider(ctx, cfg, nil)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Category: %s\n", category.Title())
	fmt.Printf("Generating %d questions...\n\n", count)

	var correct, answered int
	for i := 1; i <= count; i++ {
		q, err := provider.Fetch(ctx, category)
		if err != nil {
			fmt.Printf("Question %d: generation failed: %v\n\n", i, err)
			continue
		}

		fmt.Printf("── Question %d/%d ──\n", i, count)
		if chart := components.RenderChart(q.Chart, 60); chart != "" {
			fmt.Println(chart)
			fmt.Println()
		}
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		fb, ok := grade(q, choice-1)
		if !ok {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}
		answered++
		if fb.Correct {
			correct++
			fmt.Printf("\033[32m✓ %s\033[0m\n", fb.Headline)
		} else {
			fmt.Printf("\033[31m✗ %s.\033[0m Answer: %s\n", fb.Headline, fb.CorrectAnswer)
		}

		if fb.Explanation != "" {
			fmt.Printf("Explanation: %s\n", fb.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, answered)
	return nil
}

// grade scores option i of q the same way a quiz does. Preview has no
// countdown, so the answer is never ticked.
func grade(q *question.Question, i int) (quiz.Feedback, bool) {
	a := quiz.NewAnswer(q, 0)
	if !a.Select(i) || !a.Submit() {
		return quiz.Feedback{}, false
	}
	return a.Feedback()
}
