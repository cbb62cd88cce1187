package question

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert aptitude test author writing screening questions for top-tier consulting firms.

Rules:
- Generate a single, challenging multiple-choice question for the requested category.
- The question must be representative of what a candidate would face in a real screening test.
- Provide exactly 4 distinct options. Exactly one option must be clearly correct.
- The "answer" field must be an exact copy of one of the options.
- Provide a detailed, step-by-step "explanation" for the correct answer.
- Only include "chartData" when the question depends on it.
- Do not repeat any question from the "already asked" list.`

// categoryInstructions holds the category-specific part of the request.
var categoryInstructions = map[Category]string{
	Numerical: "The question MUST involve interpreting data from a chart. Generate realistic business data " +
		"for a bar, pie, or line chart, for example revenue by region, market share, or production units, " +
		"and return it in chartData.",
	Logical: "The question should be a classic logical reasoning problem such as a number series, " +
		"a syllogism, or a deduction puzzle. Do not ask about visual patterns that require images.",
	Verbal: "The question should consist of a short passage (2-4 sentences) followed by a question that " +
		"requires critical reasoning, inference, or identifying the main idea based ONLY on the passage.",
	CaseStudy: "The question should be a mini case study. Present a brief business scenario, such as a company " +
		"facing declining profits, and ask for a likely cause, a sensible next step for analysis, or a simple " +
		"business metric like profit margin.",
}

// buildUserMessage constructs the request for one category.
func buildUserMessage(category Category, prior []string, max int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", category.Title())
	if instr, ok := categoryInstructions[category]; ok {
		b.WriteString(instr)
		b.WriteString("\n")
	}

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(prior, max))

	return b.String()
}

// buildDedup formats prior prompts, keeping only the most recent max.
// Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	if len(prior) == 0 || max <= 0 {
		return "None"
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
