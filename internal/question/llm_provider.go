package question

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/aptiz/internal/llm"
)

// LLMProvider implements Provider on top of a language model.
type LLMProvider struct {
	provider llm.Provider
	config   Config

	mu    sync.Mutex
	prior map[Category][]string
}

// NewLLMProvider creates an LLMProvider with the given model provider and config.
func NewLLMProvider(provider llm.Provider, cfg Config) *LLMProvider {
	return &LLMProvider{
		provider: provider,
		config:   cfg,
		prior:    make(map[Category][]string),
	}
}

// questionOutput is the raw model response before validation.
type questionOutput struct {
	Question     string       `json:"question"`
	Options      []string     `json:"options"`
	Answer       string       `json:"answer"`
	Explanation  string       `json:"explanation"`
	QuestionType string       `json:"questionType"`
	ChartData    *chartOutput `json:"chartData"`
}

type chartOutput struct {
	Type string `json:"type"`
	Data []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"data"`
	DataKey string `json:"dataKey"`
}

// Fetch generates, decodes and validates one question for category.
func (p *LLMProvider) Fetch(ctx context.Context, category Category) (*Question, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("fetch question: unknown category %d", int(category))
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(category, p.recent(category), p.config.MaxPriorQuestions)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	// The requested category wins over the model's questionType.
	q := &Question{
		Prompt:      raw.Question,
		Options:     raw.Options,
		Answer:      raw.Answer,
		Explanation: raw.Explanation,
		Category:    category,
	}
	if raw.ChartData != nil {
		chart := &ChartDescriptor{
			Kind:       ChartKind(raw.ChartData.Type),
			ValueField: raw.ChartData.DataKey,
		}
		for _, d := range raw.ChartData.Data {
			chart.Points = append(chart.Points, Point{Label: d.Name, Value: d.Value})
		}
		q.Chart = chart
	}

	if err := Validate(q, p.config.Validators...); err != nil {
		return nil, err
	}

	p.remember(category, q.Prompt)
	return q, nil
}

func (p *LLMProvider) recent(category Category) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prior[category]...)
}

// remember keeps at most MaxPriorQuestions prompts per category.
func (p *LLMProvider) remember(category Category, prompt string) {
	max := p.config.MaxPriorQuestions
	if max <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	list := append(p.prior[category], prompt)
	if len(list) > max {
		list = list[len(list)-max:]
	}
	p.prior[category] = list
}
