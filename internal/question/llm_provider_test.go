package question

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/aptiz/internal/llm"
)

func numericalJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "Which region grew revenue the most?",
		"options": ["North", "South", "East", "West"],
		"answer": "East",
		"explanation": "East rose from 10 to 25.",
		"questionType": "Numerical Reasoning",
		"chartData": {
			"type": "bar",
			"data": [{"name": "North", "value": 12}, {"name": "East", "value": 25}]
		}
	}`)
}

func TestFetch_Numerical(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: numericalJSON()})
	p := NewLLMProvider(mock, DefaultConfig())

	q, err := p.Fetch(context.Background(), Numerical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Prompt != "Which region grew revenue the most?" {
		t.Errorf("unexpected prompt %q", q.Prompt)
	}
	if q.Answer != "East" || len(q.Options) != 4 {
		t.Errorf("unexpected options/answer: %v / %q", q.Options, q.Answer)
	}
	if q.Category != Numerical {
		t.Errorf("expected Numerical, got %v", q.Category)
	}
	if q.Chart == nil || q.Chart.Kind != ChartBar || len(q.Chart.Points) != 2 {
		t.Fatalf("unexpected chart: %+v", q.Chart)
	}
	if q.Chart.ValueField != "value" {
		t.Errorf("expected default value field, got %q", q.Chart.ValueField)
	}

	req, _ := mock.LastCall()
	if req.Schema != QuestionSchema {
		t.Error("expected the question schema on the request")
	}
	if req.Temperature != 1.0 {
		t.Errorf("expected temperature 1.0, got %v", req.Temperature)
	}
}

func TestFetch_RequestedCategoryWins(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"question": "All bloops are razzies. Some razzies are lazzies. Which must be true?",
		"options": ["A", "B", "C", "D"],
		"answer": "C",
		"explanation": "",
		"questionType": "Verbal Reasoning",
		"chartData": null
	}`)})
	p := NewLLMProvider(mock, DefaultConfig())

	q, err := p.Fetch(context.Background(), Logical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Category != Logical {
		t.Fatalf("expected Logical, got %v", q.Category)
	}
	if q.Chart != nil {
		t.Fatal("expected no chart")
	}
}

func TestFetch_ThreeOptionsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"question": "Pick one",
		"options": ["A", "B", "C"],
		"answer": "A",
		"explanation": "x",
		"questionType": "Logical Reasoning"
	}`)})
	p := NewLLMProvider(mock, DefaultConfig())

	_, err := p.Fetch(context.Background(), Logical)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "structural" {
		t.Fatalf("expected structural failure, got %q", verr.Validator)
	}
}

func TestFetch_AnswerNotInOptionsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"question": "Pick one",
		"options": ["A", "B", "C", "D"],
		"answer": "E",
		"explanation": "x",
		"questionType": "Logical Reasoning"
	}`)})
	p := NewLLMProvider(mock, DefaultConfig())

	_, err := p.Fetch(context.Background(), Logical)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "answer" {
		t.Fatalf("expected answer ValidationError, got %v", err)
	}
}

func TestFetch_SchemaViolationIsFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"question": "no options"}`)})
	p := NewLLMProvider(mock, DefaultConfig())

	_, err := p.Fetch(context.Background(), Verbal)
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFetch_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	p := NewLLMProvider(mock, DefaultConfig())

	_, err := p.Fetch(context.Background(), CaseStudy)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetch_UnknownCategory(t *testing.T) {
	mock := llm.NewMockProvider()
	p := NewLLMProvider(mock, DefaultConfig())

	if _, err := p.Fetch(context.Background(), Category(42)); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 0 {
		t.Fatal("model must not be called for an unknown category")
	}
}

func TestFetch_RemembersPriorPrompts(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: numericalJSON()},
		llm.MockResponse{Content: numericalJSON()},
	)
	p := NewLLMProvider(mock, DefaultConfig())

	if _, err := p.Fetch(context.Background(), Numerical); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Fetch(context.Background(), Numerical); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, _ := mock.LastCall()
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "1. Which region grew revenue the most?") {
		t.Fatalf("expected prior prompt in request, got %q", msg)
	}
}

func TestStubProvider_ValidatesAndStampsCategory(t *testing.T) {
	stub := NewStubProvider()
	stub.Push(Question{Prompt: "P", Options: []string{"A", "B", "C", "D"}, Answer: "B", Explanation: "E"})
	stub.Push(Question{Prompt: "P", Options: []string{"A", "B", "C"}, Answer: "B"})

	q, err := stub.Fetch(context.Background(), Numerical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Category != Numerical {
		t.Fatalf("expected Numerical, got %v", q.Category)
	}

	if _, err := stub.Fetch(context.Background(), Numerical); err == nil {
		t.Fatal("expected validation failure for three options")
	}
	if _, err := stub.Fetch(context.Background(), Numerical); !errors.Is(err, ErrStubExhausted) {
		t.Fatalf("expected ErrStubExhausted, got %v", err)
	}
	if got := len(stub.Calls()); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}
