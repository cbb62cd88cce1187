package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "aptitude-question",
		Description: "A multiple choice question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{"type": "string", "enum": []any{"Logical", "Numerical", "Verbal", "CaseStudy"}},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correctAnswer": map[string]any{"type": "string"},
				"chartData": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{"type": "string"},
						"data": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name":  map[string]any{"type": "string"},
									"value": map[string]any{"type": "number"},
								},
								"required": []any{"name", "value"},
							},
						},
					},
					"required": []any{"type", "data"},
				},
			},
			"required": []any{"category", "question", "options", "correctAnswer"},
		},
	}
}

func TestValidateResponse_Accepts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"without chart", `{"category":"Logical","question":"Q?","options":["a","b","c","d"],"correctAnswer":"a"}`},
		{"with chart", `{"category":"Numerical","question":"Q?","options":["1","2","3","4"],"correctAnswer":"2",
			"chartData":{"type":"bar","data":[{"name":"Q1","value":12.5},{"name":"Q2","value":8}]}}`},
		{"extra fields", `{"category":"Verbal","question":"Q?","options":["a","b","c","d"],"correctAnswer":"d","explanation":"because"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateResponse(questionSchema(), json.RawMessage(tt.raw)); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing answer", `{"category":"Logical","question":"Q?","options":["a","b","c","d"]}`},
		{"three options", `{"category":"Logical","question":"Q?","options":["a","b","c"],"correctAnswer":"a"}`},
		{"unknown category", `{"category":"Spatial","question":"Q?","options":["a","b","c","d"],"correctAnswer":"a"}`},
		{"non-numeric point", `{"category":"Numerical","question":"Q?","options":["1","2","3","4"],"correctAnswer":"2",
			"chartData":{"type":"bar","data":[{"name":"Q1","value":"lots"}]}}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
