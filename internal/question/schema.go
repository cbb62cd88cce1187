package question

import "github.com/abhisek/aptiz/internal/llm"

// QuestionSchema defines the JSON schema for model responses.
var QuestionSchema = &llm.Schema{
	Name:        "aptitude-question",
	Description: "A single multiple-choice aptitude question with answer, explanation and optional chart data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The main text of the question.",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "An array of exactly 4 multiple-choice options.",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct option, copied exactly from the options array.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A detailed step-by-step explanation of how to arrive at the correct answer.",
			},
			"questionType": map[string]any{
				"type":        "string",
				"description": "The category of the question.",
			},
			"chartData": map[string]any{
				"type":        []any{"object", "null"},
				"description": "Data for rendering a chart, if applicable (especially for numerical reasoning).",
				"properties": map[string]any{
					"type": map[string]any{
						"type":        "string",
						"enum":        []any{"bar", "pie", "line"},
						"description": "Type of chart.",
					},
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
					"dataKey": map[string]any{
						"type":        "string",
						"description": "The key in the data objects that holds the numerical value (e.g. 'value').",
					},
				},
			},
		},
		"required": []any{"question", "options", "answer", "explanation", "questionType"},
	},
}
