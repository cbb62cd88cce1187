package question

import (
	"fmt"
	"math"
	"strings"
)

// StructuralValidator checks that the prompt is present and that there are
// exactly four options. Option uniqueness is not enforced.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if len(q.Options) != OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)),
		}
	}
	if !q.Category.Valid() {
		return &ValidationError{Validator: v.Name(), Message: "category is not set"}
	}
	return nil
}

// AnswerValidator checks that the answer is one of the options by exact
// string equality.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *Question) *ValidationError {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return nil
		}
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("answer %q is not one of the options", q.Answer),
	}
}

// ChartValidator checks optional chart data. A chart without points is
// dropped rather than rejected; a chart with points must have a known kind
// and finite values. A missing value field defaults to "value".
type ChartValidator struct{}

func (v *ChartValidator) Name() string { return "chart" }

func (v *ChartValidator) Validate(q *Question) *ValidationError {
	if q.Chart == nil {
		return nil
	}
	if len(q.Chart.Points) == 0 {
		q.Chart = nil
		return nil
	}

	switch q.Chart.Kind {
	case ChartBar, ChartPie, ChartLine:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unsupported chart type %q", q.Chart.Kind),
		}
	}
	for i, p := range q.Chart.Points {
		if strings.TrimSpace(p.Label) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("chart point %d has no label", i),
			}
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("chart point %q has a non-finite value", p.Label),
			}
		}
	}
	if q.Chart.ValueField == "" {
		q.Chart.ValueField = DefaultValueField
	}
	return nil
}
