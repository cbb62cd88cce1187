package question

import (
	"fmt"
	"strings"
)

// Category is one of the fixed quiz topics. The zero value is not a
// category and stands for "none".
type Category int

const (
	Logical Category = iota + 1
	Numerical
	Verbal
	CaseStudy
)

// Categories lists every category in display order.
var Categories = []Category{Logical, Numerical, Verbal, CaseStudy}

var categoryInfo = map[Category]struct {
	slug, title, description string
}{
	Logical: {
		"logical", "Logical Reasoning",
		"Assess patterns, sequences, and relationships to test your problem-solving abilities.",
	},
	Numerical: {
		"numerical", "Numerical Reasoning",
		"Interpret data from charts and tables to solve quantitative business problems.",
	},
	Verbal: {
		"verbal", "Verbal Reasoning",
		"Analyze written passages and arguments to evaluate your comprehension skills.",
	},
	CaseStudy: {
		"case-study", "Case Study",
		"Tackle mini business scenarios to test your analytical and strategic thinking.",
	},
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Slug is the stable machine name, e.g. "case-study".
func (c Category) Slug() string {
	if info, ok := categoryInfo[c]; ok {
		return info.slug
	}
	return ""
}

// Title is the human-readable name, e.g. "Numerical Reasoning".
func (c Category) Title() string {
	if info, ok := categoryInfo[c]; ok {
		return info.title
	}
	return ""
}

// Description is a one-sentence summary shown on the dashboard.
func (c Category) Description() string {
	return categoryInfo[c].description
}

// Timed reports whether questions in this category run a countdown.
func (c Category) Timed() bool {
	return c == Numerical
}

func (c Category) String() string {
	if s := c.Slug(); s != "" {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory accepts a slug or a title, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c.Slug()) || strings.EqualFold(s, c.Title()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText encodes the category as its slug.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return []byte{}, nil
	}
	return []byte(c.Slug()), nil
}

// UnmarshalText decodes a slug or title. An empty value yields no category.
func (c *Category) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = 0
		return nil
	}
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is a validated multiple-choice question. It is immutable once
// returned by a Provider.
type Question struct {
	// Prompt is the question text, possibly including a short passage
	// or scenario.
	Prompt string `json:"prompt"`

	// Options holds exactly four choices in display order. Duplicates are
	// possible and tolerated.
	Options []string `json:"options"`

	// Answer equals one of Options exactly.
	Answer string `json:"answer"`

	// Explanation is shown verbatim after the question is answered.
	Explanation string `json:"explanation"`

	// Category is the category the question was requested for.
	Category Category `json:"category"`

	// Chart is optional supporting data, mostly for numerical questions.
	Chart *ChartDescriptor `json:"chart,omitempty"`
}

// ChartKind names how chart data should be drawn.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// DefaultValueField is used when the generator omits the value field name.
const DefaultValueField = "value"

// ChartDescriptor is structured chart data consumed by a renderer.
type ChartDescriptor struct {
	Kind       ChartKind `json:"kind"`
	Points     []Point   `json:"points"`
	ValueField string    `json:"valueField"`
}

// Point is a single labelled value in a chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Total sums the values of all points.
func (c *ChartDescriptor) Total() float64 {
	var sum float64
	for _, p := range c.Points {
		sum += p.Value
	}
	return sum
}

// Max returns the largest point value, or 0 for an empty chart.
func (c *ChartDescriptor) Max() float64 {
	var m float64
	for i, p := range c.Points {
		if i == 0 || p.Value > m {
			m = p.Value
		}
	}
	return m
}
