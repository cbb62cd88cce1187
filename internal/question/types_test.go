package question

import (
	"encoding/json"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"logical", Logical, false},
		{"Numerical Reasoning", Numerical, false},
		{"VERBAL", Verbal, false},
		{"case-study", CaseStudy, false},
		{" Case Study ", CaseStudy, false},
		{"spatial", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryCatalogue(t *testing.T) {
	if len(Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(Categories))
	}
	for _, c := range Categories {
		if !c.Valid() || c.Title() == "" || c.Description() == "" {
			t.Errorf("category %v is missing catalogue data", c)
		}
	}
	if Category(0).Valid() {
		t.Error("zero category must not be valid")
	}
}

func TestOnlyNumericalIsTimed(t *testing.T) {
	for _, c := range Categories {
		if c.Timed() != (c == Numerical) {
			t.Errorf("%v.Timed() = %v", c, c.Timed())
		}
	}
}

func TestCategoryJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		C Category `json:"c"`
	}{CaseStudy})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"c":"case-study"}` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var v struct {
		C Category `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"c":"Verbal Reasoning"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.C != Verbal {
		t.Fatalf("expected Verbal, got %v", v.C)
	}
	if err := json.Unmarshal([]byte(`{"c":"nope"}`), &v); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestChartTotals(t *testing.T) {
	c := &ChartDescriptor{Points: []Point{{"A", 10}, {"B", 30}, {"C", 20}}}
	if c.Total() != 60 {
		t.Errorf("Total() = %v, want 60", c.Total())
	}
	if c.Max() != 30 {
		t.Errorf("Max() = %v, want 30", c.Max())
	}
	neg := &ChartDescriptor{Points: []Point{{"A", -5}, {"B", -2}}}
	if neg.Max() != -2 {
		t.Errorf("Max() = %v, want -2", neg.Max())
	}
}
