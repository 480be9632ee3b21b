package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
	}{
		{"claude-haiku", ModelCost{1, 5}},
		{"claude-sonnet-4-20250514", ModelCost{3, 15}},
		{"gpt-4o-mini-2024-07-18", ModelCost{0.15, 0.6}},
		{"openai/gpt-4o", ModelCost{2.5, 10}},
		{"gemini-flash", ModelCost{0.1, 0.4}},
		{"google/gemini-2.0-flash-exp", ModelCost{0, 0}},
		{"gemini-pro", ModelCost{1.25, 10}},
	}
	for _, tt := range tests {
		got := LookupCost(tt.model)
		if got == nil {
			t.Errorf("LookupCost(%q) = nil", tt.model)
			continue
		}
		if *got != tt.want {
			t.Errorf("LookupCost(%q) = %+v, want %+v", tt.model, *got, tt.want)
		}
	}

	for _, unknown := range []string{"", "llama-3-8b", "meta-llama/llama-3-8b"} {
		if got := LookupCost(unknown); got != nil {
			t.Errorf("LookupCost(%q) = %+v, want nil", unknown, *got)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 3, OutputPerMTok: 15}
	if got := c.Cost(2000, 500); math.Abs(got-0.0135) > 1e-9 {
		t.Fatalf("cost = %f, want 0.0135", got)
	}
}
