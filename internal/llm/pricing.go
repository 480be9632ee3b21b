package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds USD prices per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

var datedSuffix = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

// LookupCost returns the pricing for a model, or nil if unknown. It accepts
// the friendly names the config understands, OpenRouter "vendor/model" ids
// and the dated ids OpenAI reports back (gpt-4o-mini-2024-07-18).
func LookupCost(model string) *ModelCost {
	candidates := []string{model}
	if _, name, ok := strings.Cut(model, "/"); ok {
		candidates = append(candidates, name)
	}
	for _, c := range candidates {
		for _, table := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
			if id, ok := table[c]; ok {
				c = id
			}
		}
		if cost, ok := modelCosts[c]; ok {
			return &cost
		}
		if cost, ok := modelCosts[datedSuffix.ReplaceAllString(c, "")]; ok {
			return &cost
		}
	}
	return nil
}

// Prices for the models agentbrief selects by default or by friendly name,
// from models.dev (2026-02).
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-haiku-4-5":          {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},

	"gemini-2.0-flash":     {0.1, 0.4},
	"gemini-2.0-flash-exp": {0, 0},
	"gemini-2.5-pro":       {1.25, 10},
}
