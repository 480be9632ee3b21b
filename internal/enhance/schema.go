package enhance

import "github.com/abhisek/agentbrief/internal/llm"

// SectionsSchema is the structured output for one enhancement call. Every
// field is required so strict-mode providers accept it; an empty string
// means "keep the deterministic section".
var SectionsSchema = &llm.Schema{
	Name:        "config-sections",
	Description: "Rewritten prose sections of an AI coding assistant config file",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"role": map[string]any{
				"type":        "string",
				"description": "The role paragraph, starting with 'You are'. Empty to keep the original.",
			},
			"context": map[string]any{
				"type":        "string",
				"description": "Project context in markdown. Empty to keep the original.",
			},
			"directives": map[string]any{
				"type":        "string",
				"description": "Behavioral directives as a markdown bullet list. Empty to keep the original.",
			},
			"buildSeq": map[string]any{
				"type":        "string",
				"description": "Build sequence as a numbered markdown list. Empty to keep the original.",
			},
		},
		"required":             []any{"role", "context", "directives", "buildSeq"},
		"additionalProperties": false,
	},
}
