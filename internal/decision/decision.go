// Package decision runs the derivation engine end to end: guardrails, role,
// skills, filename and stack, combined into one Result.
package decision

import (
	"strings"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/guardrail"
	"github.com/abhisek/agentbrief/internal/role"
	"github.com/abhisek/agentbrief/internal/skills"
	"github.com/abhisek/agentbrief/internal/stack"
)

// Summary holds the counts shown on the review screen.
type Summary struct {
	Skills       int `json:"skills"`
	Instructions int `json:"instructions"`
	Stack        int `json:"stack"`
	Tier         int `json:"tier"`
}

// Result is everything downstream consumers need. It is a snapshot: nothing
// in it aliases the catalog tables or the input answers.
type Result struct {
	ProjectType catalog.ProjectType `json:"projectType"`
	Role        role.Result         `json:"role"`

	Skills        []string                   `json:"skills"`
	SkillsByGroup map[catalog.Group][]string `json:"skillsByGroup"`

	Guardrail  guardrail.Result `json:"guardrail"`
	Directives []string         `json:"directives"`
	Filename   string           `json:"filename"`

	Stack       []catalog.Tech `json:"stack"`
	Recommended bool           `json:"recommended"`

	Summary Summary `json:"summary"`
}

// Tier is shorthand for r.Guardrail.Tier.
func (r Result) Tier() guardrail.Tier { return r.Guardrail.Tier }

// Resolved returns the stack in the form the other components take.
func (r Result) Resolved() stack.Resolved {
	techs := make([]catalog.Tech, len(r.Stack))
	copy(techs, r.Stack)
	return stack.Resolved{Techs: techs, Recommended: r.Recommended}
}

// Derive computes the full result. Missing security flags are read as "no";
// the caller's set is never modified.
func Derive(a answers.Set) Result {
	a = a.WithSecurityDefaults()

	gr := guardrail.Evaluate(a)
	st := stack.Resolve(a)
	rl := role.Build(a, st)
	sel := skills.Select(a, st, gr.Tier)

	return Result{
		ProjectType:   catalog.ParseProjectType(a.String(answers.ProjectType)),
		Role:          rl,
		Skills:        sel.IDs,
		SkillsByGroup: sel.Grouped,
		Guardrail:     gr,
		Directives:    catalog.Directives(),
		Filename:      catalog.OutputFilename(a.String(answers.LLMTarget)),
		Stack:         st.Techs,
		Recommended:   st.Recommended,
		Summary: Summary{
			Skills:       len(sel.IDs),
			Instructions: len(gr.Instructions),
			Stack:        len(st.Techs),
			Tier:         int(gr.Tier),
		},
	}
}

// DerivePartial is the live-preview variant. It returns nil until a project
// type has been answered; everything else may be missing.
func DerivePartial(a answers.Set) *Result {
	if strings.TrimSpace(a.String(answers.ProjectType)) == "" {
		return nil
	}
	r := Derive(a)
	return &r
}
