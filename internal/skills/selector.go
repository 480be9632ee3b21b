// Package skills selects the skill packs for a project. Five tracks feed one
// OrderedSet in a fixed order: project type, stack, guardrails, description
// keywords, deployment.
package skills

import (
	"strings"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/guardrail"
	"github.com/abhisek/agentbrief/internal/stack"
)

// Track names a selection strategy.
type Track string

const (
	TrackProject    Track = "project"
	TrackStack      Track = "stack"
	TrackGuardrail  Track = "guardrail"
	TrackKeyword    Track = "keyword"
	TrackDeployment Track = "deployment"
)

// Selection is the ordered, deduplicated skill list plus its display grouping.
type Selection struct {
	IDs     []string                   `json:"ids"`
	Grouped map[catalog.Group][]string `json:"grouped"`
}

// Select runs all five tracks in order against a single OrderedSet.
func Select(a answers.Set, s stack.Resolved, tier guardrail.Tier) Selection {
	set := NewOrderedSet()
	pt := catalog.ParseProjectType(a.String(answers.ProjectType))

	set.Add(catalog.ProjectSkills(pt)...)
	for _, t := range s.Techs {
		set.Add(catalog.TechSkills(t)...)
	}
	set.Add(GuardrailSkills(a, pt, tier)...)
	set.Add(InferFromDescription(a.String(answers.Description))...)
	set.Add(catalog.DeploymentSkills(catalog.ParseDeployment(a.String(answers.Deployment)))...)

	ids := set.Items()
	return Selection{IDs: ids, Grouped: Group(ids)}
}

// GuardrailSkills returns the guardrail track. A tier alone over-selects, so
// each tier's skills are also gated on the flag that caused the escalation.
func GuardrailSkills(a answers.Set, pt catalog.ProjectType, tier guardrail.Tier) []string {
	var out []string
	if tier >= guardrail.TierStandard {
		out = append(out, catalog.SkillValidatingInput)
	}
	if tier >= guardrail.TierElevated {
		if a.Flag(answers.HasAuth) {
			out = append(out, catalog.SkillImplementingAuth)
		}
		if pt.WebFacing() {
			out = append(out, catalog.SkillConfiguringCORS)
		}
	}
	if tier >= guardrail.TierCritical {
		out = append(out, catalog.SkillManagingSecrets)
		if a.Flag(answers.HasPayments) {
			out = append(out, catalog.SkillPaymentSecurity)
		}
		if a.Flag(answers.HasSensitiveData) {
			out = append(out, catalog.SkillEncryptionPattern)
		}
	}
	return out
}

// InferFromDescription scans the description case-insensitively against the
// keyword table; each rule fires at most once, in table order.
func InferFromDescription(desc string) []string {
	desc = strings.ToLower(desc)
	if strings.TrimSpace(desc) == "" {
		return nil
	}
	var out []string
	for _, rule := range catalog.KeywordRules() {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				out = append(out, rule.SkillID)
				break
			}
		}
	}
	return out
}

// Group partitions ids by their catalog group without reordering them.
// Every group key is present, possibly empty.
func Group(ids []string) map[catalog.Group][]string {
	out := make(map[catalog.Group][]string, len(catalog.AllGroups()))
	for _, g := range catalog.AllGroups() {
		out[g] = []string{}
	}
	for _, id := range ids {
		g := catalog.SkillGroup(id)
		out[g] = append(out[g], id)
	}
	return out
}
