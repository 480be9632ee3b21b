package catalog

import (
	"fmt"
	"strings"
)

// Validate performs structural checks on the static tables and returns a
// combined error describing every problem found, or nil.
func Validate() error {
	var errs []string

	seen := make(map[string]bool, len(skillTable))
	for _, s := range skillTable {
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		seen[s.ID] = true
		if s.Description == "" {
			errs = append(errs, fmt.Sprintf("skill %q has no description", s.ID))
		}
	}

	for _, id := range []string{
		SkillValidatingInput, SkillImplementingAuth, SkillConfiguringCORS,
		SkillManagingSecrets, SkillPaymentSecurity, SkillEncryptionPattern,
	} {
		if SkillGroup(id) != GroupGuardrail {
			errs = append(errs, fmt.Sprintf("guardrail skill %q is not in the guardrail group", id))
		}
	}

	for _, p := range AllProjectTypes() {
		if _, ok := curatedStacks[p]; !ok {
			errs = append(errs, fmt.Sprintf("project type %q has no curated stack", p))
		}
		if len(projectSkills[p]) == 0 {
			errs = append(errs, fmt.Sprintf("project type %q has no core skills", p))
		}
		errs = append(errs, duplicates(fmt.Sprintf("project type %q skills", p), projectSkills[p])...)
	}

	for p, stack := range curatedStacks {
		for _, t := range stack {
			if _, ok := techs[t]; !ok {
				errs = append(errs, fmt.Sprintf("curated stack for %q references unknown tech %q", p, t))
			}
		}
	}

	for t, info := range techs {
		errs = append(errs, duplicates(fmt.Sprintf("tech %q skills", t), info.skills)...)
	}

	for i, r := range keywordRules {
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("keyword rule %d (%s) has no keywords", i, r.SkillID))
		}
		for _, kw := range r.Keywords {
			if kw != strings.ToLower(kw) {
				errs = append(errs, fmt.Sprintf("keyword %q in rule %d must be lowercase", kw, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func duplicates(what string, ids []string) []string {
	var errs []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			errs = append(errs, fmt.Sprintf("%s: duplicate %q", what, id))
		}
		seen[id] = true
	}
	return errs
}
