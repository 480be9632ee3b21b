// Package stack resolves the effective technology list from the answers.
package stack

import (
	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
)

// ApproachRecommend replaces the user's selection with the curated stack.
const ApproachRecommend = "recommend"

// Resolved is the effective stack: unique ids in selection or curated order.
type Resolved struct {
	Techs       []catalog.Tech
	Recommended bool
}

// Resolve computes the effective stack. It never fails; anything
// unrecognized degrades to an empty or default list.
func Resolve(a answers.Set) Resolved {
	if a.String(answers.StackApproach) == ApproachRecommend {
		pt := catalog.ParseProjectType(a.String(answers.ProjectType))
		return Resolved{Techs: catalog.RecommendedStack(pt), Recommended: true}
	}

	chosen := a.List(answers.StackTech)
	out := make([]catalog.Tech, 0, len(chosen))
	seen := make(map[catalog.Tech]bool, len(chosen))
	for _, id := range chosen {
		t := catalog.Tech(id)
		if id == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return Resolved{Techs: out}
}

// Contains reports whether t is in the stack.
func (r Resolved) Contains(t catalog.Tech) bool {
	for _, x := range r.Techs {
		if x == t {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of ts is in the stack.
func (r Resolved) ContainsAny(ts ...catalog.Tech) bool {
	for _, t := range ts {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// FirstOfKind returns the first stack entry of the given kind.
func (r Resolved) FirstOfKind(k catalog.TechKind) (catalog.Tech, bool) {
	for _, t := range r.Techs {
		if catalog.TechKindOf(t) == k {
			return t, true
		}
	}
	return "", false
}

// IDs returns the stack as plain strings.
func (r Resolved) IDs() []string {
	out := make([]string, len(r.Techs))
	for i, t := range r.Techs {
		out[i] = string(t)
	}
	return out
}
