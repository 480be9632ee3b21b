package assemble

import "strings"

// Overrides replaces individual section bodies with AI-enhanced text. A blank
// field counts as absent; the deterministic section is used instead.
type Overrides struct {
	Role       string `json:"role,omitempty"`
	Context    string `json:"context,omitempty"`
	Directives string `json:"directives,omitempty"`
	BuildSeq   string `json:"buildSeq,omitempty"`
}

// Any reports whether at least one override is usable.
func (o *Overrides) Any() bool {
	if o == nil {
		return false
	}
	for _, s := range []string{o.Role, o.Context, o.Directives, o.BuildSeq} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// pick returns override verbatim unless it is blank.
func pick(override, fallback string) (string, bool) {
	if strings.TrimSpace(override) != "" {
		return override, true
	}
	return fallback, false
}
