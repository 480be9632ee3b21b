package answers

import "maps"

// ID identifies a questionnaire question.
type ID string

// Question ids read by the derivation engine.
const (
	ProjectName      ID = "projectName"
	ProjectType      ID = "projectType"
	Description      ID = "description"
	Audience         ID = "audience"
	Stage            ID = "stage"
	StackApproach    ID = "stackApproach"
	StackTech        ID = "stackTech"
	HasAuth          ID = "hasAuth"
	StoresData       ID = "storesData"
	HasPayments      ID = "hasPayments"
	HasSensitiveData ID = "hasSensitiveData"
	Deployment       ID = "deployment"
	LLMTarget        ID = "llmTarget"
)

// SecurityFlags are the four yes/no questions that drive guardrail tiering,
// in declaration order.
var SecurityFlags = []ID{HasAuth, StoresData, HasPayments, HasSensitiveData}

const (
	Yes = "yes"
	No  = "no"
)

// Set maps question ids to answers. It is produced by the questionnaire and
// treated as read-only by everything downstream; accessors never mutate it.
type Set map[ID]Value

// Has reports whether the question has a non-empty answer.
func (s Set) Has(id ID) bool {
	return !s[id].IsZero()
}

// String returns the scalar answer, or "" when absent or a list.
func (s Set) String(id ID) string {
	return s[id].Text()
}

// List returns a copy of the list answer, or nil when absent or scalar.
func (s Set) List(id ID) []string {
	return s[id].Items()
}

// Flag reports whether a yes/no question was answered exactly "yes".
func (s Set) Flag(id ID) bool {
	return s.String(id) == Yes
}

// Clone returns a shallow copy; Values are immutable so this is sufficient.
func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	return maps.Clone(s)
}

// WithSecurityDefaults returns a copy in which every unanswered security
// flag is set to "no".
func (s Set) WithSecurityDefaults() Set {
	out := s.Clone()
	for _, id := range SecurityFlags {
		if !out.Has(id) {
			out[id] = Text(No)
		}
	}
	return out
}
