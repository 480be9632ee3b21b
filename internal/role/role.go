// Package role assembles the role sentence that opens the generated config.
package role

import (
	"strings"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/stack"
)

// Result holds the role sentence and the parts it was built from.
type Result struct {
	BaseRole   string   `json:"baseRole"`
	StackSpecs []string `json:"stackSpecs"`
	SecSpecs   []string `json:"secSpecs"`
	Full       string   `json:"full"`
}

// securitySpecs lists the flag-driven specializations in declaration order.
// storesData alone does not make anyone a specialist.
var securitySpecs = []struct {
	flag   answers.ID
	phrase string
}{
	{answers.HasAuth, "authentication and session security"},
	{answers.HasPayments, "secure payment processing"},
	{answers.HasSensitiveData, "protecting sensitive user data"},
}

// Build composes the role for the given answers and resolved stack.
// Stack ids without a label are dropped.
func Build(a answers.Set, s stack.Resolved) Result {
	base := catalog.ParseProjectType(a.String(answers.ProjectType)).BaseRole()

	stackSpecs := []string{}
	for _, t := range s.Techs {
		if label, ok := catalog.TechLabel(t); ok {
			stackSpecs = append(stackSpecs, label)
		}
	}

	secSpecs := []string{}
	for _, sp := range securitySpecs {
		if a.Flag(sp.flag) {
			secSpecs = append(secSpecs, sp.phrase)
		}
	}

	var b strings.Builder
	b.WriteString("You are a ")
	b.WriteString(base)
	if len(stackSpecs) > 0 {
		b.WriteString(", specializing in ")
		b.WriteString(JoinList(stackSpecs))
	}
	if len(secSpecs) > 0 {
		b.WriteString(", with deep expertise in ")
		b.WriteString(JoinList(secSpecs))
	}
	b.WriteString(".")

	if desc := a.String(answers.Description); strings.TrimSpace(desc) != "" {
		b.WriteString("\n\n**Project:** ")
		b.WriteString(desc)
	}

	return Result{
		BaseRole:   base,
		StackSpecs: stackSpecs,
		SecSpecs:   secSpecs,
		Full:       b.String(),
	}
}

// JoinList joins items as English prose: "A", "A and B", "A, B, and C".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
