package catalog

var directives = []string{
	"Read the existing code before changing it and follow its conventions.",
	"Make the smallest change that solves the problem; do not refactor unrelated code.",
	"Explain your plan before large or risky edits and wait for confirmation.",
	"Write or update tests alongside every behavior change.",
	"Never invent APIs, flags, or file paths; check that they exist first.",
	"When requirements are ambiguous, ask one focused question instead of guessing.",
	"Keep secrets, tokens, and personal data out of code, logs, and commit messages.",
}

// Directives returns the universal behavioral directives. They do not depend
// on any answer.
func Directives() []string {
	out := make([]string, len(directives))
	copy(out, directives)
	return out
}
