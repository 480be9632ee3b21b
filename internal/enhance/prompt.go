package enhance

import (
	"fmt"
	"strings"

	"github.com/abhisek/agentbrief/internal/assemble"
)

const systemPrompt = `You are a staff engineer who writes configuration files for AI coding assistants. You are given draft sections of such a file, generated from a project questionnaire. Make each section specific to this project.`

func buildUserMessage(doc assemble.Document) string {
	var b strings.Builder

	b.WriteString("Target file: ")
	b.WriteString(doc.Filename)
	b.WriteString("\n")

	if gr, ok := doc.Section(assemble.HeadingGuardrails); ok {
		fmt.Fprintf(&b, "Security posture: %s\n", gr.Title)
	}

	for _, heading := range []string{
		assemble.HeadingRole,
		assemble.HeadingContext,
		assemble.HeadingStack,
		assemble.HeadingDirectives,
		assemble.HeadingBuildSeq,
	} {
		s, ok := doc.Section(heading)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n<section name=%q>\n%s\n</section>\n", heading, s.Body)
	}

	b.WriteString(`
Instructions:
Rewrite the Role, Project Context, Behavioral Directives and Build Sequence sections. The Tech Stack section is context only.
1. Keep every fact. Do not add technologies, services or features the draft does not mention.
2. Never weaken a security step. The build sequence must keep its security hardening and testing steps.
3. Role stays one paragraph starting with "You are". Directives stay a bullet list. Build Sequence stays a numbered list.
4. Do not include section headings in your output.
5. If a section is already as good as you can make it, return an empty string for it.`)

	return b.String()
}
