// Package assemble renders a derivation result into the markdown config file
// an AI coding assistant reads.
package assemble

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/decision"
)

// Section headings, in document order.
const (
	HeadingRole       = "Role"
	HeadingContext    = "Project Context"
	HeadingStack      = "Tech Stack"
	HeadingDirectives = "Behavioral Directives"
	HeadingGuardrails = "Security Guardrails"
	HeadingSkills     = "Skill Packs"
	HeadingBuildSeq   = "Build Sequence"
)

// Divider separates sections in the rendered document.
const Divider = "\n\n---\n\n"

// Section is one rendered block of the document.
type Section struct {
	Heading  string `json:"heading"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Enhanced bool   `json:"enhanced"`
}

func (s Section) String() string {
	return "## " + s.Title + "\n\n" + s.Body
}

// Document is the assembled config file.
type Document struct {
	Filename string    `json:"filename"`
	Header   string    `json:"header"`
	Sections []Section `json:"sections"`
	Enhanced bool      `json:"enhanced"`
}

// String returns the full file contents.
func (d Document) String() string {
	parts := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		parts[i] = s.String()
	}
	return d.Header + "\n\n" + strings.Join(parts, Divider) + "\n"
}

// Section returns the section with the given heading.
func (d Document) Section(heading string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

// Options control assembly. A zero Now means time.Now.
type Options struct {
	Overrides *Overrides
	Now       time.Time
}

// Assemble builds the document from the answers and their derivation result.
// It never fails: missing answers produce placeholders.
func Assemble(a answers.Set, r decision.Result, opts Options) Document {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	ov := opts.Overrides
	if ov == nil {
		ov = &Overrides{}
	}

	roleBody, roleEnh := pick(ov.Role, r.Role.Full)
	ctxBody, ctxEnh := pick(ov.Context, contextBody(a, r))
	dirBody, dirEnh := pick(ov.Directives, bulletList(r.Directives))
	seqBody, seqEnh := pick(ov.BuildSeq, NumberSteps(BuildSequence(a, r.Resolved(), r.Tier())))

	sections := []Section{
		{Heading: HeadingRole, Title: HeadingRole, Body: roleBody, Enhanced: roleEnh},
		{Heading: HeadingContext, Title: HeadingContext, Body: ctxBody, Enhanced: ctxEnh},
		{Heading: HeadingStack, Title: HeadingStack, Body: stackBody(r)},
		{Heading: HeadingDirectives, Title: HeadingDirectives, Body: dirBody, Enhanced: dirEnh},
		{
			Heading: HeadingGuardrails,
			Title:   fmt.Sprintf("%s (Tier %d: %s)", HeadingGuardrails, r.Tier(), r.Guardrail.Label),
			Body:    bulletList(r.Guardrail.Instructions),
		},
		{Heading: HeadingSkills, Title: HeadingSkills, Body: skillsBody(r.Skills)},
		{Heading: HeadingBuildSeq, Title: HeadingBuildSeq, Body: seqBody, Enhanced: seqEnh},
	}

	enhanced := roleEnh || ctxEnh || dirEnh || seqEnh
	return Document{
		Filename: r.Filename,
		Header:   header(now, r, enhanced),
		Sections: sections,
		Enhanced: enhanced,
	}
}

func header(now time.Time, r decision.Result, enhanced bool) string {
	parts := []string{
		"Generated by agentbrief on " + now.Format(time.DateOnly),
		r.Filename,
		fmt.Sprintf("Guardrail Tier %d: %s", r.Tier(), r.Guardrail.Label),
	}
	if enhanced {
		parts = append(parts, "AI-enhanced")
	}
	return "<!-- " + strings.Join(parts, " | ") + " -->"
}

func contextBody(a answers.Set, r decision.Result) string {
	var b strings.Builder

	name := strings.TrimSpace(a.String(answers.ProjectName))
	if name == "" {
		name = "Untitled project"
	}
	fmt.Fprintf(&b, "**Project:** %s\n", name)
	fmt.Fprintf(&b, "**Type:** %s\n", r.ProjectType.DisplayName())
	for _, f := range []struct {
		label string
		id    answers.ID
	}{
		{"Stage", answers.Stage},
		{"Audience", answers.Audience},
		{"Deployment", answers.Deployment},
	} {
		if v := strings.TrimSpace(a.String(f.id)); v != "" {
			fmt.Fprintf(&b, "**%s:** %s\n", f.label, v)
		}
	}

	if desc := strings.TrimSpace(a.String(answers.Description)); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("\n**Data profile:**\n")
	for _, f := range []struct {
		label string
		id    answers.ID
	}{
		{"User authentication", answers.HasAuth},
		{"Stores user data", answers.StoresData},
		{"Processes payments", answers.HasPayments},
		{"Handles sensitive data", answers.HasSensitiveData},
	} {
		v := answers.No
		if a.Flag(f.id) {
			v = answers.Yes
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.label, v)
	}
	return strings.TrimRight(b.String(), "\n")
}

func stackBody(r decision.Result) string {
	if len(r.Stack) == 0 {
		return "_No technologies selected. Choose a stack before starting work._"
	}
	lines := make([]string, len(r.Stack))
	for i, t := range r.Stack {
		lines[i] = "- " + techName(t)
	}
	body := strings.Join(lines, "\n")
	if r.Recommended {
		body += fmt.Sprintf("\n\n_Recommended stack for a %s. Adjust it if the project has constraints._", r.ProjectType.DisplayName())
	}
	return body
}

func skillsBody(ids []string) string {
	if len(ids) == 0 {
		return "_No skill packs selected._"
	}
	lines := make([]string, len(ids))
	for i, id := range ids {
		line := "- `" + catalog.SkillPath(id) + "`"
		if meta, ok := catalog.LookupSkill(id); ok && meta.Description != "" {
			line += ": " + meta.Description
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "- " + s
	}
	return strings.Join(lines, "\n")
}
