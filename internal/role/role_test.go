package role

import (
	"testing"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/stack"
)

func TestJoinList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
		{[]string{"A", "B", "C", "D"}, "A, B, C, and D"},
	}
	for _, tt := range tests {
		if got := JoinList(tt.in); got != tt.want {
			t.Errorf("JoinList(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		in    answers.Set
		stack []catalog.Tech
		want  string
	}{
		{
			name: "bare role",
			in:   answers.Set{answers.ProjectType: answers.Text("cli-tool")},
			want: "You are a senior systems engineer who builds command-line tools.",
		},
		{
			name: "unknown project type falls back",
			in:   answers.Set{answers.ProjectType: answers.Text("spaceship")},
			want: "You are a senior software engineer.",
		},
		{
			name:  "stack only, unmapped ids dropped",
			in:    answers.Set{answers.ProjectType: answers.Text("api-backend")},
			stack: []catalog.Tech{catalog.TechNodeJS, "cobol", catalog.TechPostgres},
			want:  "You are a senior backend engineer focused on API design, specializing in Node.js and PostgreSQL.",
		},
		{
			name: "security only, storesData ignored",
			in: answers.Set{
				answers.ProjectType:      answers.Text("web-app"),
				answers.StoresData:       answers.Text("yes"),
				answers.HasSensitiveData: answers.Text("yes"),
				answers.HasAuth:          answers.Text("yes"),
			},
			want: "You are a senior full-stack web engineer, with deep expertise in authentication and session security and protecting sensitive user data.",
		},
		{
			name: "everything with description",
			in: answers.Set{
				answers.ProjectType:      answers.Text("web-app"),
				answers.HasAuth:          answers.Text("yes"),
				answers.HasPayments:      answers.Text("yes"),
				answers.HasSensitiveData: answers.Text("yes"),
				answers.Description:      answers.Text("  A marketplace for vintage synths.  "),
			},
			stack: []catalog.Tech{catalog.TechNextJS, catalog.TechTailwind, catalog.TechPostgres},
			want: "You are a senior full-stack web engineer, specializing in Next.js (App Router), Tailwind CSS, and PostgreSQL, " +
				"with deep expertise in authentication and session security, secure payment processing, and protecting sensitive user data." +
				"\n\n**Project:**   A marketplace for vintage synths.  ",
		},
		{
			name: "description kept verbatim",
			in: answers.Set{
				answers.ProjectType: answers.Text("library"),
				answers.Description: answers.Text("  lead\n  "),
			},
			want: "You are a senior library author focused on clean public APIs.\n\n**Project:**   lead\n  ",
		},
		{
			name: "blank description omitted",
			in: answers.Set{
				answers.ProjectType: answers.Text("library"),
				answers.Description: answers.Text("   "),
			},
			want: "You are a senior library author focused on clean public APIs.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.in, stack.Resolved{Techs: tt.stack})
			if got.Full != tt.want {
				t.Errorf("Full =\n%q\nwant\n%q", got.Full, tt.want)
			}
		})
	}
}

func TestBuild_DoesNotMutateAnswers(t *testing.T) {
	in := answers.Set{answers.ProjectType: answers.Text("web-app")}
	before := len(in)
	first := Build(in, stack.Resolved{})
	second := Build(in, stack.Resolved{})
	if len(in) != before {
		t.Fatal("answers mutated")
	}
	if first.Full != second.Full {
		t.Fatal("Build is not idempotent")
	}
}
