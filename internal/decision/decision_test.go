package decision

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/guardrail"
)

func apiBackend() answers.Set {
	return answers.Set{
		answers.ProjectName:      answers.Text("orders-api"),
		answers.ProjectType:      answers.Text("api-backend"),
		answers.Description:      answers.Text("Order management API for a small shop."),
		answers.StackApproach:    answers.Text("choose"),
		answers.StackTech:        answers.List("nodejs", "postgres"),
		answers.HasAuth:          answers.Text("yes"),
		answers.StoresData:       answers.Text("no"),
		answers.HasPayments:      answers.Text("no"),
		answers.HasSensitiveData: answers.Text("no"),
		answers.Deployment:       answers.Text("aws"),
		answers.LLMTarget:        answers.Text("claude-code"),
	}
}

func TestDerive_APIBackend(t *testing.T) {
	r := Derive(apiBackend())

	if r.ProjectType != catalog.ProjectAPIBackend {
		t.Errorf("project type = %q", r.ProjectType)
	}
	if r.Tier() != guardrail.TierStandard || r.Guardrail.Label != "STANDARD" {
		t.Errorf("tier = %d %q, want 1 STANDARD", r.Tier(), r.Guardrail.Label)
	}
	if r.Filename != "CLAUDE.md" {
		t.Errorf("filename = %q", r.Filename)
	}
	if diff := cmp.Diff([]catalog.Tech{catalog.TechNodeJS, catalog.TechPostgres}, r.Stack); diff != "" {
		t.Errorf("stack (-want +got):\n%s", diff)
	}
	if r.Recommended {
		t.Error("chosen stack reported as recommended")
	}

	wantRole := "You are a senior backend engineer focused on API design, specializing in Node.js and PostgreSQL, " +
		"with deep expertise in authentication and session security.\n\n**Project:** Order management API for a small shop."
	if r.Role.Full != wantRole {
		t.Errorf("role:\ngot  %q\nwant %q", r.Role.Full, wantRole)
	}

	for _, id := range []string{"deploying-to-aws", catalog.SkillValidatingInput} {
		if !slices.Contains(r.Skills, id) {
			t.Errorf("missing skill %s", id)
		}
	}
	// The auth skill needs tier 2.
	if slices.Contains(r.Skills, catalog.SkillImplementingAuth) {
		t.Errorf("unexpected %s at tier 1", catalog.SkillImplementingAuth)
	}

	wantSummary := Summary{
		Skills:       len(r.Skills),
		Instructions: len(r.Guardrail.Instructions),
		Stack:        2,
		Tier:         1,
	}
	if r.Summary != wantSummary {
		t.Errorf("summary = %+v, want %+v", r.Summary, wantSummary)
	}
	if diff := cmp.Diff(catalog.Directives(), r.Directives); diff != "" {
		t.Errorf("directives (-want +got):\n%s", diff)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	a := apiBackend()
	first, err := json.Marshal(Derive(a))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := range 5 {
		again, err := json.Marshal(Derive(a))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i+2, again, first)
		}
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	a := answers.Set{answers.ProjectType: answers.Text("web-app")}
	before := a.Clone()
	Derive(a)
	if diff := cmp.Diff(before, a, cmp.AllowUnexported(answers.Value{})); diff != "" {
		t.Fatalf("input was modified (-before +after):\n%s", diff)
	}
	if a.Has(answers.HasAuth) {
		t.Fatal("security defaults leaked into the caller's set")
	}
}

func TestDerive_MissingFlagsReadAsNo(t *testing.T) {
	r := Derive(answers.Set{answers.ProjectType: answers.Text("cli-tool")})
	if r.Tier() != guardrail.TierBaseline || r.Guardrail.YesCount != 0 {
		t.Errorf("tier = %d, yes = %d; want baseline with no yes answers", r.Tier(), r.Guardrail.YesCount)
	}
	if r.Filename != catalog.FallbackFilename {
		t.Errorf("filename = %q, want %q", r.Filename, catalog.FallbackFilename)
	}
}

func TestDerive_ResultIsSnapshot(t *testing.T) {
	r := Derive(apiBackend())
	r.Directives[0] = "mutated"
	r.Stack[0] = "mutated"
	r.Guardrail.Instructions[0] = "mutated"

	fresh := Derive(apiBackend())
	if fresh.Directives[0] == "mutated" || fresh.Stack[0] == "mutated" || fresh.Guardrail.Instructions[0] == "mutated" {
		t.Fatal("mutating a result leaked into shared tables")
	}
}

func TestDerive_GroupsCoverFlatList(t *testing.T) {
	r := Derive(apiBackend())
	var total int
	for _, g := range catalog.AllGroups() {
		total += len(r.SkillsByGroup[g])
	}
	if total != len(r.Skills) {
		t.Fatalf("grouped %d skills, flat list has %d", total, len(r.Skills))
	}
}

func TestDerivePartial(t *testing.T) {
	notReady := []answers.Set{
		{},
		{answers.StackTech: answers.List("go")},
		{answers.ProjectType: answers.Text("   ")},
		{answers.ProjectType: answers.Text("\n\t")},
	}
	for i, a := range notReady {
		if got := DerivePartial(a); got != nil {
			t.Errorf("case %d: expected not ready, got %+v", i, got)
		}
	}

	got := DerivePartial(answers.Set{answers.ProjectType: answers.Text("library")})
	if got == nil {
		t.Fatal("expected a result once projectType is answered")
	}
	if got.ProjectType != catalog.ProjectLibrary || got.Tier() != guardrail.TierBaseline {
		t.Errorf("got %q tier %d", got.ProjectType, got.Tier())
	}
}

func TestDerive_UppercaseYesIsNotYes(t *testing.T) {
	a := apiBackend()
	a[answers.HasAuth] = answers.Text("no")
	a[answers.HasPayments] = answers.Text("YES")
	if r := Derive(a); r.Tier() != guardrail.TierBaseline {
		t.Fatalf("tier = %d, want baseline", r.Tier())
	}
}

func TestResolved_Copies(t *testing.T) {
	r := Derive(apiBackend())
	s := r.Resolved()
	s.Techs[0] = "x"
	if r.Stack[0] != catalog.TechNodeJS {
		t.Fatalf("resolved view aliases the result stack: %v", r.Stack)
	}
}
