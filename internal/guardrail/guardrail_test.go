package guardrail

import (
	"slices"
	"testing"

	"github.com/abhisek/agentbrief/internal/answers"
)

func flags(auth, stores, payments, sensitive string) answers.Set {
	s := answers.Set{}
	for id, v := range map[answers.ID]string{
		answers.HasAuth:          auth,
		answers.StoresData:       stores,
		answers.HasPayments:      payments,
		answers.HasSensitiveData: sensitive,
	} {
		if v != "" {
			s[id] = answers.Text(v)
		}
	}
	return s
}

func TestEvaluate_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		in        answers.Set
		wantTier  Tier
		wantCount int
	}{
		{"all no", flags("no", "no", "no", "no"), TierBaseline, 0},
		{"all missing", answers.Set{}, TierBaseline, 0},
		{"auth only", flags("yes", "no", "no", "no"), TierStandard, 1},
		{"stores only", flags("no", "yes", "", ""), TierStandard, 1},
		{"auth and stores", flags("yes", "yes", "no", "no"), TierElevated, 2},
		{"payments only", flags("no", "no", "yes", "no"), TierCritical, 1},
		{"sensitive only", flags("", "", "", "yes"), TierCritical, 1},
		{"three yes including payments", flags("yes", "yes", "yes", "no"), TierCritical, 3},
		{"everything", flags("yes", "yes", "yes", "yes"), TierCritical, 4},
		{"only lowercase yes counts", flags("YES", "Yes", "yes ", " yes"), TierBaseline, 0},
		{"garbage values count as no", flags("maybe", "1", "true", "y"), TierBaseline, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.in)
			if got.Tier != tt.wantTier {
				t.Errorf("tier = %d, want %d", got.Tier, tt.wantTier)
			}
			if got.YesCount != tt.wantCount {
				t.Errorf("yesCount = %d, want %d", got.YesCount, tt.wantCount)
			}
			if got.Label != tt.wantTier.Label() || got.Color != tt.wantTier.Color() {
				t.Errorf("label/color = %q/%q, want %q/%q", got.Label, got.Color, tt.wantTier.Label(), tt.wantTier.Color())
			}
		})
	}
}

// Payments or sensitive data must win over the yes-count rule regardless of
// the other two flags.
func TestEvaluate_EscalationPriority(t *testing.T) {
	vals := []string{"yes", "no"}
	for _, auth := range vals {
		for _, stores := range vals {
			for _, pair := range [][2]string{{"yes", "no"}, {"no", "yes"}, {"yes", "yes"}} {
				got := Evaluate(flags(auth, stores, pair[0], pair[1]))
				if got.Tier != TierCritical {
					t.Errorf("auth=%s stores=%s payments=%s sensitive=%s: tier %d, want 3",
						auth, stores, pair[0], pair[1], got.Tier)
				}
			}
		}
	}
}

func TestInstructions_Additive(t *testing.T) {
	for t1 := TierBaseline; t1 <= MaxTier; t1++ {
		for t2 := t1 + 1; t2 <= MaxTier; t2++ {
			a, b := Instructions(t1), Instructions(t2)
			if len(a) >= len(b) || !slices.Equal(a, b[:len(a)]) {
				t.Errorf("instructions(%d) is not a strict prefix of instructions(%d)", t1, t2)
			}
		}
	}
}

func TestEvaluate_PaymentsOnlyUsesAllBuckets(t *testing.T) {
	got := Evaluate(flags("no", "no", "yes", "no"))
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	if len(got.Instructions) != total {
		t.Fatalf("got %d instructions, want %d", len(got.Instructions), total)
	}
	if len(got.ByTier) != 4 {
		t.Fatalf("got %d tier buckets, want 4", len(got.ByTier))
	}
}

func TestInstructions_MatchByTier(t *testing.T) {
	res := Evaluate(flags("yes", "yes", "no", "no"))
	var flat []string
	for _, b := range res.ByTier {
		flat = append(flat, b...)
	}
	if !slices.Equal(flat, res.Instructions) {
		t.Fatal("Instructions must equal the concatenation of ByTier")
	}
}

func TestByTier_Clamped(t *testing.T) {
	if got := len(ByTier(Tier(9))); got != 4 {
		t.Errorf("ByTier(9): got %d buckets, want 4", got)
	}
	if got := len(ByTier(Tier(-1))); got != 1 {
		t.Errorf("ByTier(-1): got %d buckets, want 1", got)
	}
}

func TestInstructions_ReturnCopies(t *testing.T) {
	a := Instructions(TierBaseline)
	a[0] = "tampered"
	if Instructions(TierBaseline)[0] == "tampered" {
		t.Fatal("bucket mutated through returned slice")
	}
}
