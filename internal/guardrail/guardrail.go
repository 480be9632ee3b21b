// Package guardrail computes the security tier for a project and the
// additive instruction set that goes with it.
package guardrail

import "github.com/abhisek/agentbrief/internal/answers"

// Tier is the guardrail severity, 0 through 3.
type Tier int

const (
	TierBaseline Tier = iota
	TierStandard
	TierElevated
	TierCritical
)

// MaxTier is the highest tier.
const MaxTier = TierCritical

// Label returns the uppercase label shown in headers.
func (t Tier) Label() string {
	switch t {
	case TierBaseline:
		return "BASELINE"
	case TierStandard:
		return "STANDARD"
	case TierElevated:
		return "ELEVATED"
	case TierCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Color returns the hex display color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierBaseline:
		return "#94A3B8"
	case TierStandard:
		return "#22C55E"
	case TierElevated:
		return "#F97316"
	case TierCritical:
		return "#F43F5E"
	default:
		return "#94A3B8"
	}
}

// buckets holds one instruction list per tier; tier 0 is universal.
var buckets = [MaxTier + 1][]string{
	TierBaseline: {
		"Never commit secrets, API keys, or credentials to the repository.",
		"Keep dependencies pinned and prefer well-maintained packages.",
		"Handle errors explicitly; never swallow exceptions silently.",
	},
	TierStandard: {
		"Validate and sanitize all user input on the server side.",
		"Use parameterized queries; never build SQL from string concatenation.",
		"Return generic error messages to clients and log details server-side.",
	},
	TierElevated: {
		"Protect every authenticated route with server-side authorization checks.",
		"Configure CORS with an explicit origin allow-list and set security headers.",
		"Hash passwords with bcrypt or argon2 and rate-limit authentication endpoints.",
	},
	TierCritical: {
		"Load secrets from a secrets manager or environment, never from source files.",
		"Encrypt sensitive data at rest and enforce TLS for data in transit.",
		"Never store raw card data; use the payment provider's hosted fields and verify webhook signatures.",
		"Write an audit log for access to sensitive records and payment events.",
	},
}

// Result is the guardrail evaluation for one answer set.
type Result struct {
	Tier         Tier       `json:"tier"`
	Label        string     `json:"label"`
	Color        string     `json:"color"`
	Instructions []string   `json:"instructions"`
	ByTier       [][]string `json:"byTier"`
	YesCount     int        `json:"yesCount"`
}

// Evaluate computes the tier from the four security flags. Missing flags
// count as "no". Payments or sensitive data escalate straight to tier 3
// before the yes-count rules are considered.
func Evaluate(a answers.Set) Result {
	yes := 0
	for _, id := range answers.SecurityFlags {
		if a.Flag(id) {
			yes++
		}
	}

	var tier Tier
	switch {
	case a.Flag(answers.HasPayments) || a.Flag(answers.HasSensitiveData):
		tier = TierCritical
	case yes >= 2:
		tier = TierElevated
	case yes >= 1:
		tier = TierStandard
	default:
		tier = TierBaseline
	}

	return Result{
		Tier:         tier,
		Label:        tier.Label(),
		Color:        tier.Color(),
		Instructions: Instructions(tier),
		ByTier:       ByTier(tier),
		YesCount:     yes,
	}
}

// Instructions returns buckets 0..t concatenated in order.
func Instructions(t Tier) []string {
	var out []string
	for _, b := range ByTier(t) {
		out = append(out, b...)
	}
	return out
}

// ByTier returns copies of buckets 0..t. Out-of-range tiers are clamped.
func ByTier(t Tier) [][]string {
	t = max(TierBaseline, min(t, MaxTier))
	out := make([][]string, 0, t+1)
	for i := TierBaseline; i <= t; i++ {
		b := make([]string, len(buckets[i]))
		copy(b, buckets[i])
		out = append(out, b)
	}
	return out
}
