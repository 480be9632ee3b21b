package catalog

// Deployment is where the user intends to ship.
type Deployment string

const (
	DeployVercel     Deployment = "vercel"
	DeployAWS        Deployment = "aws"
	DeployGCP        Deployment = "gcp"
	DeployFly        Deployment = "fly"
	DeploySelfHosted Deployment = "self-hosted"
	DeployAppStore   Deployment = "app-store"
	DeployLocal      Deployment = "local"
	DeployUndecided  Deployment = "undecided"
)

// ParseDeployment maps an answer to a Deployment. Unrecognized or missing
// answers are treated as undecided.
func ParseDeployment(s string) Deployment {
	switch d := Deployment(s); d {
	case DeployVercel, DeployAWS, DeployGCP, DeployFly, DeploySelfHosted,
		DeployAppStore, DeployLocal:
		return d
	default:
		return DeployUndecided
	}
}

var deploymentSkills = map[Deployment][]string{
	DeployVercel:     {"deploying-to-vercel"},
	DeployAWS:        {"deploying-to-aws"},
	DeployGCP:        {"deploying-to-gcp"},
	DeployFly:        {"deploying-to-fly"},
	DeploySelfHosted: {"containerizing-apps"},
	DeployAppStore:   {"publishing-to-app-stores"},
}

// DeploymentSkills returns the skills for a deployment target. Local and
// undecided targets have none.
func DeploymentSkills(d Deployment) []string {
	s := deploymentSkills[d]
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Target is the AI assistant the generated file is written for.
type Target string

const (
	TargetClaudeCode Target = "claude-code"
	TargetCursor     Target = "cursor"
	TargetWindsurf   Target = "windsurf"
	TargetCopilot    Target = "copilot"
	TargetCodex      Target = "codex"
	TargetGeminiCLI  Target = "gemini-cli"
)

// FallbackFilename is used for unknown or missing targets.
const FallbackFilename = "AI_INSTRUCTIONS.md"

var targetFilenames = map[Target]string{
	TargetClaudeCode: "CLAUDE.md",
	TargetCursor:     ".cursorrules",
	TargetWindsurf:   ".windsurfrules",
	TargetCopilot:    ".github/copilot-instructions.md",
	TargetCodex:      "AGENTS.md",
	TargetGeminiCLI:  "GEMINI.md",
}

// OutputFilename returns the canonical config filename for a target answer.
func OutputFilename(target string) string {
	if f, ok := targetFilenames[Target(target)]; ok {
		return f
	}
	return FallbackFilename
}
