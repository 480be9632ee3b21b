package assemble

import (
	"fmt"
	"strings"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/guardrail"
	"github.com/abhisek/agentbrief/internal/role"
	"github.com/abhisek/agentbrief/internal/stack"
)

const (
	genericScaffold = "Initialize the repository with the stack's standard project template, a README, a .gitignore, and a formatter/linter config."
	testingStep     = "Write tests for the critical paths (happy path, validation failures, and permission checks) and run them in CI on every push."
)

// BuildSequence returns the ordered build steps, unnumbered. Steps that do
// not apply are left out rather than emitted empty.
func BuildSequence(a answers.Set, s stack.Resolved, tier guardrail.Tier) []string {
	pt := catalog.ParseProjectType(a.String(answers.ProjectType))

	steps := []string{
		scaffoldStep(pt, s),
		structureStep(pt, s),
	}
	if step, ok := dataLayerStep(s); ok {
		steps = append(steps, step)
	}
	steps = append(steps, middleSteps(pt, a)...)
	if step, ok := securityStep(a, tier); ok {
		steps = append(steps, step)
	}
	steps = append(steps, testingStep)
	if step, ok := deployStep(catalog.ParseDeployment(a.String(answers.Deployment))); ok {
		steps = append(steps, step)
	}
	return steps
}

// NumberSteps renders steps as a 1-based numbered list.
func NumberSteps(steps []string) string {
	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s)
	}
	return b.String()
}

func scaffoldStep(pt catalog.ProjectType, s stack.Resolved) string {
	switch pt {
	case catalog.ProjectWebApp:
		switch {
		case s.Contains(catalog.TechNextJS):
			return "Scaffold the app with `npx create-next-app@latest --typescript --app --eslint` and commit the clean baseline."
		case s.Contains(catalog.TechSvelte):
			return "Scaffold the app with `npm create svelte@latest` using the TypeScript skeleton."
		case s.Contains(catalog.TechVue):
			return "Scaffold the app with `npm create vue@latest`, enabling TypeScript, Router, and Vitest."
		case s.Contains(catalog.TechReact):
			return "Scaffold the app with `npm create vite@latest -- --template react-ts`."
		case s.Contains(catalog.TechDjango):
			return "Scaffold the project with `django-admin startproject` and create the first app."
		}
	case catalog.ProjectAPIBackend:
		switch {
		case s.Contains(catalog.TechFastAPI):
			return "Create a FastAPI project with an `app/` package, a `main.py` entrypoint served by uvicorn, and a pyproject.toml."
		case s.Contains(catalog.TechDjango):
			return "Scaffold the project with `django-admin startproject`, add Django REST Framework, and create the first app."
		case s.Contains(catalog.TechNodeJS):
			return "Initialize a Node.js project with TypeScript and Express, a `src/server.ts` entrypoint, and npm scripts for dev, build, and test."
		case s.Contains(catalog.TechGo):
			return "Run `go mod init`, create `cmd/server/main.go`, and keep application code under `internal/`."
		}
	case catalog.ProjectMobileApp:
		switch {
		case s.Contains(catalog.TechReactNative):
			return "Scaffold the app with `npx create-expo-app@latest` using the TypeScript template."
		case s.Contains(catalog.TechFlutter):
			return "Scaffold the app with `flutter create` and enable null-safety lints."
		}
	case catalog.ProjectCLITool:
		switch {
		case s.Contains(catalog.TechGo):
			return "Run `go mod init`, add a cobra root command in `cmd/`, and wire `main.go` to execute it."
		case s.Contains(catalog.TechPython):
			return "Create a Python package with pyproject.toml and a console-script entry point."
		case s.Contains(catalog.TechNodeJS):
			return "Initialize an npm package with a `bin` entry and a TypeScript build step."
		}
	case catalog.ProjectDataPipeline:
		if s.Contains(catalog.TechPython) {
			return "Create a Python package with pyproject.toml, a `pipeline/` module, and a CLI entrypoint for each job."
		}
	case catalog.ProjectAIApp:
		switch {
		case s.Contains(catalog.TechFastAPI):
			return "Create a FastAPI service with an `app/` package and a separate `llm/` module for model clients."
		case s.Contains(catalog.TechPython):
			return "Create a Python package with pyproject.toml and a `llm/` module for model clients."
		case s.Contains(catalog.TechNodeJS), s.Contains(catalog.TechNextJS):
			return "Initialize a TypeScript project and isolate model calls in a `lib/llm` module."
		}
	case catalog.ProjectLibrary:
		switch {
		case s.Contains(catalog.TechTypeScript):
			return "Initialize the package with TypeScript, tsup for builds, and Vitest; export the public API from `src/index.ts`."
		case s.Contains(catalog.TechPython):
			return "Create the package with pyproject.toml and a `src/` layout."
		case s.Contains(catalog.TechGo):
			return "Run `go mod init` with the final import path and keep the public API in the root package."
		}
	case catalog.ProjectUnknown:
	}
	return genericScaffold
}

func structureStep(pt catalog.ProjectType, s stack.Resolved) string {
	switch pt {
	case catalog.ProjectWebApp:
		if _, ok := s.FirstOfKind(catalog.KindUIFramework); ok {
			return "Set up the folder structure: `components/` for UI, `lib/` for shared logic, route-level pages, and a shared layout."
		}
		return "Set up the folder structure: server entrypoint, `templates/` for pages, `static/` for assets, and a shared layout."
	case catalog.ProjectAPIBackend:
		return "Set up the folder structure: routes/handlers, services for business logic, and a data-access layer, with config loaded in one place."
	case catalog.ProjectMobileApp:
		return "Set up the folder structure: `screens/`, `components/`, `navigation/`, and `services/` for API access."
	case catalog.ProjectCLITool:
		return "Set up the folder structure: one file per command, internal packages for logic, and a config loader."
	case catalog.ProjectDataPipeline:
		return "Set up the folder structure: `extract/`, `transform/`, and `load/` stages with shared schemas and fixtures."
	case catalog.ProjectAIApp:
		return "Set up the folder structure: `prompts/`, model client wrappers, retrieval code, and evaluation fixtures."
	case catalog.ProjectLibrary:
		return "Set up the folder structure: a small public API surface, internal helpers, and an `examples/` directory."
	default:
		return "Organize the source tree by feature with clear module boundaries."
	}
}

// dataLayerStep is present only when the stack has a database, ORM, or BaaS.
// Priority: ORM, then BaaS, then a relational database, then anything else.
func dataLayerStep(s stack.Resolved) (string, bool) {
	orm, hasORM := s.FirstOfKind(catalog.KindORM)
	baas, hasBaaS := s.FirstOfKind(catalog.KindBaaS)
	db, hasDB := s.FirstOfKind(catalog.KindRelationalDB)
	doc, hasDoc := s.FirstOfKind(catalog.KindDocumentDB)
	if !hasORM && !hasBaaS && !hasDB && !hasDoc {
		return "", false
	}

	dbName := "the database"
	if hasDB {
		dbName = techName(db)
	} else if hasDoc {
		dbName = techName(doc)
	}

	switch {
	case hasORM:
		switch orm {
		case catalog.TechPrisma:
			return fmt.Sprintf("Define the Prisma schema for %s, run `npx prisma migrate dev` for the first migration, and generate the client.", dbName), true
		case catalog.TechDrizzle:
			return fmt.Sprintf("Define the Drizzle schema for %s, generate the first migration with drizzle-kit, and add a typed query module.", dbName), true
		default:
			return fmt.Sprintf("Define the %s models for %s and create the first migration.", techName(orm), dbName), true
		}
	case hasBaaS:
		switch baas {
		case catalog.TechSupabase:
			return "Create the Supabase tables with row-level security policies enabled, then generate TypeScript types for the client.", true
		case catalog.TechFirebase:
			return "Model the Firestore collections and write security rules before any client reads or writes data.", true
		default:
			return fmt.Sprintf("Model the %s data and configure its access rules.", techName(baas)), true
		}
	case hasDB:
		return fmt.Sprintf("Design the %s schema, write the first migration, and add a data-access layer with parameterized queries.", dbName), true
	default:
		return fmt.Sprintf("Set up the data layer: model the %s collections, add indexes for the main queries, and wrap access in a repository module.", dbName), true
	}
}

func middleSteps(pt catalog.ProjectType, a answers.Set) []string {
	var steps []string
	switch pt {
	case catalog.ProjectWebApp:
		steps = []string{
			"Build the core pages and the shared layout with loading and error states.",
			"Implement the primary user flow end to end before adding secondary features.",
		}
	case catalog.ProjectAPIBackend:
		steps = []string{
			"Implement the core resource endpoints with a consistent error envelope.",
			"Add request validation, pagination for list endpoints, and an OpenAPI description.",
		}
	case catalog.ProjectMobileApp:
		steps = []string{
			"Build the main screens and navigation flow.",
			"Add local caching so core screens work offline.",
		}
	case catalog.ProjectCLITool:
		steps = []string{
			"Implement the primary commands with clear `--help` text and non-zero exit codes on failure.",
			"Add config file and environment variable support with documented precedence.",
		}
	case catalog.ProjectDataPipeline:
		steps = []string{
			"Implement the extract and transform stages against sample fixtures.",
			"Add data-quality checks between stages and make every stage safe to re-run.",
		}
	case catalog.ProjectAIApp:
		steps = []string{
			"Implement the prompt pipeline with structured output parsing and validation.",
			"Add an evaluation harness with fixed test prompts and expected properties.",
		}
	case catalog.ProjectLibrary:
		steps = []string{
			"Implement the public API with doc comments on every exported symbol.",
			"Add runnable usage examples and a changelog.",
		}
	default:
		steps = []string{"Implement the core feature set, one vertical slice at a time."}
	}

	if a.Flag(answers.HasAuth) {
		steps = append(steps, "Implement the authentication flow: sign-up, sign-in, sign-out, password reset, and session expiry.")
	}
	if a.Flag(answers.HasPayments) {
		steps = append(steps, "Integrate the payment flow through the provider's hosted checkout, with signature-verified, idempotent webhook handlers.")
	}
	return steps
}

// securityStep is present from tier 1 up and lists only the concerns that apply.
func securityStep(a answers.Set, tier guardrail.Tier) (string, bool) {
	if tier < guardrail.TierStandard {
		return "", false
	}
	items := []string{"input validation on every external boundary"}
	if a.Flag(answers.HasAuth) {
		items = append(items, "auth middleware on every protected route")
	}
	if tier >= guardrail.TierElevated {
		items = append(items, "a strict CORS policy with security headers")
	}
	if tier >= guardrail.TierCritical {
		items = append(items, "secrets management and encryption for sensitive data")
	}
	return "Harden security: add " + role.JoinList(items) + ".", true
}

func deployStep(d catalog.Deployment) (string, bool) {
	switch d {
	case catalog.DeployLocal:
		return "", false
	case catalog.DeployVercel:
		return "Deploy to Vercel: connect the repository, set environment variables per environment, and enable preview deployments.", true
	case catalog.DeployAWS:
		return "Deploy to AWS: define the infrastructure as code, use least-privilege IAM roles, and keep secrets in Secrets Manager.", true
	case catalog.DeployGCP:
		return "Deploy to Google Cloud Run: build a container, attach a dedicated service account, and load secrets from Secret Manager.", true
	case catalog.DeployFly:
		return "Deploy to Fly.io: run `fly launch`, add health checks to fly.toml, and set secrets with `fly secrets set`.", true
	case catalog.DeploySelfHosted:
		return "Deploy to your server: write a Dockerfile, run it behind a reverse proxy with TLS, and configure automatic restarts.", true
	case catalog.DeployAppStore:
		return "Ship to the app stores: configure signing, then release through TestFlight and Google Play internal testing before production.", true
	default:
		return "Pick a hosting target, then document the deployment steps and required environment variables in the README.", true
	}
}

func techName(t catalog.Tech) string {
	if label, ok := catalog.TechLabel(t); ok {
		return label
	}
	return string(t)
}
