package catalog

import "fmt"

// Group is the display partition a skill is listed under.
type Group string

const (
	GroupCore       Group = "core"
	GroupStack      Group = "stack"
	GroupGuardrail  Group = "guardrail"
	GroupDeployment Group = "deployment"
)

// AllGroups returns the groups in display order.
func AllGroups() []Group {
	return []Group{GroupCore, GroupStack, GroupGuardrail, GroupDeployment}
}

// GroupDisplayName returns a human-readable name for a group.
func GroupDisplayName(g Group) string {
	switch g {
	case GroupCore:
		return "Core"
	case GroupStack:
		return "Stack"
	case GroupGuardrail:
		return "Guardrails"
	case GroupDeployment:
		return "Deployment"
	default:
		return string(g)
	}
}

// SkillMeta describes a skill pack. The document body itself lives outside
// the engine; only the id, group and a one-line summary are known here.
type SkillMeta struct {
	ID          string
	Name        string
	Group       Group
	Description string
}

// Guardrail skill ids referenced by the selector.
const (
	SkillValidatingInput   = "validating-user-input"
	SkillImplementingAuth  = "implementing-auth"
	SkillConfiguringCORS   = "configuring-cors"
	SkillManagingSecrets   = "managing-secrets-and-env"
	SkillPaymentSecurity   = "handling-payment-security"
	SkillEncryptionPattern = "data-encryption-patterns"
)

// SkillPath is where a skill document lives inside a bundle.
func SkillPath(id string) string {
	return fmt.Sprintf("skills/%s/SKILL.md", id)
}

var projectSkills = map[ProjectType][]string{
	ProjectWebApp:       {"component-architecture", "accessible-ui-patterns", "web-performance"},
	ProjectAPIBackend:   {"designing-rest-apis", "request-validation", "api-error-handling"},
	ProjectMobileApp:    {"mobile-navigation-patterns", "offline-first-data", "mobile-release-checklist"},
	ProjectCLITool:      {"cli-ux-conventions", "config-file-handling", "cross-platform-builds"},
	ProjectDataPipeline: {"idempotent-pipelines", "data-quality-checks", "batch-scheduling"},
	ProjectAIApp:        {"prompt-engineering", "llm-output-validation", "rag-patterns"},
	ProjectLibrary:      {"semantic-versioning", "public-api-design", "writing-docs"},
}

// ProjectSkills returns a copy of the deterministic skills for a project type.
func ProjectSkills(p ProjectType) []string {
	s := projectSkills[p]
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// skillTable is the metadata for every skill the rules can emit. Some stack
// skills are deliberately missing; they fall into GroupCore and get a
// generated document downstream.
var skillTable = []SkillMeta{
	// Core
	{"component-architecture", "Component Architecture", GroupCore, "Compose UIs from small, testable components with clear data flow."},
	{"accessible-ui-patterns", "Accessible UI Patterns", GroupCore, "Semantic markup, keyboard navigation, and ARIA where needed."},
	{"web-performance", "Web Performance", GroupCore, "Core Web Vitals budgets, code splitting, and image optimization."},
	{"designing-rest-apis", "Designing REST APIs", GroupCore, "Resource naming, status codes, pagination, and versioning."},
	{"request-validation", "Request Validation", GroupCore, "Validate and coerce request payloads at the handler boundary."},
	{"api-error-handling", "API Error Handling", GroupCore, "Consistent error envelopes and no leaked internals."},
	{"mobile-navigation-patterns", "Mobile Navigation", GroupCore, "Stack and tab navigation with deep-link support."},
	{"offline-first-data", "Offline-First Data", GroupCore, "Local caching and sync conflict handling."},
	{"mobile-release-checklist", "Mobile Release Checklist", GroupCore, "Versioning, signing, and staged rollouts."},
	{"cli-ux-conventions", "CLI UX Conventions", GroupCore, "Flags, exit codes, help text, and machine-readable output."},
	{"config-file-handling", "Config File Handling", GroupCore, "Layered config: defaults, file, environment, flags."},
	{"cross-platform-builds", "Cross-Platform Builds", GroupCore, "Build and release for Linux, macOS, and Windows."},
	{"idempotent-pipelines", "Idempotent Pipelines", GroupCore, "Re-runnable stages with deterministic outputs."},
	{"data-quality-checks", "Data Quality Checks", GroupCore, "Schema, null, and range checks between stages."},
	{"batch-scheduling", "Batch Scheduling", GroupCore, "Schedules, backfills, and retry policy."},
	{"prompt-engineering", "Prompt Engineering", GroupCore, "Structured prompts with explicit output contracts."},
	{"llm-output-validation", "LLM Output Validation", GroupCore, "Schema-validate model output and retry on failure."},
	{"rag-patterns", "RAG Patterns", GroupCore, "Chunking, retrieval, and grounding answers in sources."},
	{"semantic-versioning", "Semantic Versioning", GroupCore, "Version the public API and document breaking changes."},
	{"public-api-design", "Public API Design", GroupCore, "Small surface, stable names, and good defaults."},
	{"writing-docs", "Writing Docs", GroupCore, "README, reference docs, and runnable examples."},
	{"realtime-websockets", "Realtime with WebSockets", GroupCore, "Connection lifecycle, fan-out, and reconnection."},
	{"file-upload-handling", "File Upload Handling", GroupCore, "Size limits, content-type checks, and object storage."},
	{"sending-email", "Sending Email", GroupCore, "Transactional email with templates and bounce handling."},
	{"search-indexing", "Search Indexing", GroupCore, "Full-text indexes and relevance tuning."},
	{"background-jobs", "Background Jobs", GroupCore, "Queues, retries, and idempotent workers."},
	{"analytics-dashboards", "Analytics Dashboards", GroupCore, "Aggregations and charts that stay fast."},
	{"llm-integration", "LLM Integration", GroupCore, "Calling model APIs with timeouts, retries, and fallbacks."},
	{"multi-tenancy", "Multi-Tenancy", GroupCore, "Tenant isolation in data and authorization."},
	{"internationalization", "Internationalization", GroupCore, "Message catalogs, locale formatting, and RTL."},
	{"rate-limiting", "Rate Limiting", GroupCore, "Per-client limits and abuse protection."},
	{"geolocation-features", "Geolocation Features", GroupCore, "Location permissions, geocoding, and maps."},
	{"subscription-billing", "Subscription Billing", GroupCore, "Plans, trials, proration, and dunning."},

	// Stack
	{"react-component-patterns", "React Component Patterns", GroupStack, "Composition, controlled inputs, and memoization."},
	{"react-hooks", "React Hooks", GroupStack, "Custom hooks and effect hygiene."},
	{"nextjs-app-router", "Next.js App Router", GroupStack, "Server components, route handlers, and caching."},
	{"vue-composition-api", "Vue Composition API", GroupStack, "Composables and reactive state."},
	{"sveltekit-patterns", "SvelteKit Patterns", GroupStack, "Load functions, form actions, and stores."},
	{"tailwind-styling", "Tailwind Styling", GroupStack, "Design tokens and utility composition."},
	{"typescript-strict-mode", "TypeScript Strict Mode", GroupStack, "Strict compiler options and type-safe boundaries."},
	{"nodejs-async-patterns", "Node.js Async Patterns", GroupStack, "Promises, streams, and graceful shutdown."},
	{"express-middleware", "Express Middleware", GroupStack, "Middleware ordering and error handlers."},
	{"python-project-layout", "Python Project Layout", GroupStack, "pyproject, src layout, and virtual environments."},
	{"fastapi-patterns", "FastAPI Patterns", GroupStack, "Dependencies, Pydantic models, and routers."},
	{"django-patterns", "Django Patterns", GroupStack, "Apps, models, and the ORM."},
	{"go-project-layout", "Go Project Layout", GroupStack, "cmd/, internal/, and small packages."},
	{"go-error-handling", "Go Error Handling", GroupStack, "Wrapping, sentinel errors, and errors.Is/As."},
	{"database-query-patterns", "Database Query Patterns", GroupStack, "Parameterized queries, indexes, and transactions."},
	{"migration-management", "Migration Management", GroupStack, "Forward-only, reviewed schema migrations."},
	{"document-modeling", "Document Modeling", GroupStack, "Embedding versus referencing and index design."},
	{"caching-strategies", "Caching Strategies", GroupStack, "Cache-aside, TTLs, and invalidation."},
	{"prisma-orm-patterns", "Prisma ORM Patterns", GroupStack, "Schema modeling, relations, and migrations."},
	{"drizzle-orm-patterns", "Drizzle ORM Patterns", GroupStack, "Typed schemas and query builders."},
	{"supabase-patterns", "Supabase Patterns", GroupStack, "Auth, storage, and generated types."},
	{"row-level-security", "Row-Level Security", GroupStack, "Postgres RLS policies per role."},
	{"react-native-patterns", "React Native Patterns", GroupStack, "Expo, native modules, and platform checks."},

	// Guardrail
	{SkillValidatingInput, "Validating User Input", GroupGuardrail, "Allow-list validation on every external boundary."},
	{SkillImplementingAuth, "Implementing Auth", GroupGuardrail, "Session handling, password hashing, and authorization checks."},
	{SkillConfiguringCORS, "Configuring CORS", GroupGuardrail, "Explicit origins and security headers."},
	{SkillManagingSecrets, "Managing Secrets and Env", GroupGuardrail, "No secrets in code; rotation and scoped credentials."},
	{SkillPaymentSecurity, "Handling Payment Security", GroupGuardrail, "Hosted checkout, signed webhooks, and idempotency keys."},
	{SkillEncryptionPattern, "Data Encryption Patterns", GroupGuardrail, "Encryption at rest and in transit, key management."},

	// Deployment
	{"containerizing-apps", "Containerizing Apps", GroupDeployment, "Small images, non-root users, and health checks."},
	{"deploying-to-vercel", "Deploying to Vercel", GroupDeployment, "Preview deployments and environment variables."},
	{"deploying-to-aws", "Deploying to AWS", GroupDeployment, "IAM least privilege, managed services, and IaC."},
	{"deploying-to-gcp", "Deploying to GCP", GroupDeployment, "Cloud Run, service accounts, and Secret Manager."},
	{"deploying-to-fly", "Deploying to Fly.io", GroupDeployment, "fly.toml, regions, and volumes."},
	{"publishing-to-app-stores", "Publishing to App Stores", GroupDeployment, "Store listings, review guidelines, and staged release."},
}

var skillIndex = func() map[string]SkillMeta {
	m := make(map[string]SkillMeta, len(skillTable))
	for _, s := range skillTable {
		m[s.ID] = s
	}
	return m
}()

// LookupSkill returns the metadata for a skill id.
func LookupSkill(id string) (SkillMeta, bool) {
	s, ok := skillIndex[id]
	return s, ok
}

// SkillGroup returns the display group for a skill, GroupCore when unknown.
func SkillGroup(id string) Group {
	if s, ok := skillIndex[id]; ok {
		return s.Group
	}
	return GroupCore
}

// AllSkills returns a copy of the skill metadata table in declaration order.
func AllSkills() []SkillMeta {
	out := make([]SkillMeta, len(skillTable))
	copy(out, skillTable)
	return out
}
