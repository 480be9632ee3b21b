package catalog

// Tech identifies a technology the user can put in their stack. The set is
// open on input (unknown ids pass through the resolver untouched) but every
// id the rules branch on is declared here.
type Tech string

const (
	TechReact       Tech = "react"
	TechNextJS      Tech = "nextjs"
	TechVue         Tech = "vue"
	TechSvelte      Tech = "svelte"
	TechTailwind    Tech = "tailwind"
	TechTypeScript  Tech = "typescript"
	TechNodeJS      Tech = "nodejs"
	TechPython      Tech = "python"
	TechFastAPI     Tech = "fastapi"
	TechDjango      Tech = "django"
	TechGo          Tech = "go"
	TechPostgres    Tech = "postgres"
	TechMySQL       Tech = "mysql"
	TechSQLite      Tech = "sqlite"
	TechMongoDB     Tech = "mongodb"
	TechRedis       Tech = "redis"
	TechPrisma      Tech = "prisma"
	TechDrizzle     Tech = "drizzle"
	TechSupabase    Tech = "supabase"
	TechFirebase    Tech = "firebase"
	TechReactNative Tech = "react-native"
	TechFlutter     Tech = "flutter"
	TechDocker      Tech = "docker"
	TechOpenAI      Tech = "openai"
	TechLangChain   Tech = "langchain"
)

// TechKind classifies a technology for build-sequence branching.
type TechKind int

const (
	KindOther TechKind = iota
	KindUIFramework
	KindLanguage
	KindServerFramework
	KindRelationalDB
	KindDocumentDB
	KindORM
	KindBaaS
	KindInfra
)

type techInfo struct {
	label  string
	kind   TechKind
	skills []string
}

var techs = map[Tech]techInfo{
	TechReact:       {"React", KindUIFramework, []string{"react-component-patterns", "react-hooks"}},
	TechNextJS:      {"Next.js (App Router)", KindUIFramework, []string{"nextjs-app-router", "react-component-patterns"}},
	TechVue:         {"Vue 3", KindUIFramework, []string{"vue-composition-api"}},
	TechSvelte:      {"SvelteKit", KindUIFramework, []string{"sveltekit-patterns"}},
	TechTailwind:    {"Tailwind CSS", KindOther, []string{"tailwind-styling"}},
	TechTypeScript:  {"TypeScript", KindLanguage, []string{"typescript-strict-mode"}},
	TechNodeJS:      {"Node.js", KindServerFramework, []string{"nodejs-async-patterns", "express-middleware"}},
	TechPython:      {"Python", KindLanguage, []string{"python-project-layout"}},
	TechFastAPI:     {"FastAPI", KindServerFramework, []string{"fastapi-patterns", "request-validation"}},
	TechDjango:      {"Django", KindServerFramework, []string{"django-patterns"}},
	TechGo:          {"Go", KindLanguage, []string{"go-project-layout", "go-error-handling"}},
	TechPostgres:    {"PostgreSQL", KindRelationalDB, []string{"database-query-patterns", "migration-management"}},
	TechMySQL:       {"MySQL", KindRelationalDB, []string{"database-query-patterns", "migration-management"}},
	TechSQLite:      {"SQLite", KindRelationalDB, []string{"database-query-patterns"}},
	TechMongoDB:     {"MongoDB", KindDocumentDB, []string{"document-modeling"}},
	TechRedis:       {"Redis", KindInfra, []string{"caching-strategies"}},
	TechPrisma:      {"Prisma ORM", KindORM, []string{"prisma-orm-patterns", "migration-management"}},
	TechDrizzle:     {"Drizzle ORM", KindORM, []string{"drizzle-orm-patterns", "migration-management"}},
	TechSupabase:    {"Supabase", KindBaaS, []string{"supabase-patterns", "row-level-security"}},
	TechFirebase:    {"Firebase", KindBaaS, []string{"firebase-patterns"}},
	TechReactNative: {"React Native (Expo)", KindUIFramework, []string{"react-native-patterns"}},
	TechFlutter:     {"Flutter", KindUIFramework, []string{"flutter-widgets"}},
	TechDocker:      {"Docker", KindInfra, []string{"containerizing-apps"}},
	TechOpenAI:      {"OpenAI API", KindOther, []string{"llm-output-validation"}},
	TechLangChain:   {"LangChain", KindOther, []string{"llm-orchestration"}},
}

// TechLabel returns the human label for a technology and whether it is known.
func TechLabel(t Tech) (string, bool) {
	info, ok := techs[t]
	return info.label, ok
}

// TechKindOf returns the kind of t, KindOther for unknown ids.
func TechKindOf(t Tech) TechKind {
	return techs[t].kind
}

// TechSkills returns a copy of the skills a technology pulls in.
func TechSkills(t Tech) []string {
	s := techs[t].skills
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// AllTechs returns every known technology id in a stable order.
func AllTechs() []Tech {
	return []Tech{
		TechReact, TechNextJS, TechVue, TechSvelte, TechTailwind, TechTypeScript,
		TechNodeJS, TechPython, TechFastAPI, TechDjango, TechGo,
		TechPostgres, TechMySQL, TechSQLite, TechMongoDB, TechRedis,
		TechPrisma, TechDrizzle, TechSupabase, TechFirebase,
		TechReactNative, TechFlutter, TechDocker, TechOpenAI, TechLangChain,
	}
}
