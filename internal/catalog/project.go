package catalog

// ProjectType is the closed set of project kinds the questionnaire offers.
type ProjectType string

const (
	ProjectWebApp       ProjectType = "web-app"
	ProjectAPIBackend   ProjectType = "api-backend"
	ProjectMobileApp    ProjectType = "mobile-app"
	ProjectCLITool      ProjectType = "cli-tool"
	ProjectDataPipeline ProjectType = "data-pipeline"
	ProjectAIApp        ProjectType = "ai-app"
	ProjectLibrary      ProjectType = "library"

	// ProjectUnknown carries the fallback behavior for anything else,
	// including a missing answer.
	ProjectUnknown ProjectType = "unknown"
)

// AllProjectTypes returns the known project types in questionnaire order.
func AllProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectWebApp,
		ProjectAPIBackend,
		ProjectMobileApp,
		ProjectCLITool,
		ProjectDataPipeline,
		ProjectAIApp,
		ProjectLibrary,
	}
}

// ParseProjectType maps an answer to a ProjectType, ProjectUnknown if unrecognized.
func ParseProjectType(s string) ProjectType {
	switch p := ProjectType(s); p {
	case ProjectWebApp, ProjectAPIBackend, ProjectMobileApp, ProjectCLITool,
		ProjectDataPipeline, ProjectAIApp, ProjectLibrary:
		return p
	default:
		return ProjectUnknown
	}
}

// DisplayName returns a human-readable name for the project type.
func (p ProjectType) DisplayName() string {
	switch p {
	case ProjectWebApp:
		return "Web Application"
	case ProjectAPIBackend:
		return "API / Backend Service"
	case ProjectMobileApp:
		return "Mobile App"
	case ProjectCLITool:
		return "CLI Tool"
	case ProjectDataPipeline:
		return "Data Pipeline"
	case ProjectAIApp:
		return "AI Application"
	case ProjectLibrary:
		return "Library / SDK"
	default:
		return "Software Project"
	}
}

// BaseRole returns the role noun phrase used to open the role sentence.
func (p ProjectType) BaseRole() string {
	switch p {
	case ProjectWebApp:
		return "senior full-stack web engineer"
	case ProjectAPIBackend:
		return "senior backend engineer focused on API design"
	case ProjectMobileApp:
		return "senior mobile engineer"
	case ProjectCLITool:
		return "senior systems engineer who builds command-line tools"
	case ProjectDataPipeline:
		return "senior data engineer"
	case ProjectAIApp:
		return "senior AI application engineer"
	case ProjectLibrary:
		return "senior library author focused on clean public APIs"
	default:
		return "senior software engineer"
	}
}

// WebFacing reports whether the project type serves browsers directly and
// therefore needs CORS policy.
func (p ProjectType) WebFacing() bool {
	switch p {
	case ProjectWebApp, ProjectAPIBackend, ProjectAIApp:
		return true
	default:
		return false
	}
}

// curatedStacks is the recommended stack per project type, in display order.
var curatedStacks = map[ProjectType][]Tech{
	ProjectWebApp:       {TechNextJS, TechTypeScript, TechTailwind, TechPostgres, TechPrisma},
	ProjectAPIBackend:   {TechNodeJS, TechTypeScript, TechPostgres, TechPrisma},
	ProjectMobileApp:    {TechReactNative, TechTypeScript, TechSupabase},
	ProjectCLITool:      {TechGo},
	ProjectDataPipeline: {TechPython, TechPostgres, TechDocker},
	ProjectAIApp:        {TechPython, TechFastAPI, TechOpenAI, TechPostgres},
	ProjectLibrary:      {TechTypeScript},
}

// defaultStack is used when the project type has no curated stack.
var defaultStack = []Tech{TechTypeScript}

// RecommendedStack returns a copy of the curated stack for p.
func RecommendedStack(p ProjectType) []Tech {
	s, ok := curatedStacks[p]
	if !ok {
		s = defaultStack
	}
	out := make([]Tech, len(s))
	copy(out, s)
	return out
}
