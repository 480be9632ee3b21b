package catalog

// KeywordRule adds SkillID when any keyword occurs in the project description.
// Keywords are lowercase and matched as substrings.
type KeywordRule struct {
	Keywords []string
	SkillID  string
}

var keywordRules = []KeywordRule{
	{[]string{"real-time", "realtime", "websocket", "live update", "chat"}, "realtime-websockets"},
	{[]string{"upload", "file storage", "image", "s3 bucket"}, "file-upload-handling"},
	{[]string{"email", "newsletter", "notification"}, "sending-email"},
	{[]string{"search", "full-text"}, "search-indexing"},
	{[]string{"queue", "background job", "worker", "cron"}, "background-jobs"},
	{[]string{"analytics", "dashboard", "chart", "report"}, "analytics-dashboards"},
	{[]string{"llm", "gpt", "openai", "chatbot", "machine learning"}, "llm-integration"},
	{[]string{"multi-tenant", "tenant", "organization", "workspace"}, "multi-tenancy"},
	{[]string{"i18n", "internationaliz", "translation", "locali"}, "internationalization"},
	{[]string{"rate limit", "throttl", "abuse"}, "rate-limiting"},
	{[]string{"geolocation", "maps", "gps"}, "geolocation-features"},
	{[]string{"subscription", "billing", "stripe", "checkout"}, "subscription-billing"},
}

// KeywordRules returns a copy of the ordered keyword table.
func KeywordRules() []KeywordRule {
	out := make([]KeywordRule, len(keywordRules))
	for i, r := range keywordRules {
		kw := make([]string, len(r.Keywords))
		copy(kw, r.Keywords)
		out[i] = KeywordRule{Keywords: kw, SkillID: r.SkillID}
	}
	return out
}
