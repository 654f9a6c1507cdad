// Package profile routes plan text to relevant reviewer profiles and
// classifies the plan's security sensitivity level. All keyword tables are
// static, read-only configuration loaded once at startup.
package profile

// Profile is a named reviewer domain with its keyword set.
type Profile struct {
	ID          string
	DisplayName string
	Description string
	Keywords    []string
}

// GenericID is the fallback reviewer used when no domain-specific profile
// matches the plan. It has no keyword set and is never auto-selected.
const GenericID = "architect"

// GenericDisplayName is the display name for the fallback reviewer.
const GenericDisplayName = "Systems Architect"

// Profiles is the fixed table of reviewer profiles, in routing order.
var Profiles = []Profile{
	{
		ID:          "security",
		DisplayName: "Security Reviewer",
		Description: "authentication, authorization, input validation",
		Keywords: []string{
			"auth", "password", "token", "jwt", "encrypt", "secret",
			"permission", "role", "cors", "sanitize", "xss", "csrf",
			"oauth", "session", "login", "credential", "rbac", "acl",
			"hash", "salt", "bcrypt", "argon", "ssl", "tls", "https",
			"certificate", "firewall", "vulnerability", "injection",
			"authentication", "authorization", "security", "secure",
		},
	},
	{
		ID:          "frontend",
		DisplayName: "Frontend Architect",
		Description: "components, state management, UX patterns",
		Keywords: []string{
			"react", "vue", "angular", "svelte", "component", "css", "ui", "ux",
			"form", "modal", "page", "render", "state", "redux", "hook", "hooks",
			"tailwind", "styled", "responsive", "accessibility", "a11y",
			"frontend", "front-end", "browser", "dom", "jsx", "tsx",
			"nextjs", "next.js", "nuxt", "gatsby", "remix", "button",
			"dropdown", "navigation", "sidebar", "dashboard", "layout",
		},
	},
	{
		ID:          "data",
		DisplayName: "Data Architect",
		Description: "schema design, queries, indexes, consistency",
		Keywords: []string{
			"database", "schema", "migration", "query", "sql", "table", "index",
			"redis", "postgres", "postgresql", "mysql", "mongodb", "dynamodb",
			"orm", "prisma", "drizzle", "sequelize", "typeorm", "knex",
			"foreign key", "primary key", "relation", "join", "aggregate",
			"transaction", "acid", "nosql", "document", "collection",
			"backup", "replication", "sharding", "partition",
		},
	},
	{
		ID:          "api",
		DisplayName: "API Designer",
		Description: "contract design, versioning, error handling",
		Keywords: []string{
			"endpoint", "rest", "graphql", "route", "request", "response",
			"http", "webhook", "api", "grpc", "rpc", "openapi", "swagger",
			"versioning", "pagination", "filter", "sort", "status code",
			"get", "post", "put", "patch", "delete", "crud", "resource",
			"trpc", "hono", "express", "fastapi", "flask", "middleware",
		},
	},
	{
		ID:          "devops",
		DisplayName: "DevOps Engineer",
		Description: "infrastructure, deployment, observability",
		Keywords: []string{
			"deploy", "ci/cd", "cicd", "docker", "k8s", "kubernetes",
			"pipeline", "terraform", "aws", "gcp", "azure", "monitoring",
			"cloudflare", "vercel", "netlify", "heroku", "railway",
			"github actions", "gitlab", "jenkins", "circleci", "argocd",
			"helm", "ansible", "pulumi", "infrastructure", "iac",
			"container", "pod", "service mesh", "istio", "envoy",
			"logging", "metrics", "alerting", "prometheus", "grafana",
			"datadog", "newrelic", "sentry", "observability",
		},
	},
	{
		ID:          "performance",
		DisplayName: "Performance Engineer",
		Description: "bottlenecks, caching, optimization strategies",
		Keywords: []string{
			"cache", "caching", "optimize", "optimization", "latency",
			"throughput", "scale", "scaling", "load", "memory", "cpu",
			"performance", "benchmark", "profiling", "bottleneck",
			"concurrent", "concurrency", "parallel", "async", "queue",
			"rate limit", "throttle", "debounce", "lazy", "eager",
			"memoize", "memoization", "cdn", "edge", "prefetch",
			"bundle", "minify", "compress", "gzip", "brotli",
		},
	},
}

// ByID returns the profile with the given ID.
func ByID(id string) (Profile, bool) {
	for _, p := range Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// IDs returns all profile IDs in routing order.
func IDs() []string {
	ids := make([]string, len(Profiles))
	for i, p := range Profiles {
		ids[i] = p.ID
	}
	return ids
}

// DisplayName returns the display name for a profile ID, falling back to
// the ID itself for unknown profiles.
func DisplayName(id string) string {
	if p, ok := ByID(id); ok {
		return p.DisplayName
	}
	if id == GenericID {
		return GenericDisplayName
	}
	return id
}
