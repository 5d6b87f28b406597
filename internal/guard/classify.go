package guard

import "strings"

type Classification int

const (
	AuthenticatedOnly Classification = iota
	Public
	AdminOnly
)

func (c Classification) String() string {
	switch c {
	case Public:
		return "public"
	case AdminOnly:
		return "admin_only"
	default:
		return "authenticated_only"
	}
}

// Rule classifies a path. A prefix rule matches the pattern itself and every
// path below it ("/admin" matches "/admin/settings" but not "/administrator").
type Rule struct {
	Pattern        string
	Prefix         bool
	Classification Classification
}

// Table is a static route classification. Paths no rule matches are
// AuthenticatedOnly.
type Table []Rule

func DefaultTable() Table {
	return Table{
		{Pattern: "/", Classification: Public},
		{Pattern: "/login", Classification: Public},
		{Pattern: "/register", Classification: Public},
		{Pattern: "/products", Prefix: true, Classification: Public},
		{Pattern: "/health", Classification: Public},
		{Pattern: "/api/auth", Prefix: true, Classification: Public},
		{Pattern: "/api/products", Prefix: true, Classification: Public},
		{Pattern: "/api/inventory", Prefix: true, Classification: Public},

		{Pattern: "/admin", Prefix: true, Classification: AdminOnly},
		{Pattern: "/admin-dashboard", Prefix: true, Classification: AdminOnly},
		{Pattern: "/api/admin", Prefix: true, Classification: AdminOnly},
	}
}

// Classify returns the classification of path. Exact rules take precedence,
// then the longest matching prefix.
func (t Table) Classify(path string) Classification {
	path = cleanPath(path)

	best := -1
	result := AuthenticatedOnly
	for _, r := range t {
		if !r.Prefix {
			if r.Pattern == path {
				return r.Classification
			}
			continue
		}
		if matchPrefix(r.Pattern, path) && len(r.Pattern) > best {
			best = len(r.Pattern)
			result = r.Classification
		}
	}
	return result
}

func matchPrefix(pattern, path string) bool {
	if path == pattern {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+"/")
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
