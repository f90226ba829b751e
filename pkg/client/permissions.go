package client

import "sort"

// featureRoles is the single source of truth for which roles may see which
// feature area.
var featureRoles = map[string][]string{
	"dashboard":   {"admin", "teacher", "student", "parent", "vendor"},
	"schools":     {"admin"},
	"students":    {"admin", "teacher"},
	"teachers":    {"admin"},
	"parents":     {"admin", "teacher"},
	"subjects":    {"admin", "teacher"},
	"rooms":       {"admin"},
	"classes":     {"admin", "teacher"},
	"attendance":  {"admin", "teacher", "parent", "student"},
	"assessments": {"admin", "teacher", "parent", "student"},
	"bursaries":   {"admin"},
	"audit-logs":  {"admin"},
	"settings":    {"admin"},
}

// Allowed reports whether any of the given roles may access feature. Unknown
// features are denied.
func Allowed(feature string, roles ...string) bool {
	allowed, ok := featureRoles[feature]
	if !ok {
		return false
	}
	for _, role := range roles {
		for _, a := range allowed {
			if role == a {
				return true
			}
		}
	}
	return false
}

// FeaturesFor lists the features visible to a role, sorted by name.
func FeaturesFor(role string) []string {
	var out []string
	for feature, roles := range featureRoles {
		for _, r := range roles {
			if r == role {
				out = append(out, feature)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
