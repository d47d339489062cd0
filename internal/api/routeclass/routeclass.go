// Package routeclass is the single source of truth for which request paths
// are public. Every guard site imports this table; duplicating the list at
// call sites is how divergent public-route definitions happen.
package routeclass

import "regexp"

// publicPatterns is the fixed, ordered list of public path patterns: home,
// login, email-confirmation callback, static assets, the public article and
// author pages, and the operational probes. Matching is first-match-wins, but
// the patterns are disjoint enough that order does not change outcomes.
var publicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/$`),
	regexp.MustCompile(`^/login$`),
	regexp.MustCompile(`^/confirm(?:/|$)`),
	regexp.MustCompile(`^/auth/error$`),
	regexp.MustCompile(`^/assets/|^/favicon`),
	regexp.MustCompile(`^/articles(?:/.*)?$`),
	regexp.MustCompile(`^/authors(?:/.*)?$`),
	regexp.MustCompile(`^/health(?:/.*)?$`),
	regexp.MustCompile(`^/metrics$`),
}

// IsPublic reports whether the path may be served without a session.
func IsPublic(path string) bool {
	for _, rx := range publicPatterns {
		if rx.MatchString(path) {
			return true
		}
	}
	return false
}
