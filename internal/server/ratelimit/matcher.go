package ratelimit

import "strings"

// MatchPattern reports whether method and path match a "METHOD /a/{param}/b"
// pattern. A {param} segment matches any single non-empty segment.
func MatchPattern(pattern, method, path string) bool {
	patMethod, patPath, ok := strings.Cut(pattern, " ")
	if !ok || patMethod != method {
		return false
	}

	want := splitPath(patPath)
	got := splitPath(path)
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
