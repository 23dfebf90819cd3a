// Package nlp normalizes free-text skill names so that "PostgreSQL", "postgres"
// and "Postgres " compare equal.
package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// aliases groups names that denote the same skill.
var aliases = [][]string{
	{"postgres", "postgresql"},
	{"k8s", "kubernetes"},
	{"go", "golang"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"rest", "rest api"},
	{"ci cd", "cicd"},
	{"react", "react js", "reactjs"},
	{"node", "node js", "nodejs"},
}

var aliasIndex = func() map[string][]string {
	m := make(map[string][]string)
	for _, group := range aliases {
		for _, name := range group {
			m[name] = group
		}
	}
	return m
}()

// NormalizeSkill lowercases, replaces punctuation with spaces and collapses runs.
// "+" and "#" survive so that C++ and C# stay distinct from C.
func NormalizeSkill(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SkillVariants returns the normalized name followed by its known aliases.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	for _, alt := range aliasIndex[base] {
		if alt != base {
			out = append(out, alt)
		}
	}
	return out
}
