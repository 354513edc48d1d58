package utils

import (
	"regexp"
	"strings"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a display name into a lower-case identifier.
// "Defect Type" -> "defect_type"
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
