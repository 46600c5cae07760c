package gherkin

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun   = regexp.MustCompile(`-+`)
	maxSlugLn = 50
)

// FileName converts a feature name to a file-system safe ".feature" file name.
func FileName(featureName string) string {
	s := strings.ToLower(strings.TrimSpace(featureName))
	s = nonSlug.ReplaceAllString(s, "-")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLn {
		s = strings.TrimRight(s[:maxSlugLn], "-")
	}
	if s == "" {
		s = "generated"
	}
	return s + ".feature"
}
