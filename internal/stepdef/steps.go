// Package stepdef derives step-definition skeletons from Gherkin feature text.
package stepdef

import (
	"regexp"
	"strings"
	"unicode"
)

// Step is a single Gherkin step line.
type Step struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

var stepKeywords = map[string]bool{
	"Given": true,
	"When":  true,
	"Then":  true,
	"And":   true,
	"But":   true,
}

// ExtractSteps returns the steps of a feature file in order. A step is a line
// whose first word is exactly Given, When, Then, And or But followed by text.
func ExtractSteps(feature string) []Step {
	var steps []Step
	for _, line := range strings.Split(feature, "\n") {
		line = strings.TrimSpace(line)
		i := strings.IndexFunc(line, unicode.IsSpace)
		if i < 0 || !stepKeywords[line[:i]] {
			continue
		}
		text := strings.TrimSpace(line[i:])
		if text == "" {
			continue
		}
		steps = append(steps, Step{Keyword: line[:i], Text: text})
	}
	return steps
}

var (
	nonIdent   = regexp.MustCompile(`[^a-z0-9]+`)
	digitRun   = regexp.MustCompile(`\d+`)
	quotedText = regexp.MustCompile(`"[^"]*"`)
)

// reservedWords holds the Python and JavaScript keywords and literals that are
// not usable as function names once lower-cased.
var reservedWords = map[string]bool{
	// Python
	"and": true, "as": true, "assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
	// JavaScript
	"case": true, "catch": true, "const": true, "debugger": true, "default": true,
	"delete": true, "do": true, "enum": true, "export": true, "extends": true,
	"false": true, "function": true, "implements": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "typeof": true,
	"var": true, "void": true, "arguments": true, "eval": true,
}

// FunctionName converts step text into a snake_case identifier that never starts
// with a digit and is not a reserved word in any target language.
func FunctionName(text string) string {
	name := nonIdent.ReplaceAllString(strings.ToLower(text), "_")
	name = strings.Trim(name, "_")
	switch {
	case name == "":
		return "step"
	case name[0] >= '0' && name[0] <= '9', reservedWords[name]:
		return "step_" + name
	}
	return name
}

const (
	quotedGroup = `"([^"]*)"`
	numberGroup = `(\d+)`
)

// MatchPattern converts step text into an anchored regular expression. Quoted
// strings and digit runs become capture groups; all other text matches literally.
func MatchPattern(text string) string {
	var sb strings.Builder
	sb.WriteString("^")
	rest := text
	for rest != "" {
		loc := quotedText.FindStringIndex(rest)
		if loc == nil {
			writeLiteral(&sb, rest)
			break
		}
		writeLiteral(&sb, rest[:loc[0]])
		sb.WriteString(quotedGroup)
		rest = rest[loc[1]:]
	}
	sb.WriteString("$")
	return sb.String()
}

// writeLiteral escapes s, turning digit runs into capture groups.
func writeLiteral(sb *strings.Builder, s string) {
	last := 0
	for _, loc := range digitRun.FindAllStringIndex(s, -1) {
		sb.WriteString(regexp.QuoteMeta(s[last:loc[0]]))
		sb.WriteString(numberGroup)
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(s[last:]))
}

// ParamCount returns the number of capture groups MatchPattern produces for text.
func ParamCount(pattern string) int {
	return strings.Count(pattern, quotedGroup) + strings.Count(pattern, numberGroup)
}
