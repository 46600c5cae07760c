// Package gherkin renders parsed document structures as Gherkin feature files.
package gherkin

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/parser"
)

// MaxScenarioName is the longest scenario name, in runes, derived from a sentence.
const MaxScenarioName = 80

const featureTemplate = `Feature: {{ .Name }}
  {{ .Description }}
{{- range .Scenarios }}

  Scenario: {{ .Name }}
{{- range .Steps }}
    {{ .Keyword }} {{ .Text }}
{{- end }}
{{- end }}
`

var (
	featureTmpl = template.Must(template.New("feature").Parse(featureTemplate))

	clauseKeyword = regexp.MustCompile(`(?i)\b(given|when|if|then|and)\b`)

	errNoStructure = &apperr.GenerationError{Message: "no structure to render"}
)

// Feature is the data rendered into a feature file.
type Feature struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Scenarios   []Scenario `json:"scenarios"`
}

type Scenario struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

type Step struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

// Generator builds feature files. It is safe for concurrent use.
type Generator struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Generator {
	return &Generator{catalog: cat}
}

// DefaultFeatureName returns the feature name used when the caller supplies none.
func DefaultFeatureName(t doctype.Type) string {
	switch t {
	case doctype.BRD:
		return "Business Requirements"
	case doctype.FRD:
		return "Functional Requirements"
	case doctype.UserStory:
		return "User Story Implementation"
	case doctype.TestCase:
		return "Test Case Execution"
	}
	return ""
}

func description(t doctype.Type) string {
	switch t {
	case doctype.BRD:
		return "Scenarios derived from business requirements"
	case doctype.FRD:
		return "Scenarios derived from functional requirements"
	case doctype.UserStory:
		return "Implementation of user stories"
	case doctype.TestCase:
		return "Automated test case execution"
	}
	return ""
}

// Generate renders s as a feature file named featureName, or the type's default
// name when featureName is blank.
func (g *Generator) Generate(s parser.Structure, featureName string) (string, error) {
	f, err := g.Feature(s, featureName)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := featureTmpl.Execute(&sb, f); err != nil {
		return "", &apperr.GenerationError{DocType: s.Type().String(), Message: "render feature", Cause: err}
	}
	return sb.String(), nil
}

// Feature builds the feature model for s without rendering it.
func (g *Generator) Feature(s parser.Structure, featureName string) (*Feature, error) {
	var (
		t         doctype.Type
		scenarios []Scenario
		err       error
	)
	switch v := s.(type) {
	case *parser.Requirements:
		if v == nil {
			return nil, errNoStructure
		}
		t = v.DocType
		if !t.IsRequirements() {
			return nil, &apperr.InvalidArgumentError{
				Field:  "doc_type",
				Value:  t.String(),
				Reason: "requirements structure needs BRD or FRD",
				Valid:  doctype.Literals(),
			}
		}
		scenarios = g.requirementScenarios(v)
	case *parser.UserStories:
		if v == nil {
			return nil, errNoStructure
		}
		t = doctype.UserStory
		scenarios, err = storyScenarios(v)
	case *parser.TestCase:
		if v == nil {
			return nil, errNoStructure
		}
		t = doctype.TestCase
		scenarios = []Scenario{testCaseScenario(v)}
	default:
		return nil, errNoStructure
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(featureName)
	if name == "" {
		name = DefaultFeatureName(t)
	}
	return &Feature{Name: name, Description: description(t), Scenarios: scenarios}, nil
}

func storyScenarios(us *parser.UserStories) ([]Scenario, error) {
	out := make([]Scenario, 0, len(us.Stories))
	for i, story := range us.Stories {
		role, want, benefit := strings.TrimSpace(story.Role), strings.TrimSpace(story.Want), strings.TrimSpace(story.Benefit)
		if role == "" || want == "" || benefit == "" {
			return nil, &apperr.GenerationError{
				DocType: doctype.UserStory.String(),
				Message: fmt.Sprintf("story %d: role, want and benefit are required", i),
			}
		}
		out = append(out, Scenario{
			Name: ScenarioName("Implement " + want),
			Steps: []Step{
				{Keyword: "Given", Text: "I am a " + role},
				{Keyword: "When", Text: "I " + want},
				{Keyword: "Then", Text: "I should " + benefit},
			},
		})
	}
	return out, nil
}

func testCaseScenario(tc *parser.TestCase) Scenario {
	sc := Scenario{Name: "Execute test case"}
	for _, p := range tc.Preconditions {
		sc.Steps = append(sc.Steps, Step{Keyword: "Given", Text: p})
	}
	for _, s := range tc.Steps {
		sc.Steps = append(sc.Steps, Step{Keyword: "When", Text: s})
	}
	for _, r := range tc.ExpectedResults {
		sc.Steps = append(sc.Steps, Step{Keyword: "Then", Text: r})
	}
	return sc
}

// requirementScenarios emits one scenario per scenario sentence, or one per
// requirement when the document has no scenario sentences.
func (g *Generator) requirementScenarios(r *parser.Requirements) []Scenario {
	var out []Scenario
	if len(r.Scenarios) > 0 {
		for _, sent := range r.Scenarios {
			if steps := clauseSteps(sent); len(steps) > 0 {
				out = append(out, Scenario{Name: ScenarioName(sent), Steps: steps})
			}
		}
		return out
	}

	cues := g.catalog.Rules(r.DocType).Requirement
	for _, sent := range r.Requirements {
		body := trimClause(sent)
		if body == "" {
			continue
		}
		out = append(out, Scenario{
			Name: ScenarioName(sent),
			Steps: []Step{
				{Keyword: "Given", Text: "the context of " + requirementSubject(body, cues)},
				{Keyword: "When", Text: "the requirement is exercised"},
				{Keyword: "Then", Text: lowerFirst(body)},
			},
		})
	}
	return out
}

// clauseSteps splits a conditional sentence at its given/when/if/then/and
// keywords. Text before the first keyword becomes a Given step.
func clauseSteps(sent string) []Step {
	var steps []Step
	add := func(keyword, text string) {
		if text = trimClause(text); text == "" {
			return
		}
		if keyword == "And" && len(steps) == 0 {
			keyword = "Given"
		}
		steps = append(steps, Step{Keyword: keyword, Text: text})
	}

	locs := clauseKeyword.FindAllStringSubmatchIndex(sent, -1)
	if len(locs) == 0 {
		add("Given", sent)
		return steps
	}
	add("Given", sent[:locs[0][0]])
	for i, loc := range locs {
		end := len(sent)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		add(clauseKeywordName(sent[loc[2]:loc[3]]), sent[loc[1]:end])
	}
	return steps
}

func clauseKeywordName(word string) string {
	switch strings.ToLower(word) {
	case "given":
		return "Given"
	case "when", "if":
		return "When"
	case "then":
		return "Then"
	default:
		return "And"
	}
}

// requirementSubject returns the text before the first requirement cue.
func requirementSubject(sent string, cues []*regexp.Regexp) string {
	first := -1
	for _, re := range cues {
		if loc := re.FindStringIndex(sent); loc != nil && (first < 0 || loc[0] < first) {
			first = loc[0]
		}
	}
	if first <= 0 {
		return "the system"
	}
	subject := trimClause(sent[:first])
	if subject == "" {
		return "the system"
	}
	return lowerFirst(subject)
}

// ScenarioName turns a sentence into a scenario title: terminal punctuation is
// dropped and the result is cut to MaxScenarioName runes.
func ScenarioName(s string) string {
	s = trimClause(strings.Join(strings.Fields(s), " "))
	if utf8.RuneCountInString(s) <= MaxScenarioName {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:MaxScenarioName]))
}

func trimClause(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".,;:!? ")
}

// lowerFirst lower-cases a leading capital unless the word looks like an acronym.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	if next, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
