// Package parser extracts type-specific structure from document text.
package parser

import (
	"regexp"
	"slices"
	"strings"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/segment"
)

var criterionLead = regexp.MustCompile(`(?i)^(given|when|then)\b`)

// Parser applies catalog rules to document text. It holds no mutable state.
type Parser struct {
	catalog   *catalog.Catalog
	segmenter *segment.Segmenter
}

func New(cat *catalog.Catalog, seg *segment.Segmenter) *Parser {
	return &Parser{catalog: cat, segmenter: seg}
}

// Parse extracts the structure of text for document type t. Text that matches
// nothing yields an empty structure, not an error.
func (p *Parser) Parse(text string, t doctype.Type) (Structure, error) {
	switch t {
	case doctype.BRD, doctype.FRD:
		return p.parseRequirements(text, t), nil
	case doctype.UserStory:
		return p.parseUserStories(text), nil
	case doctype.TestCase:
		return p.parseTestCase(text), nil
	default:
		return nil, &apperr.InvalidArgumentError{
			Field: "doc_type",
			Value: t.String(),
			Valid: doctype.Literals(),
		}
	}
}

// ParseStrict is like Parse but rejects user-story documents in which no line
// has the story shape.
func (p *Parser) ParseStrict(text string, t doctype.Type) (Structure, error) {
	s, err := p.Parse(text, t)
	if err != nil {
		return nil, err
	}
	if us, ok := s.(*UserStories); ok && len(us.Stories) == 0 {
		return nil, &apperr.ValidationError{
			Message: `no line matches "As a <role>, I want to <goal> so that <benefit>"`,
		}
	}
	return s, nil
}

func (p *Parser) parseRequirements(text string, t doctype.Type) *Requirements {
	rules := p.catalog.Rules(t)
	out := &Requirements{
		DocType:      t,
		Requirements: []string{},
		Actors:       []string{},
		Scenarios:    []string{},
	}
	seen := make(map[string]bool)

	for _, sent := range p.segmenter.Sentences(text) {
		if matchAny(rules.Requirement, sent) {
			out.Requirements = append(out.Requirements, sent)
			for _, re := range rules.Actor {
				for _, m := range re.FindAllString(sent, -1) {
					actor := normalizeActor(m)
					if actor != "" && !seen[actor] {
						seen[actor] = true
						out.Actors = append(out.Actors, actor)
					}
				}
			}
		}
		if matchAny(rules.Scenario, sent) {
			out.Scenarios = append(out.Scenarios, sent)
		}
	}
	return out
}

// normalizeActor folds "The Users" and "user" into the same actor.
func normalizeActor(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.TrimPrefix(s, "the ")
	return strings.TrimSuffix(s, "s")
}

func (p *Parser) parseUserStories(text string) *UserStories {
	rules := p.catalog.Rules(doctype.UserStory)
	criteria := p.acceptanceCriteria(text, rules)

	out := &UserStories{Stories: []Story{}}
	for _, line := range segment.Lines(text) {
		for _, re := range rules.Shape {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			out.Stories = append(out.Stories, Story{
				Role:               strings.TrimRight(strings.TrimSpace(m[re.SubexpIndex("role")]), ","),
				Want:               strings.TrimSpace(m[re.SubexpIndex("want")]),
				Benefit:            strings.TrimRight(strings.TrimSpace(m[re.SubexpIndex("benefit")]), ".!?;: "),
				AcceptanceCriteria: slices.Clone(criteria),
			})
			break
		}
	}
	return out
}

// acceptanceCriteria collects every sentence of the document that mentions a
// criteria keyword, skipping the story statements themselves.
// Story lines are excluded because "so that I can check..." would otherwise
// count as a criterion of every story.
func (p *Parser) acceptanceCriteria(text string, rules *catalog.Rules) []Criterion {
	criteria := []Criterion{}
	for _, sent := range p.segmenter.Sentences(text) {
		if !matchAny(rules.Criteria, sent) || matchAny(rules.Shape, sent) {
			continue
		}
		kind := KindVerification
		if m := criterionLead.FindStringSubmatch(sent); m != nil {
			kind = strings.ToLower(m[1])
		}
		criteria = append(criteria, Criterion{Kind: kind, Text: sent})
	}
	return criteria
}

type section int

const (
	sectionNone section = iota
	sectionPreconditions
	sectionSteps
	sectionExpected
)

func (p *Parser) parseTestCase(text string) *TestCase {
	rules := p.catalog.Rules(doctype.TestCase)
	out := &TestCase{
		Preconditions:   []string{},
		Steps:           []string{},
		ExpectedResults: []string{},
	}

	current := sectionNone
	for _, line := range segment.Lines(text) {
		if content, ok := headerContent(rules.Precondition, line); ok {
			current = sectionPreconditions
			line = content
		} else if content, ok := headerContent(rules.Step, line); ok {
			current = sectionSteps
			line = content
		} else if content, ok := headerContent(rules.Expected, line); ok {
			current = sectionExpected
			line = content
		}

		clean := stripPrefixes(rules.Prefix, line)
		if clean == "" {
			continue
		}
		switch current {
		case sectionPreconditions:
			out.Preconditions = append(out.Preconditions, clean)
		case sectionSteps:
			out.Steps = append(out.Steps, clean)
		case sectionExpected:
			out.ExpectedResults = append(out.ExpectedResults, clean)
		}
	}
	return out
}

// headerContent reports whether line is a section header. The returned content is
// the text after the header label, or the whole line when the pattern captures
// no content group.
func headerContent(patterns []*regexp.Regexp, line string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i := re.SubexpIndex("content"); i >= 0 {
			return strings.TrimSpace(m[i]), true
		}
		return line, true
	}
	return "", false
}

func stripPrefixes(patterns []*regexp.Regexp, line string) string {
	for _, re := range patterns {
		line = re.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(line)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
