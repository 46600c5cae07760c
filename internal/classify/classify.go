// Package classify scores how closely a text resembles each document type.
package classify

import (
	"regexp"
	"strings"

	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/segment"
)

// Threshold is the minimum score a type needs to be reported as the best guess.
const Threshold = 0.3

var (
	storyOpener  = regexp.MustCompile(`(?i)\bas\s+an?\b`)
	gherkinLead  = regexp.MustCompile(`(?i)^(?:given|when|then)\b`)
	numberedItem = regexp.MustCompile(`^\d+\.`)
)

// Scores holds one confidence score per document type. Scores are not normalized
// and may exceed 1.
type Scores map[doctype.Type]float64

// Best returns the highest scoring type, breaking ties by order. It reports false
// when the best score is below Threshold.
func (s Scores) Best(order []doctype.Type) (doctype.Type, bool) {
	var (
		best  doctype.Type
		score = -1.0
	)
	for _, t := range order {
		if v := s[t]; v > score {
			best, score = t, v
		}
	}
	if score < Threshold {
		return 0, false
	}
	return best, true
}

// Result is the outcome of analyzing a document.
type Result struct {
	Scores Scores        `json:"scores"`
	Best   *doctype.Type `json:"best_guess"`
}

// Identifier scores texts against a pattern catalog.
type Identifier struct {
	catalog   *catalog.Catalog
	segmenter *segment.Segmenter
}

func New(cat *catalog.Catalog, seg *segment.Segmenter) *Identifier {
	return &Identifier{catalog: cat, segmenter: seg}
}

// Identify returns a score for every document type. Each score is the fraction of
// the type's identification patterns found in the text plus structural bonuses.
func (id *Identifier) Identify(text string) Scores {
	lower := strings.ToLower(text)
	scores := make(Scores, len(doctype.All))

	for _, t := range id.catalog.Order() {
		patterns := id.catalog.Rules(t).Identify
		matches := 0
		for _, re := range patterns {
			if re.MatchString(lower) {
				matches++
			}
		}
		scores[t] = float64(matches) / float64(len(patterns))
	}

	var opener, lead, numbered bool
	for _, sent := range id.segmenter.Sentences(text) {
		opener = opener || storyOpener.MatchString(sent)
		lead = lead || gherkinLead.MatchString(sent)
		numbered = numbered || numberedItem.MatchString(sent)
	}
	if opener {
		scores[doctype.UserStory] += 0.3
	}
	if lead {
		scores[doctype.UserStory] += 0.2
	}
	if numbered {
		scores[doctype.TestCase] += 0.2
	}
	if strings.Contains(lower, "scope") && strings.Contains(lower, "objective") {
		scores[doctype.BRD] += 0.2
	}
	if strings.Contains(lower, "system shall") || strings.Contains(lower, "must have") {
		scores[doctype.FRD] += 0.2
	}
	return scores
}

// Classify returns the most likely document type, or false when no type reaches
// Threshold.
func (id *Identifier) Classify(text string) (doctype.Type, bool) {
	return id.Identify(text).Best(id.catalog.Order())
}

// Analyze returns the scores together with the best guess, if any.
func (id *Identifier) Analyze(text string) Result {
	scores := id.Identify(text)
	res := Result{Scores: scores}
	if t, ok := scores.Best(id.catalog.Order()); ok {
		res.Best = &t
	}
	return res
}
