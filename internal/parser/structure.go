package parser

import "github.com/dgallion1/bddgen/internal/doctype"

// Structure is the type-specific outline extracted from a document. It is
// implemented by *Requirements, *UserStories and *TestCase only.
type Structure interface {
	Type() doctype.Type
	structure()
}

// Requirements outlines a BRD or FRD.
type Requirements struct {
	DocType      doctype.Type `json:"doc_type"`
	Requirements []string     `json:"requirements"`
	Actors       []string     `json:"actors"`
	Scenarios    []string     `json:"scenarios"`
}

// UserStories holds every story found in a document.
type UserStories struct {
	Stories []Story `json:"stories"`
}

// Story is a single "As a <role>, I want to <want> so that <benefit>" statement.
type Story struct {
	Role               string      `json:"role"`
	Want               string      `json:"want"`
	Benefit            string      `json:"benefit"`
	AcceptanceCriteria []Criterion `json:"acceptance_criteria"`
}

// Criterion kinds.
const (
	KindGiven        = "given"
	KindWhen         = "when"
	KindThen         = "then"
	KindVerification = "verification"
)

// Criterion is an acceptance-criteria sentence.
type Criterion struct {
	Kind string `json:"type"`
	Text string `json:"text"`
}

// TestCase is a manual test case split into its three sections.
type TestCase struct {
	Preconditions   []string `json:"preconditions"`
	Steps           []string `json:"steps"`
	ExpectedResults []string `json:"expected_results"`
}

func (r *Requirements) Type() doctype.Type { return r.DocType }
func (*UserStories) Type() doctype.Type    { return doctype.UserStory }
func (*TestCase) Type() doctype.Type       { return doctype.TestCase }

func (*Requirements) structure() {}
func (*UserStories) structure()  {}
func (*TestCase) structure()     {}
