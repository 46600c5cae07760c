package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/segment"
)

func newParser() *Parser {
	return New(catalog.Default(), segment.Default())
}

func TestParseTestCase(t *testing.T) {
	s, err := newParser().Parse("Precondition: user logged in\nStep 1: click submit\nExpected: confirmation shown", doctype.TestCase)
	require.NoError(t, err)

	tc, ok := s.(*TestCase)
	require.True(t, ok)
	assert.Equal(t, []string{"user logged in"}, tc.Preconditions)
	assert.Equal(t, []string{"click submit"}, tc.Steps)
	assert.Equal(t, []string{"confirmation shown"}, tc.ExpectedResults)
	assert.Equal(t, doctype.TestCase, s.Type())
}

func TestParseTestCaseHeaderVariants(t *testing.T) {
	body := "\nuser exists\ncart is empty\nSteps:\n1. add item\n2. checkout\nExpected Results:\norder created"
	p := newParser()

	var first *TestCase
	for _, header := range []string{"Precondition:", "Prerequisites:", "Given:", "Pre-conditions:"} {
		s, err := p.Parse("Test Case: Checkout\n"+header+body, doctype.TestCase)
		require.NoError(t, err)
		tc := s.(*TestCase)
		if first == nil {
			first = tc
			continue
		}
		assert.Equal(t, first, tc, header)
	}

	assert.Equal(t, []string{"user exists", "cart is empty"}, first.Preconditions)
	assert.Equal(t, []string{"add item", "checkout"}, first.Steps)
	assert.Equal(t, []string{"order created"}, first.ExpectedResults)
}

func TestParseTestCaseHeaderForms(t *testing.T) {
	text := strings.Join([]string{
		"Login smoke test",
		"Before testing: clear the cache",
		"Given the user is on the login page",
		"Step 2 - enter the name",
		"Action 3) press enter",
		"When the form is submitted",
		"Then the dashboard opens",
		"Verify the greeting",
		"Should show the last login time",
		"Validate: audit entry written",
	}, "\n")

	s, err := newParser().Parse(text, doctype.TestCase)
	require.NoError(t, err)
	tc := s.(*TestCase)
	assert.Equal(t, []string{"clear the cache", "the user is on the login page"}, tc.Preconditions)
	assert.Equal(t, []string{"enter the name", "press enter", "the form is submitted"}, tc.Steps)
	assert.Equal(t, []string{
		"the dashboard opens",
		"Verify the greeting",
		"Should show the last login time",
		"audit entry written",
	}, tc.ExpectedResults)
}

func TestParseTestCaseBodyLinesFollowSection(t *testing.T) {
	text := "Test Steps:\nopen the cart\n3. remove an item\nExpected Result\nthe total updates"
	s, err := newParser().Parse(text, doctype.TestCase)
	require.NoError(t, err)
	tc := s.(*TestCase)
	assert.Empty(t, tc.Preconditions)
	assert.Equal(t, []string{"open the cart", "remove an item"}, tc.Steps)
	assert.Equal(t, []string{"the total updates"}, tc.ExpectedResults)
}

func TestParseRequirements(t *testing.T) {
	text := strings.Join([]string{
		"The user must be able to reset a password.",
		"The System shall log every reset.",
		"Admins need to approve new accounts.",
		"When the password expires then the user must choose a new one.",
		"The USER should have a profile page.",
		"Marketing copy is out of scope.",
	}, "\n")

	for _, dt := range []doctype.Type{doctype.BRD, doctype.FRD} {
		s, err := newParser().Parse(text, dt)
		require.NoError(t, err)
		req, ok := s.(*Requirements)
		require.True(t, ok)

		assert.Equal(t, dt, req.Type())
		assert.Equal(t, []string{
			"The user must be able to reset a password.",
			"The System shall log every reset.",
			"Admins need to approve new accounts.",
			"The USER should have a profile page.",
		}, req.Requirements)
		assert.Equal(t, []string{"user", "system", "admin"}, req.Actors)
		assert.Equal(t, []string{"When the password expires then the user must choose a new one."}, req.Scenarios)
	}
}

func TestParseUserStories(t *testing.T) {
	text := strings.Join([]string{
		"As a shopper, I want to save my cart so that I can buy later.",
		"As an admin I need to export orders so that finance can reconcile",
		"Acceptance Criteria",
		"Given a saved cart",
		"When the shopper returns",
		"Then the cart is restored",
		"Ensure carts expire after 30 days",
	}, "\n")

	s, err := newParser().Parse(text, doctype.UserStory)
	require.NoError(t, err)
	us, ok := s.(*UserStories)
	require.True(t, ok)
	require.Len(t, us.Stories, 2)

	first := us.Stories[0]
	assert.Equal(t, "shopper", first.Role)
	assert.Equal(t, "save my cart", first.Want)
	assert.Equal(t, "I can buy later", first.Benefit)

	second := us.Stories[1]
	assert.Equal(t, "admin", second.Role)
	assert.Equal(t, "export orders", second.Want)
	assert.Equal(t, "finance can reconcile", second.Benefit)

	want := []Criterion{
		{Kind: KindGiven, Text: "Given a saved cart"},
		{Kind: KindWhen, Text: "When the shopper returns"},
		{Kind: KindThen, Text: "Then the cart is restored"},
		{Kind: KindVerification, Text: "Ensure carts expire after 30 days"},
	}
	assert.Equal(t, want, first.AcceptanceCriteria)
	assert.Equal(t, want, second.AcceptanceCriteria)
}

func TestParseUserStoryRoleVariants(t *testing.T) {
	s, err := newParser().Parse("As the owner I should be able to close the store so that nobody orders at night!", doctype.UserStory)
	require.NoError(t, err)
	us := s.(*UserStories)
	require.Len(t, us.Stories, 1)
	assert.Equal(t, "owner", us.Stories[0].Role)
	assert.Equal(t, "close the store", us.Stories[0].Want)
	assert.Equal(t, "nobody orders at night", us.Stories[0].Benefit)
	assert.Empty(t, us.Stories[0].AcceptanceCriteria)
}

func TestParseUserStoryLinesAreNotCriteria(t *testing.T) {
	text := "As a clerk I want to scan items so that I can check stock\nVerify the count updates"
	s, err := newParser().Parse(text, doctype.UserStory)
	require.NoError(t, err)
	us := s.(*UserStories)
	require.Len(t, us.Stories, 1)
	assert.Equal(t, []Criterion{
		{Kind: KindVerification, Text: "Verify the count updates"},
	}, us.Stories[0].AcceptanceCriteria)
}

func TestParseStrict(t *testing.T) {
	p := newParser()

	_, err := p.ParseStrict("Just some meeting notes", doctype.UserStory)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))

	s, err := p.ParseStrict("As a user I want to login so that I can access my account", doctype.UserStory)
	require.NoError(t, err)
	assert.Len(t, s.(*UserStories).Stories, 1)

	_, err = p.ParseStrict("", doctype.TestCase)
	assert.NoError(t, err)
}

func TestParseEmptyText(t *testing.T) {
	for _, dt := range doctype.All {
		s, err := newParser().Parse("", dt)
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, s.Type())
	}

	s, _ := newParser().Parse("", doctype.UserStory)
	assert.Empty(t, s.(*UserStories).Stories)
}

func TestParseUnknownType(t *testing.T) {
	_, err := newParser().Parse("anything", doctype.Type(99))
	var invalid *apperr.InvalidArgumentError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"BRD", "FRD", "User Story", "Test Case"}, invalid.Valid)
}

func TestStructureJSON(t *testing.T) {
	s, err := newParser().Parse("Precondition: user logged in", doctype.TestCase)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"preconditions":["user logged in"],"steps":[],"expected_results":[]}`, string(data))

	req, err := newParser().Parse("The system must support exports.", doctype.FRD)
	require.NoError(t, err)
	data, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"doc_type":"FRD","requirements":["The system must support exports."],"actors":["system"],"scenarios":[]}`, string(data))
}
