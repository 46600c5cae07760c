package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/bddgen/internal/doctype"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Same(t, c, Default(), "default catalog is compiled once")
	assert.Equal(t, doctype.All, c.Order())

	for _, dt := range doctype.All {
		r := c.Rules(dt)
		require.NotNil(t, r, dt.String())
		assert.NotEmpty(t, r.Identify, dt.String())
	}

	brd, frd := c.Rules(doctype.BRD), c.Rules(doctype.FRD)
	assert.Len(t, frd.Requirement, len(brd.Requirement), "FRD shares BRD requirement cues")
	assert.NotEmpty(t, c.Rules(doctype.UserStory).Shape)
	assert.NotEmpty(t, c.Rules(doctype.TestCase).Prefix)
}

func TestOrderIsCopy(t *testing.T) {
	c := Default()
	order := c.Order()
	order[0] = doctype.TestCase
	assert.Equal(t, doctype.BRD, c.Order()[0])
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	r := Default().Rules(doctype.BRD)
	assert.True(t, r.Identify[0].MatchString("BUSINESS REQUIREMENTS DOCUMENT"))
	assert.True(t, r.Requirement[0].MatchString("The System MUST PROVIDE audit logs"))
}

func TestUserStoryShape(t *testing.T) {
	re := Default().Rules(doctype.UserStory).Shape[0]
	m := re.FindStringSubmatch("As a shopper, I want to save my cart so that I can buy later.")
	require.NotNil(t, m)
	assert.Equal(t, "shopper", m[re.SubexpIndex("role")])
	assert.Equal(t, "save my cart", m[re.SubexpIndex("want")])
	assert.Equal(t, "I can buy later.", m[re.SubexpIndex("benefit")])

	assert.False(t, re.MatchString("Users want to save carts so that they can buy later"))
}

func TestTestCaseHeaders(t *testing.T) {
	r := Default().Rules(doctype.TestCase)
	tests := []struct {
		line    string
		content string
	}{
		{"Precondition: user logged in", "user logged in"},
		{"Pre-conditions:", ""},
		{"Prerequisites: a clean database", "a clean database"},
		{"Given: user logged in", "user logged in"},
		{"Before the test: reset cache", "reset cache"},
	}
	for _, tt := range tests {
		matched := false
		for _, re := range r.Precondition {
			if m := re.FindStringSubmatch(tt.line); m != nil {
				assert.Equal(t, tt.content, m[re.SubexpIndex("content")], tt.line)
				matched = true
				break
			}
		}
		assert.True(t, matched, tt.line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "types: ["},
		{"unknown type", "types:\n  - type: Use Case\n    identify: ['x']\n"},
		{"missing types", "types:\n  - type: BRD\n    identify: ['x']\n    requirement: ['x']\n    actor: ['x']\n    scenario: ['x']\n"},
		{"bad pattern", "types:\n  - type: BRD\n    identify: ['(']\n"},
		{"missing role", "types:\n  - type: BRD\n    identify: ['x']\n"},
		{"duplicate type", "types:\n  - type: BRD\n    identify: ['x']\n    requirement: ['x']\n    actor: ['x']\n    scenario: ['x']\n  - type: BRD\n    identify: ['y']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestShapeRequiresNamedGroups(t *testing.T) {
	data, err := os.ReadFile("catalog.yaml")
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doctype.All, c.Order())

	_, err = Parse([]byte(`types:
  - type: User Story
    identify: ['as a']
    shape: ['^as a (?P<role>\w+)']
    criteria: ['given']
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want")
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse([]byte("types: [")) })
}

func TestLoad(t *testing.T) {
	data, err := os.ReadFile("catalog.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doctype.All, c.Order())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
