// Package catalog holds the read-only regular-expression rule sets used to classify
// and parse requirements documents.
//
// The catalog is declared in YAML and compiled once at startup. A malformed catalog
// is a configuration error: Default and MustParse panic, Parse and Load return it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/bddgen/internal/doctype"
)

//go:embed catalog.yaml
var embedded []byte

// Rules are the compiled patterns for one document type, grouped by role.
// Slices are shared and must not be modified.
type Rules struct {
	Identify []*regexp.Regexp

	// BRD and FRD.
	Requirement []*regexp.Regexp
	Actor       []*regexp.Regexp
	Scenario    []*regexp.Regexp

	// User Story.
	Shape    []*regexp.Regexp
	Criteria []*regexp.Regexp

	// Test Case section headers and line prefixes.
	Precondition []*regexp.Regexp
	Step         []*regexp.Regexp
	Expected     []*regexp.Regexp
	Prefix       []*regexp.Regexp
}

// Catalog maps every document type to its rules.
type Catalog struct {
	order []doctype.Type
	rules map[doctype.Type]*Rules
}

type entry struct {
	Type         string   `yaml:"type"`
	Identify     []string `yaml:"identify"`
	Requirement  []string `yaml:"requirement"`
	Actor        []string `yaml:"actor"`
	Scenario     []string `yaml:"scenario"`
	Shape        []string `yaml:"shape"`
	Criteria     []string `yaml:"criteria"`
	Precondition []string `yaml:"precondition"`
	Step         []string `yaml:"step"`
	Expected     []string `yaml:"expected"`
	Prefix       []string `yaml:"prefix"`
}

type document struct {
	Types []entry `yaml:"types"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustParse(embedded)
})

// Default returns the embedded catalog, compiling it on first use.
func Default() *Catalog {
	return defaultCatalog()
}

// Load reads and compiles a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// MustParse is like Parse but panics on error.
func MustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse compiles a YAML catalog. Every document type must be declared exactly once.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{rules: make(map[doctype.Type]*Rules, len(doctype.All))}
	for i, e := range doc.Types {
		t, err := doctype.Parse(e.Type)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.rules[t]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate type %s", i, t)
		}
		r, err := compileEntry(t, e)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", t, err)
		}
		c.rules[t] = r
		c.order = append(c.order, t)
	}

	for _, t := range doctype.All {
		if _, ok := c.rules[t]; !ok {
			return nil, fmt.Errorf("catalog: missing type %s", t)
		}
	}
	return c, nil
}

// Order returns the document types in declaration order.
func (c *Catalog) Order() []doctype.Type {
	return slices.Clone(c.order)
}

// Rules returns the compiled rules for t, or nil if t is not a declared type.
func (c *Catalog) Rules(t doctype.Type) *Rules {
	return c.rules[t]
}

func compileEntry(t doctype.Type, e entry) (*Rules, error) {
	var (
		r   Rules
		err error
	)
	groups := []struct {
		role     string
		src      []string
		dst      *[]*regexp.Regexp
		required bool
	}{
		{"identify", e.Identify, &r.Identify, true},
		{"requirement", e.Requirement, &r.Requirement, t.IsRequirements()},
		{"actor", e.Actor, &r.Actor, t.IsRequirements()},
		{"scenario", e.Scenario, &r.Scenario, t.IsRequirements()},
		{"shape", e.Shape, &r.Shape, t == doctype.UserStory},
		{"criteria", e.Criteria, &r.Criteria, t == doctype.UserStory},
		{"precondition", e.Precondition, &r.Precondition, t == doctype.TestCase},
		{"step", e.Step, &r.Step, t == doctype.TestCase},
		{"expected", e.Expected, &r.Expected, t == doctype.TestCase},
		{"prefix", e.Prefix, &r.Prefix, false},
	}
	for _, g := range groups {
		if g.required && len(g.src) == 0 {
			return nil, fmt.Errorf("%s patterns are required", g.role)
		}
		if *g.dst, err = compileAll(g.role, g.src); err != nil {
			return nil, err
		}
	}

	for _, re := range r.Shape {
		for _, name := range []string{"role", "want", "benefit"} {
			if re.SubexpIndex(name) < 0 {
				return nil, fmt.Errorf("shape pattern %q lacks group %q", re.String(), name)
			}
		}
	}
	return &r, nil
}

func compileAll(role string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%s pattern %q: %w", role, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
