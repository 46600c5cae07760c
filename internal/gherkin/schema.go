package gherkin

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/parser"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[doctype.Type]string{
	doctype.BRD:       "schemas/requirements.json",
	doctype.FRD:       "schemas/requirements.json",
	doctype.UserStory: "schemas/user_story.json",
	doctype.TestCase:  "schemas/test_case.json",
}

var compiledSchemas = sync.OnceValue(func() map[doctype.Type]*gojsonschema.Schema {
	out := make(map[doctype.Type]*gojsonschema.Schema, len(schemaFiles))
	for t, name := range schemaFiles {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("read %s: %v", name, err))
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			panic(fmt.Sprintf("compile %s: %v", name, err))
		}
		out[t] = s
	}
	return out
})

// DecodeStructure decodes structural data received from a caller for document
// type t. The data is checked against the type's JSON Schema first; violations
// are reported as a GenerationError listing every offending field.
func DecodeStructure(t doctype.Type, data []byte) (parser.Structure, error) {
	schema, ok := compiledSchemas()[t]
	if !ok {
		return nil, &apperr.InvalidArgumentError{
			Field: "doc_type",
			Value: t.String(),
			Valid: doctype.Literals(),
		}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &apperr.GenerationError{DocType: t.String(), Message: "malformed structural data", Cause: err}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, field+": "+desc.Description())
		}
		return nil, &apperr.GenerationError{
			DocType: t.String(),
			Message: "malformed structural data: " + strings.Join(problems, "; "),
		}
	}

	var s parser.Structure
	switch t {
	case doctype.BRD, doctype.FRD:
		s = &parser.Requirements{}
	case doctype.UserStory:
		s = &parser.UserStories{}
	case doctype.TestCase:
		s = &parser.TestCase{}
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, &apperr.GenerationError{DocType: t.String(), Message: "malformed structural data", Cause: err}
	}
	if r, ok := s.(*parser.Requirements); ok {
		r.DocType = t
	}
	return s, nil
}
