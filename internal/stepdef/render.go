package stepdef

import (
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/dgallion1/bddgen/internal/apperr"
)

// Result is a rendered step-definition file together with the data it was
// rendered from.
type Result struct {
	Language    string       `json:"programming_language"`
	Framework   string       `json:"framework"`
	Code        string       `json:"step_definitions"`
	Imports     []string     `json:"imports"`
	Setup       string       `json:"setup,omitempty"`
	Definitions []Definition `json:"definitions"`
	Duplicates  []Duplicate  `json:"duplicates"`
}

type target struct {
	frameworks []string // first entry is the default
	imports    []string
	setup      string
	tmpl       *template.Template
}

const pythonTemplate = `{{ join .Imports "\n" }}
{{- with .Setup }}

{{ . }}
{{- end }}
{{- range .Stubs }}


@{{ lower .Keyword }}(r'{{ pyRaw .Pattern }}')
def {{ .FunctionName }}({{ join .Params ", " }}):
    raise NotImplementedError('STEP: {{ pyStr .Step.Keyword }} {{ pyStr .Step.Text }}')
{{- end }}
`

const javascriptTemplate = `{{ join .Imports "\n" }}
{{- range .Stubs }}

{{ .Keyword }}(/{{ jsRegex .Pattern }}/, function {{ .FunctionName }}({{ join .Params ", " }}) {
  // Write code here that turns the phrase above into concrete actions
  return 'pending';
});
{{- end }}
`

var funcs = template.FuncMap{
	"join":    strings.Join,
	"lower":   strings.ToLower,
	"pyRaw":   strings.NewReplacer(`'`, `\'`).Replace,
	"pyStr":   strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace,
	"jsRegex": strings.NewReplacer(`/`, `\/`).Replace,
}

var targets = map[string]target{
	"python": {
		frameworks: []string{"behave"},
		imports: []string{
			"from behave import given, when, then",
			"from hamcrest import assert_that, equal_to",
		},
		setup: "from behave import use_step_matcher\n\nuse_step_matcher(\"re\")",
		tmpl:  template.Must(template.New("python").Funcs(funcs).Parse(pythonTemplate)),
	},
	"javascript": {
		frameworks: []string{"cucumber"},
		imports: []string{
			"const { Given, When, Then } = require('@cucumber/cucumber');",
			"const { expect } = require('chai');",
		},
		tmpl: template.Must(template.New("javascript").Funcs(funcs).Parse(javascriptTemplate)),
	},
}

// Languages returns the supported programming languages in sorted order.
func Languages() []string {
	out := make([]string, 0, len(targets))
	for lang := range targets {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Frameworks returns the frameworks supported for language, default first.
func Frameworks(language string) []string {
	return slices.Clone(targets[strings.ToLower(language)].frameworks)
}

type stub struct {
	Definition
	Params []string
}

// Render generates step-definition stubs for every distinct step pattern in
// feature. Language is matched case-insensitively; an empty framework selects the
// language's default.
func Render(feature, language, framework string) (*Result, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	tgt, ok := targets[lang]
	if !ok {
		return nil, &apperr.InvalidArgumentError{
			Field: "programming_language",
			Value: language,
			Valid: Languages(),
		}
	}

	fw := strings.ToLower(strings.TrimSpace(framework))
	if fw == "" {
		fw = tgt.frameworks[0]
	}
	if !slices.Contains(tgt.frameworks, fw) {
		return nil, &apperr.InvalidArgumentError{
			Field:  "framework",
			Value:  framework,
			Reason: "not available for " + lang,
			Valid:  tgt.frameworks,
		}
	}

	defs, dups := Build(ExtractSteps(feature))
	data := struct {
		Imports []string
		Setup   string
		Stubs   []stub
	}{
		Imports: tgt.imports,
		Setup:   tgt.setup,
		Stubs:   stubs(lang, Unique(defs)),
	}

	var sb strings.Builder
	if err := tgt.tmpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("render %s step definitions: %w", lang, err)
	}

	return &Result{
		Language:    lang,
		Framework:   fw,
		Code:        sb.String(),
		Imports:     slices.Clone(tgt.imports),
		Setup:       tgt.setup,
		Definitions: defs,
		Duplicates:  dups,
	}, nil
}

// stubs assigns parameter lists and makes function names unique within the file.
func stubs(lang string, defs []Definition) []stub {
	out := make([]stub, 0, len(defs))
	used := make(map[string]bool, len(defs))
	for _, d := range defs {
		name := d.FunctionName
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", d.FunctionName, n)
		}
		used[name] = true
		d.FunctionName = name

		var params []string
		if lang == "python" {
			params = append(params, "context")
		}
		for i := 1; i <= d.Params; i++ {
			params = append(params, fmt.Sprintf("arg%d", i))
		}
		out = append(out, stub{Definition: d, Params: params})
	}
	return out
}
