package stepdef

import "slices"

// Definition binds one step to the pattern and function that implement it.
type Definition struct {
	Keyword      string `json:"keyword"`
	Pattern      string `json:"pattern"`
	FunctionName string `json:"function_name"`
	Params       int    `json:"params"`
	Step         Step   `json:"step"`
}

// Duplicate reports a pattern produced by more than one step. Only the first
// definition for the pattern is rendered.
type Duplicate struct {
	Pattern       string   `json:"pattern"`
	Count         int      `json:"count"`
	FunctionNames []string `json:"function_names"`
}

// Build derives a definition for every step, in order. And/But steps take the
// keyword of the closest preceding Given, When or Then step, or Given when there
// is none. Patterns shared by several steps are reported as duplicates.
func Build(steps []Step) ([]Definition, []Duplicate) {
	defs := make([]Definition, 0, len(steps))
	primary := "Given"

	type seen struct {
		count int
		names []string
	}
	byPattern := make(map[string]*seen)
	var order []string

	for _, st := range steps {
		switch st.Keyword {
		case "Given", "When", "Then":
			primary = st.Keyword
		}
		pattern := MatchPattern(st.Text)
		name := FunctionName(st.Text)
		defs = append(defs, Definition{
			Keyword:      primary,
			Pattern:      pattern,
			FunctionName: name,
			Params:       ParamCount(pattern),
			Step:         st,
		})

		s, ok := byPattern[pattern]
		if !ok {
			s = &seen{}
			byPattern[pattern] = s
			order = append(order, pattern)
		}
		s.count++
		if !slices.Contains(s.names, name) {
			s.names = append(s.names, name)
		}
	}

	var dups []Duplicate
	for _, p := range order {
		if s := byPattern[p]; s.count > 1 {
			dups = append(dups, Duplicate{Pattern: p, Count: s.count, FunctionNames: s.names})
		}
	}
	return defs, dups
}

// Unique returns the first definition for each pattern, in order.
func Unique(defs []Definition) []Definition {
	seen := make(map[string]bool, len(defs))
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if seen[d.Pattern] {
			continue
		}
		seen[d.Pattern] = true
		out = append(out, d)
	}
	return out
}
