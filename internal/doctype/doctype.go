// Package doctype defines the closed set of document types the converter understands.
package doctype

import (
	"fmt"

	"github.com/dgallion1/bddgen/internal/apperr"
)

// Type identifies a kind of requirements document.
type Type int

const (
	BRD Type = iota + 1
	FRD
	UserStory
	TestCase
)

// All lists every Type in canonical declaration order.
var All = []Type{BRD, FRD, UserStory, TestCase}

var literals = map[Type]string{
	BRD:       "BRD",
	FRD:       "FRD",
	UserStory: "User Story",
	TestCase:  "Test Case",
}

// Literals returns the accepted literal names in canonical order.
func Literals() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = literals[t]
	}
	return out
}

// Parse converts a caller-supplied literal such as "User Story" into a Type.
func Parse(literal string) (Type, error) {
	for _, t := range All {
		if literals[t] == literal {
			return t, nil
		}
	}
	return 0, &apperr.InvalidArgumentError{
		Field: "doc_type",
		Value: literal,
		Valid: Literals(),
	}
}

// String returns the literal form of the type.
func (t Type) String() string {
	if s, ok := literals[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := literals[t]
	return ok
}

// IsRequirements reports whether t is parsed as a requirements document (BRD or FRD).
func (t Type) IsRequirements() bool {
	return t == BRD || t == FRD
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("marshal doc type: unknown value %d", int(t))
	}
	return []byte(literals[t]), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
