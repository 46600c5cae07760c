package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	got := Lines("  first line \r\n\r\n\tsecond\n   \nthird")
	assert.Equal(t, []string{"first line", "second", "third"}, got)
	assert.Empty(t, Lines(""))
	assert.Empty(t, Lines(" \n\t\n"))
}

func TestSentences(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	got := s.Sentences("The system must log every request. Admins review the logs weekly.")
	assert.Equal(t, []string{
		"The system must log every request.",
		"Admins review the logs weekly.",
	}, got)
}

func TestSentencesBreakOnNewlines(t *testing.T) {
	got := Default().Sentences("Scope and Objectives\nThe user must be able to export reports")
	assert.Equal(t, []string{
		"Scope and Objectives",
		"The user must be able to export reports",
	}, got)
}

func TestSentencesEmpty(t *testing.T) {
	assert.Empty(t, Default().Sentences(""))
	assert.Empty(t, Default().Sentences("\n\n  \n"))
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}
