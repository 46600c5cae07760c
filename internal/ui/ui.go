// Package ui renders CLI output with lipgloss styles.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	bestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

var gherkinKeywords = []string{"Feature:", "Scenario:", "Given ", "When ", "Then ", "And ", "But "}

func Header(w io.Writer, title string) {
	fmt.Fprintln(w, headerStyle.Render(title))
}

// ScoreLine prints one document type score, highlighting the best guess.
func ScoreLine(w io.Writer, label string, score float64, best bool) {
	line := fmt.Sprintf("%-12s %.2f", label, score)
	if best {
		fmt.Fprintln(w, bestStyle.Render(line)+"  <- best guess")
		return
	}
	fmt.Fprintln(w, faintStyle.Render(line))
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, okStyle.Render("ok")+"    "+fmt.Sprintf(format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnStyle.Render("warn")+"  "+fmt.Sprintf(format, args...))
}

// Gherkin prints feature text with its keywords highlighted.
func Gherkin(w io.Writer, feature string) {
	for _, line := range strings.Split(strings.TrimRight(feature, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		styled := line
		for _, kw := range gherkinKeywords {
			if strings.HasPrefix(trimmed, kw) {
				word := strings.TrimRight(kw, ": ")
				styled = indent + keywordStyle.Render(word) + trimmed[len(word):]
				break
			}
		}
		fmt.Fprintln(w, styled)
	}
}
