package workbench

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/matcher"
)

// Remote results carry the request token they answer. Results for an
// older token are dropped.

type aiExplainedMsg struct {
	token int
	text  string
	err   error
}

type structuredMsg struct {
	token      int
	doc        explain.Document
	mismatches []assist.Mismatch
	err        error
}

type generatedMsg struct {
	token int
	gen   *assist.Generation
	err   error
}

func explainCmd(ctx context.Context, a Assistant, token int, pattern, custom string) tea.Cmd {
	return func() tea.Msg {
		text, err := a.Explain(ctx, pattern, custom)
		return aiExplainedMsg{token: token, text: text, err: err}
	}
}

func structuredCmd(ctx context.Context, a Assistant, token int, pattern string, flags matcher.Flags) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.ExplainStructured(ctx, pattern)
		if err != nil {
			return structuredMsg{token: token, err: err}
		}
		// A pattern that does not compile has no examples to check; the
		// results panel already shows the compile error.
		mismatches, _ := assist.CheckExamples(pattern, flags, doc)
		return structuredMsg{token: token, doc: doc, mismatches: mismatches}
	}
}

func generateCmd(ctx context.Context, a Assistant, token int, description string) tea.Cmd {
	return func() tea.Msg {
		gen, err := a.Generate(ctx, description)
		return generatedMsg{token: token, gen: gen, err: err}
	}
}
