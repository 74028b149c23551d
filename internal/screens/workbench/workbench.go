// Package workbench is the main screen: edit a pattern, toggle flags,
// test it live against sample lines and ask for explanations.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/llm"
	"github.com/abhisek/regexlab/internal/matcher"
	"github.com/abhisek/regexlab/internal/router"
	"github.com/abhisek/regexlab/internal/screen"
	"github.com/abhisek/regexlab/internal/ui/components"
	"github.com/abhisek/regexlab/internal/ui/layout"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

// DefaultPattern is loaded on start.
const DefaultPattern = `^\d{2}-\d{2}-\d{4}$`

// DefaultLines are the sample lines loaded on start.
var DefaultLines = []string{"01-01-2023", "31-12-2022", "1-1-2023", "01/01/2023", "ABC"}

// Assistant is the remote side of the workbench. *assist.Service
// implements it.
type Assistant interface {
	Explain(ctx context.Context, pattern, custom string) (string, error)
	Generate(ctx context.Context, description string) (*assist.Generation, error)
	ExplainStructured(ctx context.Context, pattern string) (explain.Document, error)
	ModelID() string
}

// Options wires the workbench to the rest of the app. Every field is
// optional.
type Options struct {
	// Context is the parent of every remote request.
	Context context.Context
	// Assistant enables the AI actions. Nil disables them.
	Assistant Assistant
	// Unavailable explains why Assistant is nil, shown when an AI key is
	// pressed.
	Unavailable string
	// Matcher caches compiled patterns. Nil uses the package cache.
	Matcher *matcher.Matcher

	// Screen factories for the navigation keys. Nil disables the key.
	Library func() screen.Screen
	Guide   func() screen.Screen
	History func() screen.Screen
}

type focus int

const (
	focusPattern focus = iota
	focusPrompt
	focusLines
	focusCount
)

// WorkbenchScreen implements screen.Screen.
type WorkbenchScreen struct {
	opts Options

	pattern components.TextInput
	prompt  components.TextInput
	lines   textarea.Model
	flags   components.FlagToggles
	focus   focus

	results    []matcher.Result
	compileErr string

	explainTitle string
	explanation  string
	mismatches   []assist.Mismatch

	describing bool
	describe   components.TextInput

	spinner spinner.Model
	busy    string
	token   int
	status  string
	errMsg  string
}

var _ screen.Screen = (*WorkbenchScreen)(nil)
var _ screen.KeyHintProvider = (*WorkbenchScreen)(nil)

// New creates a WorkbenchScreen loaded with the default pattern and lines.
func New(opts Options) *WorkbenchScreen {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	w := &WorkbenchScreen{
		opts:     opts,
		pattern:  components.NewTextInput("Pattern", "regular expression", 0),
		prompt:   components.NewTextInput("Prompt ", "custom AI prompt (optional)", 500),
		describe: components.NewTextInput("Describe", "e.g. a French postcode", 300),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}

	w.lines = textarea.New()
	w.lines.ShowLineNumbers = true
	w.lines.Prompt = ""
	w.lines.Placeholder = "one test line per row"

	w.pattern.SetValue(DefaultPattern)
	w.lines.SetValue(strings.Join(DefaultLines, "\n"))
	w.pattern.Focus()
	w.retest()
	return w
}

func (w *WorkbenchScreen) Init() tea.Cmd {
	return w.pattern.Focus()
}

func (w *WorkbenchScreen) Title() string {
	return "Workbench"
}

func (w *WorkbenchScreen) KeyHints() []layout.KeyHint {
	if w.describing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Focus"},
		{Key: "F1-F4", Description: "Flags"},
		{Key: "Ctrl+L", Description: "Library"},
		{Key: "Ctrl+O", Description: "Guide"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Pattern returns the current pattern.
func (w *WorkbenchScreen) Pattern() string { return w.pattern.Value() }

// Flags returns the current flags.
func (w *WorkbenchScreen) Flags() matcher.Flags { return w.flags.Flags }

// Results returns the results of the last test run.
func (w *WorkbenchScreen) Results() []matcher.Result { return w.results }

// Explanation returns the explanation text currently shown.
func (w *WorkbenchScreen) Explanation() string { return w.explanation }

func (w *WorkbenchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LoadPatternMsg:
		return w, w.load(msg)

	case aiExplainedMsg:
		if msg.token != w.token {
			return w, nil
		}
		w.busy = ""
		if msg.err != nil {
			w.fail(msg.err)
			return w, nil
		}
		w.showExplanation("AI explanation", msg.text, nil)
		return w, nil

	case structuredMsg:
		if msg.token != w.token {
			return w, nil
		}
		w.busy = ""
		if msg.err != nil {
			w.fail(msg.err)
			return w, nil
		}
		w.showExplanation("AI documentation", explain.Format(msg.doc), msg.mismatches)
		return w, nil

	case generatedMsg:
		if msg.token != w.token {
			return w, nil
		}
		w.busy = ""
		if msg.err != nil {
			w.fail(msg.err)
			return w, nil
		}
		w.pattern.SetValue(msg.gen.Pattern)
		w.clearExplanation()
		w.status = "Generated pattern from description"
		w.retest()
		return w, nil

	case spinner.TickMsg:
		if w.busy == "" {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyPressMsg:
		if w.describing {
			return w, w.updateDescribe(msg)
		}
		if cmd, handled := w.handleKey(msg.String()); handled {
			return w, cmd
		}
		return w, w.updateFocused(msg)
	}

	// Cursor blinks and other internal messages go to the focused field.
	return w, w.updateFocused(msg)
}

func (w *WorkbenchScreen) handleKey(key string) (tea.Cmd, bool) {
	if w.flags.Toggle(key) {
		w.retest()
		return nil, true
	}

	switch key {
	case "tab":
		return w.setFocus((w.focus + 1) % focusCount), true
	case "shift+tab":
		return w.setFocus((w.focus + focusCount - 1) % focusCount), true
	case "ctrl+e":
		w.explainLocally()
		return nil, true
	case "ctrl+a":
		return w.startRemote("Asking for an explanation", func(token int) tea.Cmd {
			return explainCmd(w.opts.Context, w.opts.Assistant, token, w.Pattern(), w.prompt.Value())
		}), true
	case "ctrl+d":
		return w.startRemote("Documenting the pattern", func(token int) tea.Cmd {
			return structuredCmd(w.opts.Context, w.opts.Assistant, token, w.Pattern(), w.Flags())
		}), true
	case "ctrl+g":
		if !w.aiReady() {
			return nil, true
		}
		w.describing = true
		w.describe.SetValue("")
		return w.describe.Focus(), true
	case "ctrl+l":
		return push(w.opts.Library), true
	case "ctrl+o":
		return push(w.opts.Guide), true
	case "ctrl+r":
		return push(w.opts.History), true
	}
	return nil, false
}

func push(factory func() screen.Screen) tea.Cmd {
	if factory == nil {
		return nil
	}
	s := factory()
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (w *WorkbenchScreen) updateDescribe(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		w.describing = false
		w.describe.Blur()
		return nil
	case "enter":
		desc := strings.TrimSpace(w.describe.Value())
		if desc == "" {
			return nil
		}
		w.describing = false
		w.describe.Blur()
		return w.startRemote("Generating a pattern", func(token int) tea.Cmd {
			return generateCmd(w.opts.Context, w.opts.Assistant, token, desc)
		})
	}
	var cmd tea.Cmd
	w.describe, cmd = w.describe.Update(msg)
	return cmd
}

func (w *WorkbenchScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch w.focus {
	case focusPattern:
		before := w.pattern.Value()
		w.pattern, cmd = w.pattern.Update(msg)
		if w.pattern.Value() != before {
			w.retest()
		}
	case focusPrompt:
		w.prompt, cmd = w.prompt.Update(msg)
	case focusLines:
		before := w.lines.Value()
		w.lines, cmd = w.lines.Update(msg)
		if w.lines.Value() != before {
			w.retest()
		}
	}
	return cmd
}

func (w *WorkbenchScreen) setFocus(f focus) tea.Cmd {
	w.focus = f
	w.pattern.Blur()
	w.prompt.Blur()
	w.lines.Blur()
	switch f {
	case focusPattern:
		return w.pattern.Focus()
	case focusPrompt:
		return w.prompt.Focus()
	default:
		return w.lines.Focus()
	}
}

func (w *WorkbenchScreen) load(msg screen.LoadPatternMsg) tea.Cmd {
	w.pattern.SetValue(msg.Pattern)
	w.flags.Flags = msg.Flags
	if msg.Lines != nil {
		w.lines.SetValue(strings.Join(msg.Lines, "\n"))
	}
	w.clearExplanation()
	if msg.Name != "" {
		w.status = fmt.Sprintf("Loaded %q", msg.Name)
	}
	w.retest()
	return w.setFocus(focusPattern)
}

// retest reruns the pattern against the test lines.
func (w *WorkbenchScreen) retest() {
	w.results, w.compileErr = nil, ""

	pattern := w.Pattern()
	if pattern == "" {
		return
	}

	var (
		results []matcher.Result
		err     error
	)
	lines := matcher.SplitLines(w.lines.Value())
	if w.opts.Matcher != nil {
		results, err = w.opts.Matcher.Test(pattern, w.Flags(), lines)
	} else {
		results, err = matcher.Test(pattern, w.Flags(), lines)
	}
	if err != nil {
		w.compileErr = err.Error()
		w.pattern.MarkValid(false)
		return
	}
	w.results = results
	w.pattern.MarkValid(true)
}

func (w *WorkbenchScreen) explainLocally() {
	w.errMsg = ""
	w.showExplanation("Explanation", explain.Format(explain.Explain(w.Pattern())), nil)
}

func (w *WorkbenchScreen) aiReady() bool {
	if w.opts.Assistant != nil {
		return true
	}
	reason := w.opts.Unavailable
	if reason == "" {
		reason = llm.ErrNotConfigured.Error()
	}
	w.errMsg = "AI features unavailable: " + reason
	return false
}

func (w *WorkbenchScreen) startRemote(label string, build func(token int) tea.Cmd) tea.Cmd {
	if !w.aiReady() {
		return nil
	}
	if w.Pattern() == "" && !strings.HasPrefix(label, "Generating") {
		w.errMsg = "Enter a pattern first"
		return nil
	}
	w.token++
	w.busy = label
	w.errMsg, w.status = "", ""
	log.Debug("remote request", "action", label, "model", w.opts.Assistant.ModelID())
	return tea.Batch(build(w.token), w.spinner.Tick)
}

func (w *WorkbenchScreen) showExplanation(title, text string, mismatches []assist.Mismatch) {
	w.explainTitle = title
	w.explanation = text
	w.mismatches = mismatches
}

func (w *WorkbenchScreen) clearExplanation() {
	w.explainTitle, w.explanation, w.mismatches = "", "", nil
}

func (w *WorkbenchScreen) fail(err error) {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		w.errMsg = "Rate limited by the AI service, try again shortly: " + err.Error()
		return
	}
	w.errMsg = err.Error()
}

func (w *WorkbenchScreen) View(width, height int) string {
	return w.render(width, height)
}

// statusLine is the one-line summary under the results.
func (w *WorkbenchScreen) statusLine() string {
	switch {
	case w.busy != "":
		return w.spinner.View() + " " + theme.Hint.Render(w.busy+"…")
	case w.errMsg != "":
		return theme.ErrorText.Render(w.errMsg)
	case w.status != "":
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.status)
	}
	return ""
}
