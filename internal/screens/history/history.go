package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/screen"
	"github.com/abhisek/regexlab/internal/store"
	"github.com/abhisek/regexlab/internal/ui/layout"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

// Limit is the number of recent requests the screen loads.
const Limit = 50

// Lister is the read side of the AI request log.
type Lister interface {
	QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error)
}

type historyLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// HistoryScreen lists recent AI requests, newest first.
type HistoryScreen struct {
	ctx      context.Context
	repo     Lister
	events   []store.LLMEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, repo Lister) *HistoryScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	return &HistoryScreen{
		ctx:      ctx,
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.repo.QueryLLMEvents(s.ctx, store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "AI History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Events returns the loaded requests.
func (s *HistoryScreen) Events() []store.LLMEvent {
	return s.events
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No AI requests yet. Press Ctrl+A in the workbench to ask for one.")
	}

	var lines []string
	for i, e := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-10s  %-8s  %s  %d/%d tokens  %dms",
			prefix, e.Timestamp.Format("Jan 02 15:04"), e.Purpose, e.Provider,
			e.Model, e.InputTokens, e.OutputTokens, e.LatencyMs)

		style := lipgloss.NewStyle().Foreground(statusColor(e))
		if i == s.selected {
			style = style.Bold(true)
		}
		lines = append(lines, style.Render(layout.Truncate(line, width)))

		if s.expanded[i] {
			lines = append(lines, details(e, width)...)
		}
	}

	// Keep the selection on screen.
	if height > 0 && len(lines) > height {
		start := s.lineOf(s.selected) - height/2
		start = max(0, min(start, len(lines)-height))
		lines = lines[start : start+height]
	}
	return strings.Join(lines, "\n")
}

// lineOf returns the rendered line index of event i, counting expanded rows.
func (s *HistoryScreen) lineOf(i int) int {
	n := 0
	for j := 0; j < i; j++ {
		n++
		if s.expanded[j] {
			n += len(details(s.events[j], 0))
		}
	}
	return n
}

func details(e store.LLMEvent, width int) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var out []string
	add := func(label, body string) {
		body = strings.Join(strings.Fields(body), " ")
		if body == "" {
			return
		}
		text := fmt.Sprintf("    %s: %s", label, body)
		if width > 0 {
			text = layout.Truncate(text, width)
		}
		out = append(out, dim.Render(text))
	}
	if !e.Success {
		add("error", e.ErrorMessage)
	}
	add("request", e.RequestBody)
	add("response", e.ResponseBody)
	if e.SessionID != "" {
		add("session", e.SessionID)
	}
	return out
}

func statusColor(e store.LLMEvent) color.Color {
	if !e.Success {
		return theme.Error
	}
	return theme.Text
}
