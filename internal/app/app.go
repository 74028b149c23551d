package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"

	"github.com/abhisek/regexlab/internal/matcher"
	"github.com/abhisek/regexlab/internal/router"
	"github.com/abhisek/regexlab/internal/screen"
	"github.com/abhisek/regexlab/internal/screens/guide"
	"github.com/abhisek/regexlab/internal/screens/history"
	"github.com/abhisek/regexlab/internal/screens/library"
	"github.com/abhisek/regexlab/internal/screens/placeholder"
	"github.com/abhisek/regexlab/internal/screens/welcome"
	"github.com/abhisek/regexlab/internal/screens/workbench"
	"github.com/abhisek/regexlab/internal/ui/layout"
)

// Options configures the interactive workbench.
type Options struct {
	Context context.Context

	// Assistant backs the AI actions. Nil runs the workbench offline.
	Assistant workbench.Assistant
	// Unavailable says why Assistant is nil.
	Unavailable string

	// Events is the AI request log shown by the history screen. Nil
	// shows a placeholder instead.
	Events history.Lister

	// SkipSplash opens the workbench directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the welcome screen, which hands
// over to the workbench.
func newAppModel(opts Options) AppModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	status := "offline"
	if opts.Assistant != nil {
		status = opts.Assistant.ModelID()
	}

	wbOpts := workbench.Options{
		Context:     opts.Context,
		Assistant:   opts.Assistant,
		Unavailable: opts.Unavailable,
		Library:     func() screen.Screen { return library.New() },
		Guide:       func() screen.Screen { return guide.New() },
		History: func() screen.Screen {
			if opts.Events == nil {
				return placeholder.New("AI History", "No event store is open, so AI requests are not recorded.")
			}
			return history.New(opts.Context, opts.Events)
		},
	}
	if m, err := matcher.New(matcher.DefaultCacheSize); err == nil {
		wbOpts.Matcher = m
	} else {
		log.Warn("pattern cache disabled", "error", err)
	}
	newWorkbench := func() screen.Screen { return workbench.New(wbOpts) }

	var root screen.Screen
	if opts.SkipSplash {
		root = newWorkbench()
	} else {
		root = welcome.New(newWorkbench)
	}

	return AppModel{
		router: router.New(root),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		log.Error("workbench exited", "error", err)
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
