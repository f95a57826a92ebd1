package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexview/internal/core/domain"
)

const (
	// lineHeightPx converts a view's pixel height cap into terminal rows.
	lineHeightPx = 20

	// chromeLines is the header plus the status bar.
	chromeLines = 2
)

// App is the viewer application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	req   Request
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	status *status.Bar

	// viewport scrolls the active view.
	viewport viewport.Model

	currentView messages.ViewType
	entities    domain.EntitiesView
	summary     domain.SummaryView

	loaded   bool
	showHelp bool
	err      error

	// width and height are terminal dimensions.
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new viewer for the given request.
func NewApp(ports *Ports, req Request) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		req:         req,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		status:      status.NewBar(s, km),
		viewport:    viewport.New(80, 1),
		currentView: messages.ViewEntities,
	}, nil
}

// WithContext sets the context used for model calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("lexview"),
		a.load(),
	)
}

// load renders both views off the UI goroutine.
func (a *App) load() tea.Cmd {
	svc := a.ports.Annotation
	req := a.req
	ctx := a.ctx

	return func() tea.Msg {
		if req.UseModel {
			ann, err := svc.Annotate(ctx, req.Text)
			if err != nil {
				return messages.AnnotationLoaded{Err: err}
			}
			return messages.AnnotationLoaded{Entities: ann.Entities, Summary: ann.Summary}
		}
		return messages.AnnotationLoaded{
			Entities: svc.RenderEntities(req.Text, req.Spans),
			Summary:  svc.RenderSummary(req.Sections),
		}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.AnnotationLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.entities = msg.Entities
		a.summary = msg.Summary
		a.loaded = true
		a.err = nil
		a.status.SetState(status.StateReady)
		a.status.SetDiagnostics(len(msg.Entities.Diagnostics))
		a.refresh()
		return a, nil

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.SetState(status.StateError)
		if msg.Err != nil {
			a.status.SetMessage(msg.Err.Error())
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case keymap.Matches(k, a.keymap.NextTab):
		a.setView(a.currentView.Next())
		return a, nil
	case keymap.Matches(k, a.keymap.PrevTab):
		a.setView(a.currentView.Prev())
		return a, nil
	case keymap.Matches(k, a.keymap.Top):
		a.viewport.GotoTop()
	case keymap.Matches(k, a.keymap.Bottom):
		a.viewport.GotoBottom()
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		a.status.SetScrollPercent(a.viewport.ScrollPercent())
		return a, cmd
	}

	a.status.SetScrollPercent(a.viewport.ScrollPercent())
	return a, nil
}

func (a *App) setView(v messages.ViewType) {
	if v == a.currentView {
		return
	}
	a.currentView = v
	a.refresh()
	a.viewport.GotoTop()
	a.status.SetScrollPercent(a.viewport.ScrollPercent())
}

// current returns the rendered view of the active tab.
func (a *App) current() domain.RenderedView {
	if a.currentView == messages.ViewSummary {
		return a.summary.View
	}
	return a.entities.View
}

// refresh resizes the viewport and loads the active view into it.
func (a *App) refresh() {
	a.viewport.Width = a.width
	a.viewport.Height = a.ViewportHeight()
	a.viewport.SetContent(string(a.current().Markup))
}

// ViewportHeight returns the number of rows available to the active view:
// the terminal height minus chrome, capped by the view's pixel height.
func (a *App) ViewportHeight() int {
	maxPx := a.current().MaxHeightPx
	if maxPx <= 0 {
		maxPx = a.ports.Annotation.Config().MaxHeightPx
	}

	rows := a.height - chromeLines
	if maxPx > 0 {
		rows = min(rows, maxPx/lineHeightPx)
	}
	return max(rows, 1)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	switch {
	case a.showHelp:
		b.WriteString(a.styles.Help.Render(a.help.FullHelpView(a.keymap.FullHelp())))
	case a.err != nil && !a.loaded:
		b.WriteString(a.styles.Error.Render(a.err.Error()))
	case !a.loaded:
		b.WriteString(a.styles.Muted.Render("Rendering views..."))
	default:
		b.WriteString(a.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(a.status.View())
	return b.String()
}

func (a *App) renderHeader() string {
	tabs := make([]string, 0, len(messages.Views))
	for _, v := range messages.Views {
		if v == a.currentView {
			tabs = append(tabs, a.styles.ActiveTab.Render(v.Title()))
			continue
		}
		tabs = append(tabs, a.styles.Tab.Render(v.Title()))
	}
	return a.styles.Title.Render("lexview") + "  " + strings.Join(tabs, " ")
}

// Run starts the Bubbletea program and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.status.SetWidth(width)
	a.refresh()
}

// CurrentView returns the active tab.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Entities returns the rendered entities view.
func (a *App) Entities() domain.EntitiesView {
	return a.entities
}

// Summary returns the rendered summary view.
func (a *App) Summary() domain.SummaryView {
	return a.summary
}

// Loaded reports whether the views have been rendered.
func (a *App) Loaded() bool {
	return a.loaded
}

// ShowingHelp reports whether the full help is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}
