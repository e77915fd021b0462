// Package dashboard is the interactive terminal viewer: a grid of metric
// cards with a scrollable detail page per chart.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/dashbuild/dashbuild/internal/render"
)

// Widget is one chart on the dashboard.
type Widget struct {
	Name       string
	Descriptor chart.Descriptor
}

// Loader produces the widgets to show. It is called on start and on reload.
type Loader func() ([]Widget, error)

// Width breakpoints for the card grid.
const (
	BreakpointTwoColumns   = 80
	BreakpointThreeColumns = 120
)

const (
	headerHeight = 2
	footerHeight = 2
)

// Options configure a Model.
type Options struct {
	Title   string
	Palette render.Palette
	Logger  logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	title    string
	loader   Loader
	palette  render.Palette
	log      logger.Logger
	widgets  []Widget
	selected int
	width    int
	height   int
	viewMode ViewMode
	quitting bool
	loadErr  error
	loadedAt time.Time

	help help.Model

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// loadedMsg carries the result of a Loader call.
type loadedMsg struct {
	widgets []Widget
	err     error
	time    time.Time
}

// NewModel creates a dashboard that fills itself from loader.
func NewModel(loader Loader, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	title := opts.Title
	if title == "" {
		title = "dashbuild"
	}
	return Model{
		title:   title,
		loader:  loader,
		palette: opts.Palette.Merge(),
		log:     log,
		help:    help.New(),
	}
}

// Init triggers the initial load.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		if m.viewMode == ViewDetail && m.viewportReady {
			var vpCmd tea.Cmd
			m.detailViewport, vpCmd = m.detailViewport.Update(msg)
			return m, vpCmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case tea.MouseMsg:
		if m.viewMode == ViewDetail && m.viewportReady {
			var vpCmd tea.Cmd
			m.detailViewport, vpCmd = m.detailViewport.Update(msg)
			return m, vpCmd
		}

	case loadedMsg:
		m.applyLoad(msg)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.viewMode == ViewDetail {
		return m.renderDetail()
	}
	return m.renderGrid()
}

// HandleKeyMsg processes keyboard input. It reports whether the key was
// consumed.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil

	case key.Matches(msg, keys.Back):
		if m.help.ShowAll {
			m.help.ShowAll = false
			return true, nil
		}
		m.viewMode = ViewGrid
		return true, nil

	case key.Matches(msg, keys.Reload):
		return true, m.loadCmd()
	}

	// The detail page scrolls with the remaining keys.
	if m.viewMode == ViewDetail {
		return false, nil
	}

	switch {
	case key.Matches(msg, keys.Prev):
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case key.Matches(msg, keys.Next):
		if m.selected < len(m.widgets)-1 {
			m.selected++
		}
		return true, nil

	case key.Matches(msg, keys.First):
		m.selected = 0
		return true, nil

	case key.Matches(msg, keys.Last):
		if len(m.widgets) > 0 {
			m.selected = len(m.widgets) - 1
		}
		return true, nil

	case key.Matches(msg, keys.Open):
		if len(m.widgets) > 0 {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
			m.detailViewport.GotoTop()
		}
		return true, nil
	}

	return false, nil
}

func (m Model) loadCmd() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		if loader == nil {
			return loadedMsg{time: time.Now()}
		}
		widgets, err := loader()
		return loadedMsg{widgets: widgets, err: err, time: time.Now()}
	}
}

// applyLoad swaps in new widgets. A failed reload keeps the previous ones.
func (m *Model) applyLoad(msg loadedMsg) {
	m.loadErr = msg.err
	if msg.err != nil {
		m.log.Warn("reload failed: %v", msg.err)
		return
	}

	m.widgets = msg.widgets
	m.loadedAt = msg.time
	m.log.Debug("loaded %d widgets", len(m.widgets))

	if m.selected >= len(m.widgets) {
		m.selected = len(m.widgets) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if len(m.widgets) == 0 {
		m.viewMode = ViewGrid
	}
	if m.viewMode == ViewDetail {
		m.updateDetailViewportContent()
	}
}

// Selected returns the highlighted widget, if any.
func (m Model) Selected() (Widget, bool) {
	if m.selected < 0 || m.selected >= len(m.widgets) {
		return Widget{}, false
	}
	return m.widgets[m.selected], true
}

// Mode returns the current view mode.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// Err returns the error from the most recent load, if it failed.
func (m Model) Err() error {
	return m.loadErr
}
