package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/fledgling/internal/birds"
	"github.com/five82/fledgling/internal/prefs"
	"github.com/five82/fledgling/internal/state"
)

// Completer settles a load that was started with state.Store.Begin.
// *state.Loader satisfies it.
type Completer interface {
	Complete(ctx context.Context, seq uint64) bool
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Loader    Completer
	Endpoint  string
	ThemeName string
	PrefsPath string
	Logger    hclog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	loader    Completer
	endpoint  string
	prefsPath string
	logger    hclog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot
	listing  birds.Listing
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	theme := GetTheme(themeName)
	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		loader:    opts.Loader,
		endpoint:  opts.Endpoint,
		prefsPath: opts.PrefsPath,
		logger:    logger.Named("ui"),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.setTheme(theme)
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.bodyHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.bodyHeight()
		}
		m.updateViewport()
		return m, nil

	case refreshMsg:
		return m.startLoad()

	case loadDoneMsg:
		if !msg.applied {
			m.logger.Trace("superseded load settled", "seq", msg.seq)
		}
		if m.store != nil {
			m.applySnapshot(m.store.Snapshot())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help; quit and refresh still act.
		m.showHelp = false
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.startLoad()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.startLoad()

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(GetTheme(NextTheme(m.theme.Name)))
		m.updateViewport()
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
			}
		}
		return m, nil
	}

	return m.handleScrollKey(msg)
}

// handleScrollKey moves the body viewport.
func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	}
	return m, nil
}

// startLoad marks a new request current and runs it in the background.
// Every trigger starts its own request; only the newest one lands.
func (m Model) startLoad() (tea.Model, tea.Cmd) {
	if m.store == nil || m.loader == nil {
		return m, nil
	}
	seq := m.store.Begin()
	m.applySnapshot(m.store.Snapshot())
	m.logger.Debug("refresh requested", "seq", seq)
	return m, tea.Batch(loadCmd(m.ctx, m.loader, seq), m.spinner.Tick)
}

// applySnapshot adopts a store snapshot and reclassifies its payload.
func (m *Model) applySnapshot(snap state.Snapshot) {
	changed := snap.Payload != m.snapshot.Payload
	m.snapshot = snap
	m.listing = birds.Classify(snap.Payload)
	m.updateViewport()
	if changed && m.ready {
		m.viewport.GotoTop()
	}
}

func (m *Model) setTheme(theme Theme) {
	m.theme = theme
	styles := theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
}

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// bodyHeight is the terminal height minus the header and footer rows.
func (m Model) bodyHeight() int {
	return maxInt(m.height-2, 1)
}

// renderBody draws exactly one of: loading indicator, error banner, listing.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	pad := lipgloss.NewStyle().Padding(1, 1, 0, 1)
	inner := maxInt(m.width-2, 0)

	switch {
	case m.snapshot.Loading:
		return pad.Render(m.spinner.View() + " " + styles.MutedText.Render("Loading…"))
	case m.snapshot.HasError():
		return pad.Render(renderError(m.snapshot.Err, styles, inner))
	default:
		return pad.Render(renderListing(m.listing, styles, inner))
	}
}

// Messages

type refreshMsg struct{}

type loadDoneMsg struct {
	seq     uint64
	applied bool
}

// Commands

func loadCmd(ctx context.Context, loader Completer, seq uint64) tea.Cmd {
	return func() tea.Msg {
		applied := loader.Complete(ctx, seq)
		return loadDoneMsg{seq: seq, applied: applied}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Store == nil || opts.Loader == nil {
		return errors.New("ui requires a store and a loader")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
