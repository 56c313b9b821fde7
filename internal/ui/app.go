package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/apierr"
	"github.com/five82/atlas/internal/cache"
	"github.com/five82/atlas/internal/favorites"
	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/logtail"
	"github.com/five82/atlas/internal/metrics"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/paginate"
	"github.com/five82/atlas/internal/request"
	"github.com/five82/atlas/internal/restcountries"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/theme"
)

// View represents the current main view.
type View int

const (
	ViewList View = iota
	ViewFavorites
	ViewComparison
	ViewStats
	ViewDiagnostics
)

var viewCycle = []View{ViewList, ViewFavorites, ViewComparison, ViewStats}

// DataClient is the part of restcountries.Client the UI calls directly.
type DataClient interface {
	FetchByCode(ctx context.Context, code string) (restcountries.Country, error)
	SearchByName(ctx context.Context, name string) ([]restcountries.Country, error)
	ClearCache()
	CacheStats() cache.Stats
	InFlightStats() request.Stats
}

// Options configure the Bubble Tea UI.
type Options struct {
	Context    context.Context
	Client     DataClient
	Store      *state.Store
	Favorites  *favorites.Favorites
	Comparison *favorites.Comparison
	Theme      *theme.Theme
	Locale     *theme.Locale
	Notices    *notify.Center
	Metrics    *metrics.Metrics // optional
	LogFile    string           // tailed by the diagnostics view
	PerPage    int
	Tick       time.Duration
	Logger     *slog.Logger
}

// Model is the Bubble Tea model for the explorer.
type Model struct {
	ctx        context.Context
	client     DataClient
	store      *state.Store
	favorites  *favorites.Favorites
	comparison *favorites.Comparison
	theme      *theme.Theme
	locale     *theme.Locale
	notices    *notify.Center
	metrics    *metrics.Metrics
	logFile    string
	logger     *slog.Logger
	keys       keyMap
	tick       time.Duration

	// Window dimensions
	width  int
	height int
	ready  bool

	// Data
	snapshot state.Snapshot
	items    []restcountries.Country
	logLines []logtail.Line

	themeSyncedAt time.Time

	// Navigation
	currentView View
	pager       *paginate.Paginator
	selectedRow int // index within the current page
	setRow      int // index within the favorites or comparison list

	// Search
	search    textinput.Model
	searching bool
	remote    []restcountries.Country
	remoteFor string

	// Detail overlay
	showDetail     bool
	detail         restcountries.Country
	detailErr      error
	detailViewport viewport.Model

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 64

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		favorites:   opts.Favorites,
		comparison:  opts.Comparison,
		theme:       opts.Theme,
		locale:      opts.Locale,
		notices:     opts.Notices,
		metrics:     opts.Metrics,
		logFile:     opts.LogFile,
		logger:      logger,
		keys:        DefaultKeyMap(),
		tick:        tick,
		currentView: ViewList,
		pager:       paginate.New(opts.PerPage, paginate.DefaultMaxVisible),
		search:      search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		refreshCmd(m.ctx, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeDetail()
		return m, nil

	case tickMsg:
		m.sync()
		if m.currentView == ViewDiagnostics {
			m.readLogTail()
		}
		now := time.Time(msg)
		if m.theme != nil && now.Sub(m.themeSyncedAt) >= ThemeSyncInterval {
			m.themeSyncedAt = now
			return m, tea.Batch(tickCmd(m.tick), syncThemeCmd(m.theme))
		}
		return m, tickCmd(m.tick)

	case tea.FocusMsg:
		return m, syncThemeCmd(m.theme)

	case themeSyncedMsg:
		return m, nil

	case refreshedMsg:
		m.sync()
		return m, nil

	case detailMsg:
		m.handleDetail(msg)
		return m, nil

	case remoteMsg:
		m.handleRemote(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return i18n.T(m.tag(), i18n.UILoading)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// sync re-reads the store and clamps the selection to the new collection.
func (m *Model) sync() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	m.items = m.store.FilteredAndSorted()
	m.pager.Clamp(len(m.items))
	m.clampSelection()
}

func (m *Model) clampSelection() {
	page := m.pageItems()
	if m.selectedRow >= len(page) {
		m.selectedRow = max(len(page)-1, 0)
	}
	if n := len(m.setCodes()); m.setRow >= n {
		m.setRow = max(n-1, 0)
	}
}

func (m Model) tag() language.Tag {
	if m.locale == nil {
		return i18n.Default()
	}
	return m.locale.Tag()
}

func (m Model) localeCode() string {
	return i18n.Code(m.tag())
}

func (m Model) palette() Palette {
	if m.theme == nil {
		return PaletteFor(theme.Dark)
	}
	return PaletteFor(m.theme.Mode())
}

func (m Model) styles() Styles {
	return m.palette().Styles()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.showDetail {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLocale):
		m.toggleLocale()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.client != nil {
			m.client.ClearCache()
		}
		return m, refreshCmd(m.ctx, m.store)

	case key.Matches(msg, m.keys.Tab):
		m.cycleView(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleView(-1)
		return m, nil

	case key.Matches(msg, m.keys.ViewList):
		m.switchView(ViewList)
		return m, nil

	case key.Matches(msg, m.keys.ViewFavorites):
		m.switchView(ViewFavorites)
		return m, nil

	case key.Matches(msg, m.keys.ViewComparison):
		m.switchView(ViewComparison)
		return m, nil

	case key.Matches(msg, m.keys.ViewStats):
		m.switchView(ViewStats)
		return m, nil

	case key.Matches(msg, m.keys.ViewDiagnostics):
		m.switchView(ViewDiagnostics)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.remote = nil
		m.remoteFor = ""
		m.switchView(ViewList)
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		return m.handleListKey(msg)
	case ViewFavorites, ViewComparison:
		return m.handleSetKey(msg)
	}
	return m, nil
}

func (m *Model) switchView(v View) {
	m.currentView = v
	m.setRow = 0
	if v == ViewDiagnostics {
		m.readLogTail()
	}
}

func (m *Model) readLogTail() {
	lines, err := logtail.Read(m.logFile, logTailLines)
	if err != nil {
		m.logger.Debug("read log tail failed", slog.Any("error", err))
		return
	}
	m.logLines = lines
}

func (m *Model) cycleView(step int) {
	idx := 0
	for i, v := range viewCycle {
		if v == m.currentView {
			idx = i
			break
		}
	}
	idx = (idx + step + len(viewCycle)) % len(viewCycle)
	m.switchView(viewCycle[idx])
}

func (m *Model) toggleTheme() {
	if m.theme == nil {
		return
	}
	mode, err := m.theme.Toggle()
	if err != nil {
		m.logger.Warn("persist theme failed", slog.Any("error", err))
	}
	label := i18n.ThemeDark
	if mode == theme.Light {
		label = i18n.ThemeLight
	}
	m.notify(notify.Info, i18n.T(m.tag(), label))
}

func (m *Model) toggleLocale() {
	if m.locale == nil {
		return
	}
	tag, err := m.locale.Toggle()
	if err != nil {
		m.logger.Warn("persist locale failed", slog.Any("error", err))
	}
	m.notify(notify.Info, i18n.T(tag, i18n.LocaleChanged))
	// Search and sort depend on the locale.
	m.sync()
}

func (m Model) notify(kind notify.Kind, message string) {
	if m.notices != nil {
		m.notices.Notify(kind, message)
	}
}

// toggleFavorite flips code in the favorites set. Limit notices come from
// the favorites package; only persistence failures are logged here.
func (m Model) toggleFavorite(code string) {
	if m.favorites == nil || code == "" {
		return
	}
	if _, err := m.favorites.Toggle(code); err != nil && !errors.Is(err, favorites.ErrLimitReached) {
		m.logger.Warn("persist favorites failed", slog.String("code", code), slog.Any("error", err))
	}
}

func (m Model) toggleComparison(code string) {
	if m.comparison == nil || code == "" {
		return
	}
	if _, err := m.comparison.Toggle(code); err != nil &&
		!errors.Is(err, favorites.ErrLimitReached) && !errors.Is(err, favorites.ErrDuplicate) {
		m.logger.Warn("persist comparison failed", slog.String("code", code), slog.Any("error", err))
	}
}

// openDetail shows c immediately and asks the client for the full record.
func (m Model) openDetail(c restcountries.Country) (tea.Model, tea.Cmd) {
	m.showDetail = true
	m.detail = c
	m.detailErr = nil
	m.resizeDetail()
	m.detailViewport.GotoTop()
	return m, fetchDetailCmd(m.ctx, m.client, c.CCA3)
}

func (m *Model) handleDetail(msg detailMsg) {
	if !m.showDetail || msg.code != m.detail.CCA3 {
		return
	}
	if msg.err != nil {
		if !apierr.IsCancelled(msg.err) {
			m.detailErr = msg.err
		}
		return
	}
	m.detail = msg.country
	m.detailErr = nil
	m.refreshDetailContent()
}

func (m *Model) handleRemote(msg remoteMsg) {
	if msg.query != m.remoteFor {
		return
	}
	if msg.err != nil {
		if apierr.IsCancelled(msg.err) {
			return
		}
		if apierr.ShouldLog(msg.err) {
			m.logger.Warn("online search failed", slog.String("query", msg.query), slog.Any("error", msg.err))
		}
		m.notify(notify.Error, i18n.ErrorMessage(m.tag(), msg.err))
		m.remote = nil
		return
	}
	m.remote = msg.items
	m.selectedRow = 0
}

// Messages

type tickMsg time.Time

type refreshedMsg struct{}

type themeSyncedMsg struct{ mode theme.Mode }

type detailMsg struct {
	code    string
	country restcountries.Country
	err     error
}

type remoteMsg struct {
	query string
	items []restcountries.Country
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		store.Refresh(ctx)
		return refreshedMsg{}
	}
}

// syncThemeCmd re-reads the system color preference. The palette follows on
// the next render when no explicit theme is stored.
func syncThemeCmd(t *theme.Theme) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSyncedMsg{mode: t.Resync()}
	}
}

func fetchDetailCmd(ctx context.Context, client DataClient, code string) tea.Cmd {
	if client == nil || code == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, DetailFetchTimeout)
		defer cancel()
		country, err := client.FetchByCode(ctx, code)
		return detailMsg{code: code, country: country, err: err}
	}
}

func searchRemoteCmd(ctx context.Context, client DataClient, query string) tea.Cmd {
	if client == nil || query == "" {
		return nil
	}
	return func() tea.Msg {
		items, err := client.SearchByName(ctx, query)
		return remoteMsg{query: query, items: items, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
