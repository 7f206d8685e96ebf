package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/feed"
	"github.com/rshade/esmatch/internal/logging"
	"github.com/rshade/esmatch/internal/match"
	listview "github.com/rshade/esmatch/internal/tui/list"
)

const (
	defaultWidth  = 100
	defaultHeight = 24

	// chromeHeight is the number of rows used around the list (header,
	// title, column header, help and status lines).
	chromeHeight = 8

	promptCharLimit   = 64
	promptWidth       = 40
	maxSuggestionHint = 8
)

// Loader loads the match set of a feed. refresh forces a network fetch.
type Loader interface {
	Load(ctx context.Context, key string, refresh bool) (feed.Result, error)
}

type action int

const (
	actionAll action = iota
	actionGame
	actionLeague
	actionLive
	actionSearch
	actionRefresh
	actionSwitchFeed
	actionQuit
)

type menuItem struct {
	label  string
	action action
}

func mainMenuItems() []menuItem {
	return []menuItem{
		{"All matches", actionAll},
		{"Filter by game", actionGame},
		{"Filter by league", actionLeague},
		{"Live matches", actionLive},
		{"Search by name", actionSearch},
		{"Refresh data", actionRefresh},
		{"Switch feed", actionSwitchFeed},
		{"Quit", actionQuit},
	}
}

type promptKind int

const (
	promptGame promptKind = iota
	promptLeague
	promptSearch
	promptFeed
)

func (k promptKind) label() string {
	switch k {
	case promptGame:
		return "Game name"
	case promptLeague:
		return "League (partial names match)"
	case promptSearch:
		return "Search match names"
	case promptFeed:
		return "Feed path"
	default:
		return ""
	}
}

// loadedMsg carries the outcome of a feed load back into Update.
type loadedMsg struct {
	feed   string
	result feed.Result
	err    error
}

// Model is the interactive session. Every action filters the full match set
// of the current feed; results never narrow across actions.
type Model struct {
	ctx    context.Context
	loader Loader
	feeds  []string

	state   ViewState
	menu    *listview.Model[menuItem]
	list    *listview.Model[match.Match]
	input   textinput.Model
	spinner spinner.Model
	prompt  promptKind

	// feed is the feed whose matches are in all; loading is the one in flight.
	feed      string
	loading   string
	loaded    bool
	all       []match.Match
	fetchedAt time.Time

	title     string
	status    string
	statusErr bool

	width  int
	height int
	now    func() time.Time
}

// NewModel creates a session over feeds. The first feed is loaded by Init.
func NewModel(ctx context.Context, loader Loader, feeds []string) *Model {
	ti := textinput.New()
	ti.CharLimit = promptCharLimit
	ti.Width = promptWidth

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = HeaderStyle

	m := &Model{
		ctx:     ctx,
		loader:  loader,
		feeds:   feeds,
		state:   ViewStateLoading,
		input:   ti,
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
		now:     time.Now,
	}
	if len(feeds) > 0 {
		m.loading = feeds[0]
	}
	m.menu = listview.New(mainMenuItems(), len(mainMenuItems()), renderMenuItem)
	m.list = listview.New[match.Match](nil, m.listHeight(), renderMatchRow)
	return m
}

// Init starts loading the first feed.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.loading, false))
}

// State returns the current view state.
func (m *Model) State() ViewState {
	return m.state
}

func (m *Model) loadCmd(key string, refresh bool) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		res, err := loader.Load(ctx, key, refresh)
		return loadedMsg{feed: key, result: res, err: err}
	}
}

func (m *Model) startLoad(key string, refresh bool) tea.Cmd {
	m.state = ViewStateLoading
	m.loading = key
	return tea.Batch(m.spinner.Tick, m.loadCmd(key, refresh))
}

// Update handles messages and advances the state machine.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetHeight(m.listHeight())
		return m, nil

	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return m.exit()
		}
	}

	switch m.state {
	case ViewStateMainMenu:
		return m.updateMainMenu(msg)
	case ViewStatePrompt:
		return m.updatePrompt(msg)
	case ViewStateList:
		return m.updateList(msg)
	case ViewStateDetail:
		return m.updateDetail(msg)
	case ViewStateLoading, ViewStateExit:
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) exit() (tea.Model, tea.Cmd) {
	m.state = ViewStateExit
	return m, tea.Quit
}

func (m *Model) handleLoaded(msg loadedMsg) {
	log := logging.FromContext(m.ctx)
	m.state = ViewStateMainMenu
	m.loading = ""

	if msg.err != nil {
		log.Warn().Ctx(m.ctx).
			Str("component", "tui").
			Str("feed", msg.feed).
			Err(msg.err).
			Msg("feed load failed")
		m.statusErr = true
		m.status = fmt.Sprintf("Could not load %s: %v", msg.feed, msg.err)
		if m.loaded {
			m.status += fmt.Sprintf(" (still showing %s)", m.feed)
		}
		return
	}

	res := msg.result
	m.feed = msg.feed
	m.all = res.Matches
	m.fetchedAt = res.FetchedAt
	m.loaded = true

	age := cache.FormatAge(m.now().Sub(res.FetchedAt))
	switch {
	case res.Stale():
		m.statusErr = true
		m.status = fmt.Sprintf("Refresh failed: %v. Showing snapshot from %s ago.", res.FetchErr, age)
	case res.FromCache:
		m.statusErr = false
		m.status = fmt.Sprintf("Loaded %d matches from cache (fetched %s ago).", len(res.Matches), age)
	default:
		m.statusErr = false
		m.status = fmt.Sprintf("Fetched %d matches.", len(res.Matches))
	}
}

func (m *Model) updateMainMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case keyQuit:
		return m.exit()
	case keyEnter:
		item, _ := m.menu.Selected()
		return m.run(item.action)
	default:
		// digits jump straight to a menu entry
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= m.menu.Len() {
			m.menu.Select(int(key[0] - '1'))
			item, _ := m.menu.Selected()
			return m.run(item.action)
		}
		m.menu.Update(keyMsg)
		return m, nil
	}
}

func (m *Model) run(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actionAll:
		m.showList("All matches", m.all)
	case actionGame:
		return m, m.openPrompt(promptGame)
	case actionLeague:
		return m, m.openPrompt(promptLeague)
	case actionLive:
		m.showList("Live matches", match.FilterLive(m.all))
	case actionSearch:
		return m, m.openPrompt(promptSearch)
	case actionRefresh:
		return m, m.startLoad(m.currentFeed(), true)
	case actionSwitchFeed:
		return m, m.openPrompt(promptFeed)
	case actionQuit:
		return m.exit()
	}
	return m, nil
}

func (m *Model) currentFeed() string {
	if m.feed != "" {
		return m.feed
	}
	if len(m.feeds) > 0 {
		return m.feeds[0]
	}
	return ""
}

func (m *Model) suggestions(kind promptKind) []string {
	switch kind {
	case promptGame:
		return match.Games(m.all)
	case promptLeague:
		return match.Leagues(m.all)
	case promptFeed:
		return m.feeds
	default:
		return nil
	}
}

func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	m.prompt = kind
	m.state = ViewStatePrompt

	m.input.Reset()
	m.input.Placeholder = kind.label()
	s := m.suggestions(kind)
	m.input.SetSuggestions(s)
	m.input.ShowSuggestions = len(s) > 0
	return m.input.Focus()
}

func (m *Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.input.Blur()
			m.state = ViewStateMainMenu
			return m, nil
		case keyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			m.input.Blur()
			return m.submitPrompt(value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt(value string) (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptGame:
		m.showList("Game: "+value, match.FilterByGame(m.all, value))
	case promptLeague:
		m.showList("League: "+value, match.FilterByLeague(m.all, value))
	case promptSearch:
		m.showList(fmt.Sprintf("Search: %q", value), match.SearchByName(m.all, value))
	case promptFeed:
		if !strings.HasPrefix(value, "/") {
			value = "/" + value
		}
		return m, m.startLoad(value, false)
	}
	return m, nil
}

func (m *Model) showList(title string, matches []match.Match) {
	m.title = fmt.Sprintf("%s (%d)", title, len(matches))
	m.list.SetItems(matches)
	m.state = ViewStateList
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = ViewStateMainMenu
	case keyQuit:
		return m.exit()
	case keyEnter:
		if _, ok := m.list.Selected(); ok {
			m.state = ViewStateDetail
		}
	default:
		m.list.Update(keyMsg)
	}
	return m, nil
}

func (m *Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = ViewStateList
	case keyQuit:
		return m.exit()
	}
	return m, nil
}

func (m *Model) listHeight() int {
	return max(m.height-chromeHeight, 1)
}

// View renders the current state.
func (m *Model) View() string {
	if m.state == ViewStateExit {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	switch m.state {
	case ViewStateMainMenu:
		sb.WriteString(m.menu.View())
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("↑/↓ move · enter select · 1-8 shortcut · q quit"))
	case ViewStatePrompt:
		sb.WriteString(m.renderPrompt())
	case ViewStateLoading:
		sb.WriteString(m.spinner.View() + " Loading " + m.loading + "...")
	case ViewStateList:
		sb.WriteString(m.renderList())
	case ViewStateDetail:
		if item, ok := m.list.Selected(); ok {
			sb.WriteString(RenderMatchDetail(item))
		}
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render("esc back · q quit"))
	case ViewStateExit:
	}

	if m.status != "" {
		sb.WriteString("\n\n")
		if m.statusErr {
			sb.WriteString(ErrorStyle.Render(m.status))
		} else {
			sb.WriteString(InfoStyle.Render(m.status))
		}
	}
	return sb.String()
}

func (m *Model) renderHeader() string {
	header := HeaderStyle.Render("esmatch")
	if !m.loaded {
		return header
	}
	age := cache.FormatAge(m.now().Sub(m.fetchedAt))
	return header + LabelStyle.Render(fmt.Sprintf("  %s · %d matches · fetched %s ago", m.feed, len(m.all), age))
}

func (m *Model) renderPrompt() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(m.prompt.label()))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	if s := m.suggestions(m.prompt); len(s) > 0 {
		shown := s
		if len(shown) > maxSuggestionHint {
			shown = shown[:maxSuggestionHint]
		}
		hint := "Available: " + strings.Join(shown, ", ")
		if len(s) > len(shown) {
			hint += fmt.Sprintf(" and %d more", len(s)-len(shown))
		}
		sb.WriteString(LabelStyle.Render(hint))
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render("tab complete · enter confirm · esc back"))
	} else {
		sb.WriteString(SubtleStyle.Render("enter confirm · esc back"))
	}
	return sb.String()
}

func (m *Model) renderList() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(m.title))
	sb.WriteString("\n")
	if m.list.Len() == 0 {
		sb.WriteString(WarningStyle.Render("No matches found."))
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("esc back"))
		return sb.String()
	}
	sb.WriteString(LabelStyle.Render(matchListHeader()))
	sb.WriteString("\n")
	sb.WriteString(m.list.View())
	sb.WriteString("\n\n")
	sb.WriteString(SubtleStyle.Render("↑/↓ j/k move · enter details · esc menu · q quit"))
	return sb.String()
}

func renderMenuItem(item menuItem, selected bool) string {
	line := fmt.Sprintf("%d. %s", int(item.action)+1, item.label)
	if selected {
		return SelectedStyle.Render("> " + line)
	}
	return "  " + line
}
