// Package ui is the terminal front end: an overview of the week, one page
// per day with expandable recipes, and the shopping checklist.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mealplan/internal/plan"
	"mealplan/internal/state"
)

const statusTTL = 3 * time.Second

type statusMsg struct {
	message string
	color   string
}

// imageEncodedMsg carries the result of reading and encoding an image file.
type imageEncodedMsg struct {
	mealID string
	path   string
	ref    string
	err    error
}

func showStatus(msg string, color string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: msg, color: color}
	}
}

// encodeImage reads the file off the event loop. The result comes back as
// an imageEncodedMsg and is applied in Update like any other mutation.
func encodeImage(mealID, path string) tea.Cmd {
	return func() tea.Msg {
		ref, err := state.ReadImage(path)
		return imageEncodedMsg{mealID: mealID, path: path, ref: ref, err: err}
	}
}

// Options tune the model. The zero value is usable.
type Options struct {
	Theme  string // glamour style for the intro
	Logger *zap.Logger
}

// Model is the application state: the fixture, the persisted store, and
// everything about what is on screen.
type Model struct {
	plan   *plan.Plan
	store  *state.Store
	logger *zap.Logger
	theme  string

	nav     Nav
	cursors [3]int // per Mode

	viewport viewport.Model
	lines    []int // body line of each target, filled by refresh

	prompting bool
	promptFor string
	input     textinput.Model

	intro      string
	introWidth int

	statusMsg    string
	statusColor  string
	statusExpiry time.Time

	width  int
	height int
}

func New(p *plan.Plan, s *state.Store, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Theme == "" {
		opts.Theme = "dark"
	}

	input := textinput.New()
	input.Placeholder = "path/to/photo.jpg"
	input.Prompt = "Image file: "
	input.CharLimit = 1024

	m := Model{
		plan:        p,
		store:       s,
		logger:      opts.Logger,
		theme:       opts.Theme,
		nav:         NewNav(p.DayCount()),
		viewport:    viewport.New(80, 20),
		input:       input,
		statusColor: "86",
	}
	m.refresh()
	return m
}

// Nav exposes the navigation state.
func (m Model) Nav() Nav { return m.nav }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.setStatus(msg.message, msg.color)
		return m, nil

	case imageEncodedMsg:
		return m.applyImage(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustLayout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKeys(msg)
		}
		cmd := m.handleKeys(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Overview):
		m.nav.ShowOverview()
	case key.Matches(msg, keys.Shopping):
		m.nav.ShowShopping()
	case key.Matches(msg, keys.NextTab):
		m.nav.SetTab(m.nav.Tab() + 1)
	case key.Matches(msg, keys.PrevTab):
		m.nav.SetTab(m.nav.Tab() - 1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, keys.PrevDay):
		if m.nav.Mode == ModeDay && m.nav.PrevDay() {
			m.cursors[ModeDay] = 0
		}
	case key.Matches(msg, keys.NextDay):
		if m.nav.Mode == ModeDay && m.nav.NextDay() {
			m.cursors[ModeDay] = 0
		}
	case key.Matches(msg, keys.Toggle):
		m.toggle()
	case key.Matches(msg, keys.Select):
		m.selectTarget()
	case key.Matches(msg, keys.Image):
		return m.startPrompt()
	default:
		// 1..N jump straight to a day
		if n, err := strconv.Atoi(msg.String()); err == nil && m.nav.ShowDay(n) {
			m.cursors[ModeDay] = 0
		}
	}
	return nil
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.stopPrompt()
		return m, nil
	case "enter":
		mealID := m.promptFor
		path := expandHome(strings.TrimSpace(m.input.Value()))
		m.stopPrompt()
		if path == "" {
			// nothing picked, nothing changes
			return m, nil
		}
		m.logger.Debug("Encoding image", zap.String("meal", mealID), zap.String("path", path))
		return m, encodeImage(mealID, path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startPrompt() tea.Cmd {
	t, ok := m.current()
	if m.nav.Mode != ModeDay || !ok {
		return nil
	}
	if _, hasRecipe := m.plan.Recipe(t.mealID); !hasRecipe || m.nav.Expanded != t.mealID {
		return showStatus("Expand the recipe first (enter)", "226")
	}

	m.prompting = true
	m.promptFor = t.mealID
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) stopPrompt() {
	m.prompting = false
	m.promptFor = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) applyImage(msg imageEncodedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("Image upload failed", zap.String("meal", msg.mealID), zap.String("path", msg.path), zap.Error(msg.err))
		m.setStatus(fmt.Sprintf("❌ Could not load %s", filepath.Base(msg.path)), "196")
		return m, nil
	}

	m.store.SetImage(msg.mealID, msg.ref)
	m.logger.Info("Image attached", zap.String("meal", msg.mealID), zap.Int("bytes", len(msg.ref)))
	m.setStatus("✅ Image saved", "82")
	m.refresh()
	return m, nil
}

func (m *Model) toggle() {
	t, ok := m.current()
	if !ok {
		return
	}
	switch t.kind {
	case targetMeal:
		done := m.store.ToggleMeal(t.mealID)
		m.logger.Debug("Meal toggled", zap.String("meal", t.mealID), zap.Bool("done", done))
		if done {
			m.setStatus("✅ Meal marked as done", "82")
		} else {
			m.setStatus("Meal marked as not done", "196")
		}
	case targetItem:
		checked := m.store.ToggleItem(t.itemID)
		m.logger.Debug("Shopping item toggled", zap.String("item", t.itemID), zap.Bool("checked", checked))
	}
}

func (m *Model) selectTarget() {
	t, ok := m.current()
	if !ok {
		return
	}
	switch t.kind {
	case targetMeal:
		if m.nav.Mode == ModeOverview {
			m.nav.OpenMeal(t.day, t.mealID)
			m.cursors[ModeDay] = m.mealIndex(t.day, t.mealID)
			return
		}
		if _, ok := m.plan.Recipe(t.mealID); ok {
			m.nav.ToggleRecipe(t.mealID)
		}
	case targetViewDay:
		m.nav.ShowDay(t.day)
		m.cursors[ModeDay] = 0
	case targetCategory:
		m.nav.ToggleCategory(t.category)
		m.cursors[ModeShopping] = m.categoryIndex(t.category)
	case targetItem:
		m.toggle()
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.targets())
	if n == 0 {
		return
	}
	c := m.cursors[m.nav.Mode] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.cursors[m.nav.Mode] = c
}

func (m *Model) setStatus(msg, color string) {
	m.statusMsg = msg
	m.statusColor = color
	m.statusExpiry = time.Now().Add(statusTTL)
}

func (m *Model) adjustLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	bodyHeight := m.height - 8
	if bodyHeight < 10 {
		bodyHeight = 10
	}
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
}

// refresh re-renders the body into the viewport and scrolls so the cursor
// stays visible.
func (m *Model) refresh() {
	if n := len(m.targets()); m.cursors[m.nav.Mode] >= n {
		m.cursors[m.nav.Mode] = max(n-1, 0)
	}

	content, lines := m.renderBody()
	m.lines = lines
	m.viewport.SetContent(content)

	c := m.cursors[m.nav.Mode]
	if c >= len(m.lines) {
		return
	}
	line := m.lines[c]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
