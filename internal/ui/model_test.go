package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mealplan/internal/plan"
	"mealplan/internal/state"
	"mealplan/internal/storage"
)

func newModel(t *testing.T) (Model, *state.Store, *storage.MemoryBackend) {
	t.Helper()
	b := storage.NewMemoryBackend()
	s := state.Load(b, plan.Default(), zap.NewNop())
	return New(plan.Default(), s, Options{}), s, b
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func press(t *testing.T, m Model, ks ...string) Model {
	t.Helper()
	for _, k := range ks {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

func repeat(k string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = k
	}
	return out
}

func bodyText(m Model) string {
	content, _ := m.renderBody()
	return content
}

func TestModel_StartsOnOverview(t *testing.T) {
	m, _, _ := newModel(t)
	assert.Equal(t, ModeOverview, m.Nav().Mode)

	view := m.View()
	assert.Contains(t, view, "Weekly Meal Plan")
	assert.Contains(t, view, "[s] Shopping List")

	content := bodyText(m)
	assert.Contains(t, content, "Avocado Toast with Poached Egg")
	assert.Contains(t, content, "Day 4")
	assert.Contains(t, content, "View All Recipes →")
	assert.Contains(t, content, "0 of 17 meals done")
}

func TestModel_OverviewEnterOpensRecipe(t *testing.T) {
	m, _, _ := newModel(t)

	// day 1 has four meals and a "view all" row, so five down lands on day 2
	m = press(t, m, append(repeat("down", 5), "enter")...)

	nav := m.Nav()
	assert.Equal(t, ModeDay, nav.Mode)
	assert.Equal(t, 2, nav.Day)
	assert.Equal(t, "day2-breakfast", nav.Expanded)
	assert.Equal(t, 0, m.cursors[ModeDay])

	content := bodyText(m)
	assert.Contains(t, content, "Day 2 Recipes")
	assert.Contains(t, content, "Nutrition:")
	assert.Contains(t, content, "For 1 serving:")
	assert.Contains(t, content, "Why this recipe:")
}

func TestModel_OverviewViewAllRecipes(t *testing.T) {
	m, _, _ := newModel(t)
	m = press(t, m, append(repeat("down", 4), "enter")...)

	nav := m.Nav()
	assert.Equal(t, ModeDay, nav.Mode)
	assert.Equal(t, 1, nav.Day)
	assert.Empty(t, nav.Expanded)
	assert.NotContains(t, bodyText(m), "Nutrition:")
}

func TestModel_SpaceTogglesMeal(t *testing.T) {
	m, s, b := newModel(t)

	m = press(t, m, " ")
	assert.True(t, s.MealDone("day1-breakfast"))
	assert.Contains(t, m.View(), "Meal marked as done")

	raw, ok, err := b.Get(state.MealStatusKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"day1-breakfast":true`)
	for _, k := range []string{state.ShoppingItemsKey, state.RecipeImagesKey} {
		_, ok, _ := b.Get(k)
		assert.True(t, ok, k)
	}

	m = press(t, m, " ")
	assert.False(t, s.MealDone("day1-breakfast"))

	// a fresh store over the same backend sees the saved state
	m = press(t, m, "down", " ")
	reloaded := state.Load(b, plan.Default(), zap.NewNop())
	assert.False(t, reloaded.MealDone("day1-breakfast"))
	assert.True(t, reloaded.MealDone("day1-snack1"))
}

func TestModel_DayNavigationClamps(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, "1", "left")
	assert.Equal(t, ModeDay, m.Nav().Mode)
	assert.Equal(t, 1, m.Nav().Day)

	m = press(t, m, repeat("right", 6)...)
	assert.Equal(t, 4, m.Nav().Day)
	assert.Contains(t, bodyText(m), "Day 4 Recipes")

	m = press(t, m, "h")
	assert.Equal(t, 3, m.Nav().Day)

	// out of range digits do nothing
	m = press(t, m, "9")
	assert.Equal(t, 3, m.Nav().Day)
}

func TestModel_DayEnterTogglesRecipe(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, "1", "enter")
	assert.Equal(t, "day1-breakfast", m.Nav().Expanded)

	m = press(t, m, "enter")
	assert.Empty(t, m.Nav().Expanded)

	m = press(t, m, "enter", "down", "enter")
	assert.Equal(t, "day1-snack1", m.Nav().Expanded)
}

func TestModel_RecipeWithoutSecondServing(t *testing.T) {
	m, _, _ := newModel(t)
	m = press(t, m, "1", "down", "down", "down", "enter")
	require.Equal(t, "day1-dinner", m.Nav().Expanded)

	content := bodyText(m)
	assert.Contains(t, content, "For 1 serving:")
	assert.NotContains(t, content, "For 2 servings:")
}

func TestModel_Tabs(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, "tab")
	assert.Equal(t, ModeDay, m.Nav().Mode)
	assert.Equal(t, 1, m.Nav().Day)

	m = press(t, m, "o", "shift+tab")
	assert.Equal(t, ModeShopping, m.Nav().Mode)

	m = press(t, m, "tab")
	assert.Equal(t, ModeOverview, m.Nav().Mode)
}

func TestModel_ShoppingCategories(t *testing.T) {
	m, _, _ := newModel(t)
	m = press(t, m, "s")
	require.Equal(t, ModeShopping, m.Nav().Mode)
	assert.Len(t, m.targets(), 65)

	content := bodyText(m)
	assert.Contains(t, content, "Shopping List")
	assert.Contains(t, content, "0/60 checked")

	m = press(t, m, "enter")
	assert.Equal(t, "Produce", m.Nav().Category)
	assert.Len(t, m.targets(), 27)

	// Dairy header sits after the 22 produce items
	m = press(t, m, repeat("down", 23)...)
	m = press(t, m, "enter")
	assert.Equal(t, "Dairy & Refrigerated", m.Nav().Category)
	assert.Equal(t, 1, m.cursors[ModeShopping])

	m = press(t, m, "enter")
	assert.Empty(t, m.Nav().Category)
	assert.Len(t, m.targets(), 65)
}

func TestModel_ShoppingCheck(t *testing.T) {
	m, s, _ := newModel(t)

	m = press(t, m, "s", "down", " ")
	assert.True(t, s.ItemChecked("1-loaf-bread"))
	assert.Contains(t, bodyText(m), "1/60 checked")

	m = press(t, m, "enter")
	assert.False(t, s.ItemChecked("1-loaf-bread"))

	// space on a header changes nothing
	press(t, m, "up", " ")
	checked, _ := s.ShoppingProgress()
	assert.Zero(t, checked)
}

func TestModel_ImageUpload(t *testing.T) {
	m, s, _ := newModel(t)
	path := filepath.Join(t.TempDir(), "toast.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0644))

	m = press(t, m, "1", "enter", "i")
	require.True(t, m.prompting)
	assert.Contains(t, m.View(), "Image file:")

	m = press(t, m, path)
	m, cmd := update(t, m, keyMsg("enter"))
	assert.False(t, m.prompting)
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	ref, ok := s.Image("day1-breakfast")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))
	assert.Contains(t, m.View(), "Image saved")
	assert.Contains(t, bodyText(m), "image/png")
}

func TestModel_ImageEmptyPathIsNoop(t *testing.T) {
	m, s, b := newModel(t)

	m = press(t, m, "1", "enter", "i")
	m, cmd := update(t, m, keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.prompting)

	_, ok := s.Image("day1-breakfast")
	assert.False(t, ok)
	_, ok, _ = b.Get(state.RecipeImagesKey)
	assert.False(t, ok)
}

func TestModel_ImageEscCancels(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, "1", "enter", "i", "a", "esc")
	assert.False(t, m.prompting)
	assert.Empty(t, m.input.Value())

	// keys go back to navigation once the prompt is gone
	m = press(t, m, "right")
	assert.Equal(t, 2, m.Nav().Day)
}

func TestModel_ImageNeedsExpandedRecipe(t *testing.T) {
	m, _, _ := newModel(t)

	m, cmd := update(t, press(t, m, "1"), keyMsg("i"))
	assert.False(t, m.prompting)
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "Expand the recipe first")
}

func TestModel_ImageReadFailure(t *testing.T) {
	m, s, _ := newModel(t)

	m, _ = update(t, m, imageEncodedMsg{mealID: "day1-lunch", path: "/nope/pita.jpg", err: errors.New("no such file")})
	_, ok := s.Image("day1-lunch")
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Could not load pita.jpg")
}

func TestModel_WindowSize(t *testing.T) {
	m, _, _ := newModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 32, m.viewport.Height)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	assert.Equal(t, 10, m.viewport.Height)
}

func TestModel_CursorStaysVisible(t *testing.T) {
	m, _, _ := newModel(t)
	m = press(t, m, "s")
	m = press(t, m, repeat("down", 64)...)

	line := m.lines[m.cursors[ModeShopping]]
	assert.GreaterOrEqual(t, line, m.viewport.YOffset)
	assert.Less(t, line, m.viewport.YOffset+m.viewport.Height)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newModel(t)

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_NarrowTerminalKeepsCursorInView(t *testing.T) {
	m, _, _ := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 20})
	require.Equal(t, 30, m.viewport.Width)

	check := func(m Model) {
		t.Helper()
		content, marks := m.renderBody()
		for i, l := range strings.Split(content, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(l), m.viewport.Width, "line %d: %q", i, l)
		}
		assert.Equal(t, marks, m.lines)

		line := m.lines[m.cursors[m.nav.Mode]]
		assert.GreaterOrEqual(t, line, m.viewport.YOffset)
		assert.Less(t, line, m.viewport.YOffset+m.viewport.Height)
	}

	// day 3 dinner has the longest meal name in the plan
	m = press(t, m, "3", "down", "down", "down")
	check(m)
	m = press(t, m, "enter")
	check(m)

	m = press(t, m, "s")
	for range 64 {
		m = press(t, m, "down")
		check(m)
	}
}
