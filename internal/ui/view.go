package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"mealplan/internal/format"
	"mealplan/internal/plan"
	"mealplan/internal/state"
)

// body accumulates rendered lines and remembers where each cursor stop
// landed so the viewport can follow the cursor. Lines wider than width are
// wrapped here so one body line is always one viewport row.
type body struct {
	lines  []string
	marks  []int
	cursor int
	width  int
}

func (b *body) add(s string) {
	for _, l := range strings.Split(s, "\n") {
		if b.width > 0 && lipgloss.Width(l) > b.width {
			b.lines = append(b.lines, strings.Split(lipgloss.NewStyle().Width(b.width).Render(l), "\n")...)
			continue
		}
		b.lines = append(b.lines, l)
	}
}

// target records the next cursor stop at the current line and reports
// whether it is the selected one.
func (b *body) target() bool {
	b.marks = append(b.marks, len(b.lines))
	return len(b.marks)-1 == b.cursor
}

func pointer(selected bool) string {
	if selected {
		return cursorStyle.Render("›")
	}
	return " "
}

func (m Model) View() string {
	header := headerStyle.Render("🥗 "+m.plan.Title) + "  " + subtleStyle.Render(m.plan.Dates)

	names := []string{"[o] Overview"}
	for _, d := range m.plan.Days {
		names = append(names, fmt.Sprintf("[%d] Day %d", d.Number, d.Number))
	}
	names = append(names, "[s] Shopping List")

	tabs := make([]string, 0, len(names))
	for i, name := range names {
		if i == m.nav.Tab() {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var commandRow string
	if m.prompting {
		commandRow = m.input.View() + "\n" +
			keyStyle.Render("enter") + ": " + actionStyle.Render("save") + bulletStyle.Render(" • ") +
			keyStyle.Render("esc") + ": " + actionStyle.Render("cancel")
	} else {
		var commands []string
		for _, b := range footerBindings(m.nav.Mode) {
			h := b.Help()
			commands = append(commands, keyStyle.Render(h.Key)+": "+actionStyle.Render(h.Desc))
		}
		commandRow = strings.Join(commands, bulletStyle.Render(" • "))
	}

	// Status message with expiry
	if m.statusMsg != "" && time.Now().Before(m.statusExpiry) {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor))
		commandRow += "\n> " + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		"",
		tabRow,
		m.viewport.View(),
		"",
		commandRow,
	)
}

func (m *Model) renderBody() (string, []int) {
	b := &body{cursor: m.cursors[m.nav.Mode], width: m.viewport.Width}
	switch m.nav.Mode {
	case ModeOverview:
		m.renderOverview(b)
	case ModeDay:
		m.renderDay(b)
	case ModeShopping:
		m.renderShopping(b)
	}
	return strings.Join(b.lines, "\n"), b.marks
}

func (m *Model) renderOverview(b *body) {
	b.add(labelStyle.Render(m.plan.Theme) + " " + subtleStyle.Render(m.plan.Tagline))
	b.add(m.introText())
	b.add("")

	done, total := m.store.Progress()
	b.add(subtleStyle.Render(fmt.Sprintf("%d of %d meals done this week", done, total)))
	b.add("")

	for _, d := range m.plan.Days {
		done, total := m.store.DayProgress(d.Number)
		b.add(cardTitleStyle.Render(fmt.Sprintf("Day %d", d.Number)) + " " +
			subtleStyle.Render(fmt.Sprintf("%d/%d done", done, total)))
		for _, meal := range d.Meals {
			sel := b.target()
			b.add(m.mealLine(meal, sel))
		}
		sel := b.target()
		b.add(pointer(sel) + " " + actionStyle.Render("View All Recipes →"))
		b.add("")
	}
}

func (m *Model) renderDay(b *body) {
	d, ok := m.plan.Day(m.nav.Day)
	if !ok {
		return
	}

	prev, next := keyStyle.Render("← prev"), keyStyle.Render("next →")
	if m.nav.Day <= 1 {
		prev = pendingStyle.Render("← prev")
	}
	if m.nav.Day >= m.plan.DayCount() {
		next = pendingStyle.Render("next →")
	}
	b.add(headerStyle.Render(fmt.Sprintf("Day %d Recipes", d.Number)) + "   " + prev + bulletStyle.Render(" • ") + next)
	b.add("")

	for _, meal := range d.Meals {
		sel := b.target()
		b.add(m.mealLine(meal, sel))

		r, ok := m.plan.Recipe(meal.ID)
		if !ok {
			b.add("")
			continue
		}
		chevron := "▸ show recipe"
		if m.nav.Expanded == meal.ID {
			chevron = "▾ hide recipe"
		}
		b.add("      " + subtleStyle.Render(fmt.Sprintf("⏱ %s · 👥 %s servings", r.Time, r.Servings)) + "  " + keyStyle.Render(chevron))
		if m.nav.Expanded == meal.ID {
			b.add("")
			m.renderRecipe(b, meal, r)
		}
		b.add("")
	}
}

func (m *Model) renderRecipe(b *body, meal plan.Meal, r plan.Recipe) {
	const indent = "      "
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-len(indent)-2, 20))
	add := func(s string) {
		for _, l := range strings.Split(wrap.Render(s), "\n") {
			b.add(indent + l)
		}
	}

	add(m.imageLine(meal))
	add("")
	add(labelStyle.Render("Nutrition:") + " " + r.Nutrition)
	add("")

	add(sectionStyle.Render("Ingredients"))
	add(boldStyle.Render("For 1 serving:"))
	for _, ing := range r.Ingredients1 {
		add("  • " + renderSegments(format.Emphasize(ing)))
	}
	if len(r.Ingredients2) > 0 {
		add(boldStyle.Render("For 2 servings:"))
		for _, ing := range r.Ingredients2 {
			add("  • " + renderSegments(format.Emphasize(ing)))
		}
	}
	add("")

	add(sectionStyle.Render("Instructions"))
	for _, sec := range r.Instructions {
		add(sectionGlyph(sec.Kind()) + " " + sectionStyle.Render(sec.Title))
		for i, step := range sec.Steps {
			add(fmt.Sprintf("  %d. ", i+1) + renderSegments(format.Annotate(step)))
		}
	}

	if r.Justification != "" {
		add("")
		add(labelStyle.Render("Why this recipe:") + " " + r.Justification)
	}
}

func (m *Model) imageLine(meal plan.Meal) string {
	ref, ok := m.store.Image(meal.ID)
	if !ok {
		return subtleStyle.Render(fmt.Sprintf("⬚ Upload an image of this %s (press i)", strings.ToLower(string(meal.Type))))
	}
	info, err := state.DecodeImage(ref)
	if err != nil {
		return doneStyle.Render("🖼 Image attached") + subtleStyle.Render(" · press i to change")
	}
	return doneStyle.Render("🖼 Image attached") +
		subtleStyle.Render(fmt.Sprintf(" %s, %s · press i to change", info.MIME, humanize.Bytes(uint64(info.Size))))
}

func (m *Model) renderShopping(b *body) {
	checked, total := m.store.ShoppingProgress()
	b.add(headerStyle.Render("Shopping List") + "  " + subtleStyle.Render(fmt.Sprintf("%d/%d checked", checked, total)))
	b.add("")

	for _, c := range m.plan.Shopping {
		sel := b.target()
		chevron := "▾"
		if m.nav.Category == c.Name {
			chevron = "▴"
		}
		style := categoryStyle
		if sel {
			style = selectedCategoryStyle
		}
		b.add(pointer(sel) + " " + style.Render(c.Name+" "+chevron))

		if !m.nav.CategoryOpen(c.Name) {
			continue
		}
		for _, it := range c.Items {
			sel := b.target()
			on := m.store.ItemChecked(it.ID)
			name := boldStyle.Render(it.Name)
			if on {
				name = struckStyle.Render(it.Name)
			}
			b.add(pointer(sel) + "   " + checkbox(on) + " " + name)
			if it.ForMeals != "" {
				b.add("         " + subtleStyle.Render(it.ForMeals))
			}
		}
		b.add("")
	}
}

func (m *Model) mealLine(meal plan.Meal, selected bool) string {
	done := m.store.MealDone(meal.ID)
	name := meal.Name
	switch {
	case done:
		name = struckStyle.Render(name)
	case selected:
		name = cursorStyle.Render(name)
	}
	return pointer(selected) + " " + checkbox(done) + " " + badge(meal.Type) + " " + name
}

// introText renders the markdown introduction, cached per width.
func (m *Model) introText() string {
	// leave room for glamour's document margins
	w := max(m.viewport.Width-6, 20)
	if m.intro != "" && m.introWidth == w {
		return m.intro
	}

	out := m.plan.Intro
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme),
		glamour.WithWordWrap(w),
	)
	if err == nil {
		var rendered string
		rendered, err = r.Render(m.plan.Intro)
		if err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	if err != nil {
		m.logger.Warn("Failed to render intro", zap.Error(err))
	}

	m.intro, m.introWidth = out, w
	return out
}

func renderSegments(segs []format.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		switch s.Kind {
		case format.Emphasis:
			b.WriteString(boldStyle.Render(s.Text))
		case format.Time:
			b.WriteString(timeStyle.Render("⏱ " + s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
