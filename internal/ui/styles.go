package ui

import (
	"github.com/charmbracelet/lipgloss"

	"mealplan/internal/plan"
)

var (
	// Tab styles
	tabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236")).
			PaddingLeft(1).
			PaddingRight(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			PaddingLeft(1).
			PaddingRight(1)

	// Checkbox and completion styles
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)  // Green
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))            // Gray
	struckStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	// Command styles
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // Green
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray

	// Header style
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("235")).
			PaddingLeft(1).
			PaddingRight(1)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("0")).
			PaddingLeft(1).
			PaddingRight(1)

	selectedCategoryStyle = categoryStyle.
				Background(lipgloss.Color("57"))
)

// badgeColors follows the meal-type palette: amber, teal, blue, purple, pink.
var badgeColors = map[plan.MealType]lipgloss.Color{
	plan.Breakfast: lipgloss.Color("214"),
	plan.Snack:     lipgloss.Color("37"),
	plan.Lunch:     lipgloss.Color("33"),
	plan.Dinner:    lipgloss.Color("135"),
	plan.Dessert:   lipgloss.Color("205"),
}

func badge(t plan.MealType) string {
	c, ok := badgeColors[t]
	if !ok {
		c = lipgloss.Color("250")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(c).
		PaddingLeft(1).
		PaddingRight(1).
		Render(string(t))
}

func checkbox(on bool) string {
	if on {
		return doneStyle.Render("[x]")
	}
	return pendingStyle.Render("[ ]")
}

// sectionGlyph decorates instruction section titles.
func sectionGlyph(k plan.SectionKind) string {
	switch k {
	case plan.SectionPrep:
		return "🔪"
	case plan.SectionCooking:
		return "🔥"
	case plan.SectionAssembly:
		return "🍽"
	}
	return "•"
}
