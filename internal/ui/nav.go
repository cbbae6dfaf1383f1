package ui

// Mode is the top-level view. Exactly one is active at a time.
type Mode int

const (
	ModeOverview Mode = iota
	ModeDay
	ModeShopping
)

func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeShopping:
		return "shopping"
	}
	return "overview"
}

// Nav is the navigation state: the active mode, the selected day, the one
// expanded recipe, and the one expanded shopping category. It has no
// rendering and no persistence.
type Nav struct {
	Mode Mode
	Day  int

	// Expanded is the meal whose recipe is open, "" for none.
	Expanded string

	// Category is the only open shopping category. "" means every category
	// is open, which is the starting state.
	Category string

	days int
}

func NewNav(days int) Nav {
	return Nav{Mode: ModeOverview, Day: 1, days: days}
}

func (n *Nav) ShowOverview() { n.Mode = ModeOverview }

func (n *Nav) ShowShopping() { n.Mode = ModeShopping }

// ShowDay switches to day d. Out-of-range days are ignored.
func (n *Nav) ShowDay(d int) bool {
	if d < 1 || d > n.days {
		return false
	}
	n.Mode = ModeDay
	n.Day = d
	return true
}

// OpenMeal shows day d with mealID's recipe expanded.
func (n *Nav) OpenMeal(d int, mealID string) bool {
	if !n.ShowDay(d) {
		return false
	}
	n.Expanded = mealID
	return true
}

// NextDay moves forward one day; on the last day it does nothing.
func (n *Nav) NextDay() bool {
	if n.Day >= n.days {
		return false
	}
	n.Day++
	return true
}

// PrevDay moves back one day; on day 1 it does nothing.
func (n *Nav) PrevDay() bool {
	if n.Day <= 1 {
		return false
	}
	n.Day--
	return true
}

// ToggleRecipe expands mealID, or collapses it if it is already the
// expanded one.
func (n *Nav) ToggleRecipe(mealID string) {
	if n.Expanded == mealID {
		n.Expanded = ""
		return
	}
	n.Expanded = mealID
}

// ToggleCategory makes name the only open category, or returns to all open
// if name already is.
func (n *Nav) ToggleCategory(name string) {
	if n.Category == name {
		n.Category = ""
		return
	}
	n.Category = name
}

// CategoryOpen reports whether a category's items are shown.
func (n Nav) CategoryOpen(name string) bool {
	return n.Category == "" || n.Category == name
}

// Tab indexes the tab row: 0 overview, 1..days the days, days+1 shopping.
func (n Nav) Tab() int {
	switch n.Mode {
	case ModeDay:
		return n.Day
	case ModeShopping:
		return n.days + 1
	}
	return 0
}

func (n Nav) TabCount() int { return n.days + 2 }

// SetTab selects tab i, wrapping around at either end.
func (n *Nav) SetTab(i int) {
	count := n.TabCount()
	i = ((i % count) + count) % count
	switch {
	case i == 0:
		n.ShowOverview()
	case i <= n.days:
		n.ShowDay(i)
	default:
		n.ShowShopping()
	}
}
