package ui

type targetKind int

const (
	targetMeal targetKind = iota
	targetViewDay
	targetCategory
	targetItem
)

// target is one cursor stop in the current view.
type target struct {
	kind     targetKind
	day      int
	mealID   string
	category string
	itemID   string
}

// targets lists the cursor stops of the active view, top to bottom.
func (m Model) targets() []target {
	var out []target
	switch m.nav.Mode {
	case ModeOverview:
		for _, d := range m.plan.Days {
			for _, meal := range d.Meals {
				out = append(out, target{kind: targetMeal, day: d.Number, mealID: meal.ID})
			}
			out = append(out, target{kind: targetViewDay, day: d.Number})
		}
	case ModeDay:
		d, _ := m.plan.Day(m.nav.Day)
		for _, meal := range d.Meals {
			out = append(out, target{kind: targetMeal, day: d.Number, mealID: meal.ID})
		}
	case ModeShopping:
		for _, c := range m.plan.Shopping {
			out = append(out, target{kind: targetCategory, category: c.Name})
			if !m.nav.CategoryOpen(c.Name) {
				continue
			}
			for _, it := range c.Items {
				out = append(out, target{kind: targetItem, category: c.Name, itemID: it.ID})
			}
		}
	}
	return out
}

func (m Model) current() (target, bool) {
	ts := m.targets()
	c := m.cursors[m.nav.Mode]
	if c < 0 || c >= len(ts) {
		return target{}, false
	}
	return ts[c], true
}

func (m Model) mealIndex(day int, mealID string) int {
	d, _ := m.plan.Day(day)
	for i, meal := range d.Meals {
		if meal.ID == mealID {
			return i
		}
	}
	return 0
}

// categoryIndex is the cursor position of a category header under the
// current expansion.
func (m Model) categoryIndex(name string) int {
	for i, t := range m.targets() {
		if t.kind == targetCategory && t.category == name {
			return i
		}
	}
	return 0
}
