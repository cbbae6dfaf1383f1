// Package plan holds the fixed meal plan content: days, meals, recipes and
// the shopping list. The content is embedded at build time and decoded once.
package plan

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed plan.yaml
var planYAML []byte

// MealType is the category tag shown on every meal.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Snack     MealType = "Snack"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Dessert   MealType = "Dessert"
)

// Valid reports whether t is one of the known meal types.
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Snack, Lunch, Dinner, Dessert:
		return true
	}
	return false
}

type Meal struct {
	ID   string   `yaml:"id"`
	Type MealType `yaml:"type"`
	Name string   `yaml:"name"`
}

type Day struct {
	Number int    `yaml:"day"`
	Meals  []Meal `yaml:"meals"`
}

// Section is one titled group of instruction steps ("Prep:", "Cooking:", ...).
type Section struct {
	Title string   `yaml:"title"`
	Steps []string `yaml:"steps"`
}

type Recipe struct {
	Time          string    `yaml:"time"`
	Servings      string    `yaml:"servings"`
	Nutrition     string    `yaml:"nutrition"`
	Ingredients1  []string  `yaml:"ingredients_1"`
	Ingredients2  []string  `yaml:"ingredients_2"`
	Instructions  []Section `yaml:"instructions"`
	Justification string    `yaml:"justification"`
}

type Item struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	ForMeals string `yaml:"for_meals"`
}

type Category struct {
	Name  string `yaml:"category"`
	Items []Item `yaml:"items"`
}

// Plan is the whole fixture. Treat it as read-only after Parse.
type Plan struct {
	Title    string            `yaml:"title"`
	Dates    string            `yaml:"dates"`
	Theme    string            `yaml:"theme"`
	Tagline  string            `yaml:"tagline"`
	Intro    string            `yaml:"intro"`
	Days     []Day             `yaml:"days"`
	Recipes  map[string]Recipe `yaml:"recipes"`
	Shopping []Category        `yaml:"shopping"`

	meals  map[string]Meal
	dayOf  map[string]int
	itemOf map[string]Item
}

var (
	defaultOnce sync.Once
	defaultPlan *Plan
)

// Default returns the embedded plan. It panics if the embedded document is
// malformed, which can only happen with a broken build.
func Default() *Plan {
	defaultOnce.Do(func() {
		p, err := Parse(planYAML)
		if err != nil {
			panic(fmt.Sprintf("plan: embedded fixture: %v", err))
		}
		defaultPlan = p
	})
	return defaultPlan
}

// Parse decodes a plan document and checks that ordinals and identifiers are
// well formed.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := p.index(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) index() error {
	if len(p.Days) == 0 {
		return fmt.Errorf("plan has no days")
	}
	p.meals = make(map[string]Meal)
	p.dayOf = make(map[string]int)
	p.itemOf = make(map[string]Item)

	for i, d := range p.Days {
		if d.Number != i+1 {
			return fmt.Errorf("day %d out of order at position %d", d.Number, i+1)
		}
		for _, m := range d.Meals {
			if m.ID == "" {
				return fmt.Errorf("day %d: meal without id", d.Number)
			}
			if !m.Type.Valid() {
				return fmt.Errorf("meal %s: unknown type %q", m.ID, m.Type)
			}
			if _, dup := p.meals[m.ID]; dup {
				return fmt.Errorf("duplicate meal id %s", m.ID)
			}
			p.meals[m.ID] = m
			p.dayOf[m.ID] = d.Number
		}
	}

	for _, c := range p.Shopping {
		for _, it := range c.Items {
			if it.ID == "" {
				return fmt.Errorf("category %s: item without id", c.Name)
			}
			if _, dup := p.itemOf[it.ID]; dup {
				return fmt.Errorf("duplicate shopping item id %s", it.ID)
			}
			p.itemOf[it.ID] = it
		}
	}
	if p.Recipes == nil {
		p.Recipes = map[string]Recipe{}
	}
	return nil
}

// DayCount is the number of days in the plan.
func (p *Plan) DayCount() int { return len(p.Days) }

// Day returns day n (1-based).
func (p *Plan) Day(n int) (Day, bool) {
	if n < 1 || n > len(p.Days) {
		return Day{}, false
	}
	return p.Days[n-1], true
}

func (p *Plan) Meal(id string) (Meal, bool) {
	m, ok := p.meals[id]
	return m, ok
}

// DayOf returns the day number a meal belongs to, or 0 if the id is unknown.
func (p *Plan) DayOf(mealID string) int {
	return p.dayOf[mealID]
}

// Recipe returns the recipe for a meal. Not every meal has one.
func (p *Plan) Recipe(mealID string) (Recipe, bool) {
	r, ok := p.Recipes[mealID]
	return r, ok
}

func (p *Plan) Item(id string) (Item, bool) {
	it, ok := p.itemOf[id]
	return it, ok
}

func (p *Plan) Category(name string) (Category, bool) {
	for _, c := range p.Shopping {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// MealIDs lists every meal id in day order.
func (p *Plan) MealIDs() []string {
	ids := make([]string, 0, len(p.meals))
	for _, d := range p.Days {
		for _, m := range d.Meals {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// ItemIDs lists every shopping item id in category order.
func (p *Plan) ItemIDs() []string {
	ids := make([]string, 0, len(p.itemOf))
	for _, c := range p.Shopping {
		for _, it := range c.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// SectionKind classifies an instruction section title so the view can pick a
// glyph. "Prep (Dessert):" is still a prep section.
type SectionKind int

const (
	SectionOther SectionKind = iota
	SectionPrep
	SectionCooking
	SectionAssembly
)

func (s Section) Kind() SectionKind {
	t := strings.ToLower(s.Title)
	switch {
	case strings.HasPrefix(t, "prep"):
		return SectionPrep
	case strings.HasPrefix(t, "cooking"):
		return SectionCooking
	case strings.HasPrefix(t, "assembly"):
		return SectionAssembly
	}
	return SectionOther
}
