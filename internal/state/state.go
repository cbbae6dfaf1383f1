// Package state owns the three pieces of user state the meal plan keeps
// between runs: which meals are done, which shopping items are checked, and
// the image attached to each meal.
package state

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"mealplan/internal/plan"
	"mealplan/internal/storage"
)

// Storage keys. They match the keys the plan has always been saved under so
// existing exports keep loading.
const (
	MealStatusKey    = "oaklandFreshMealStatus"
	ShoppingItemsKey = "oaklandFreshShoppingItems"
	RecipeImagesKey  = "oaklandFreshRecipeImages"
)

// Store holds the in-memory maps and writes them back after every change.
// It is not safe for concurrent use; all mutations are expected to come from
// a single event loop.
type Store struct {
	backend storage.Backend
	plan    *plan.Plan
	logger  *zap.Logger

	meals  map[string]bool
	items  map[string]bool
	images map[string]string
}

// Load reads the three maps from backend. A key that is missing or does not
// decode falls back to its default; the other keys are unaffected.
func Load(backend storage.Backend, p *plan.Plan, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{backend: backend, plan: p, logger: logger}

	s.meals = loadKey(s, MealStatusKey, s.defaultMeals)
	s.items = loadKey(s, ShoppingItemsKey, s.defaultItems)
	s.images = loadKey(s, RecipeImagesKey, func() map[string]string { return map[string]string{} })
	return s
}

func loadKey[V any](s *Store, key string, def func() map[string]V) map[string]V {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("Failed to read saved state, using defaults", zap.String("key", key), zap.Error(err))
		return def()
	}
	if !ok || raw == "" {
		return def()
	}

	var out map[string]V
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("Error parsing saved state, using defaults", zap.String("key", key), zap.Error(err))
		return def()
	}
	if out == nil {
		// "null" decodes without error
		return def()
	}
	return out
}

func (s *Store) defaultMeals() map[string]bool {
	m := make(map[string]bool)
	for _, id := range s.plan.MealIDs() {
		m[id] = false
	}
	return m
}

func (s *Store) defaultItems() map[string]bool {
	m := make(map[string]bool)
	for _, id := range s.plan.ItemIDs() {
		m[id] = false
	}
	return m
}

// MealDone reports whether meal id is marked complete.
func (s *Store) MealDone(id string) bool { return s.meals[id] }

// ItemChecked reports whether shopping item id is checked off.
func (s *Store) ItemChecked(id string) bool { return s.items[id] }

// Image returns the image reference stored for a meal.
func (s *Store) Image(mealID string) (string, bool) {
	ref, ok := s.images[mealID]
	return ref, ok
}

// ToggleMeal flips the completion flag for id and returns the new value.
// Unknown ids start from false.
func (s *Store) ToggleMeal(id string) bool {
	s.meals[id] = !s.meals[id]
	s.persist()
	return s.meals[id]
}

// ToggleItem flips the checked flag for a shopping item and returns the new value.
func (s *Store) ToggleItem(id string) bool {
	s.items[id] = !s.items[id]
	s.persist()
	return s.items[id]
}

// SetImage attaches ref to a meal, replacing any earlier image.
func (s *Store) SetImage(mealID, ref string) {
	s.images[mealID] = ref
	s.persist()
}

// Reset clears every completion and checked flag. Images are kept.
func (s *Store) Reset() {
	s.meals = s.defaultMeals()
	s.items = s.defaultItems()
	s.persist()
}

// Progress counts completed meals out of the meals in the plan. Orphaned
// entries are ignored.
func (s *Store) Progress() (done, total int) {
	for _, id := range s.plan.MealIDs() {
		total++
		if s.meals[id] {
			done++
		}
	}
	return done, total
}

// DayProgress is Progress restricted to one day.
func (s *Store) DayProgress(day int) (done, total int) {
	d, ok := s.plan.Day(day)
	if !ok {
		return 0, 0
	}
	for _, m := range d.Meals {
		total++
		if s.meals[m.ID] {
			done++
		}
	}
	return done, total
}

// ShoppingProgress counts checked items out of the items in the plan.
func (s *Store) ShoppingProgress() (checked, total int) {
	for _, id := range s.plan.ItemIDs() {
		total++
		if s.items[id] {
			checked++
		}
	}
	return checked, total
}

// persist writes all three maps. Failures are logged and not retried.
func (s *Store) persist() {
	for _, e := range []struct {
		key string
		v   any
	}{
		{MealStatusKey, s.meals},
		{ShoppingItemsKey, s.items},
		{RecipeImagesKey, s.images},
	} {
		if err := s.write(e.key, e.v); err != nil {
			s.logger.Error("Failed to save state", zap.String("key", e.key), zap.Error(err))
		}
	}
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.backend.Set(key, string(data))
}
