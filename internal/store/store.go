// Package store holds the persistent recipe and category collections.
//
// Every mutation derives a new collection value from the previous one and
// swaps it in whole (no element is ever mutated in place), so readers always
// observe a consistent snapshot. After each mutation the full collection is
// serialized and written back to durable storage under its fixed key.
package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/checksum"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/storage"
)

// Fixed record keys in durable storage.
const (
	RecipesKey    = "sabor_recipes"
	CategoriesKey = "sabor_categories"
)

// ChangeListener is invoked after any collection change (mutation or reload).
type ChangeListener func()

// Store is the single source of truth for the two collections.
type Store struct {
	provider storage.Provider
	logger   *slog.Logger

	mu         sync.RWMutex
	recipes    []*models.Recipe
	categories []*models.Category
	checksums  map[string]string // last serialized state per key

	listenersMu sync.Mutex
	listeners   []ChangeListener
}

// Open loads both collections from the provider. A collection that is absent
// or unparsable is seeded with its built-in default set; storage trouble on
// load is never fatal.
func Open(provider storage.Provider, logger *slog.Logger) (*Store, error) {
	s := &Store{
		provider:  provider,
		logger:    logger,
		checksums: make(map[string]string),
	}

	recipes, ok := loadCollection[models.Recipe](s, RecipesKey)
	if !ok {
		recipes = SeedRecipes()
		logger.Info("seeded recipe collection", slog.Int("count", len(recipes)))
	}
	categories, ok := loadCollection[models.Category](s, CategoriesKey)
	if !ok {
		categories = SeedCategories()
		logger.Info("seeded category collection", slog.Int("count", len(categories)))
	}

	s.recipes = recipes
	s.categories = categories
	s.persistRecipesLocked()
	s.persistCategoriesLocked()
	return s, nil
}

// loadCollection reads and parses one collection; ok is false when the record
// is absent or corrupt (caller seeds instead).
func loadCollection[T any](s *Store, key string) ([]*T, bool) {
	data, err := s.provider.Load(key)
	if err != nil {
		if err != storage.ErrNoRecord {
			s.logger.Warn("load failed, falling back to seed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	var out []*T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("corrupt record, falling back to seed",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	s.checksums[key] = checksum.Sum(data)
	return out, true
}

// OnChange registers a listener. Must be called before concurrent use.
func (s *Store) OnChange(fn ChangeListener) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Recipes returns the current recipe collection snapshot. Stored entities are
// never mutated in place, so sharing the pointers is safe.
func (s *Store) Recipes() []*models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Recipe(nil), s.recipes...)
}

// RecipeByID returns the recipe with the given id.
func (s *Store) RecipeByID(id string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// AddRecipe prepends a new recipe (newest-first ordering convention).
func (s *Store) AddRecipe(r *models.Recipe) error {
	if !r.HasContent() {
		return apperr.ErrValidation
	}
	s.mu.Lock()
	next := make([]*models.Recipe, 0, len(s.recipes)+1)
	next = append(next, r.Clone())
	next = append(next, s.recipes...)
	s.recipes = next
	s.persistRecipesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateRecipe replaces the recipe with matching id.
func (s *Store) UpdateRecipe(r *models.Recipe) error {
	if !r.HasContent() {
		return apperr.ErrValidation
	}
	s.mu.Lock()
	idx := -1
	for i, cur := range s.recipes {
		if cur.ID == r.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	next := append([]*models.Recipe(nil), s.recipes...)
	next[idx] = r.Clone()
	s.recipes = next
	s.persistRecipesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// DeleteRecipe removes the recipe with the given id.
func (s *Store) DeleteRecipe(id string) error {
	s.mu.Lock()
	next := make([]*models.Recipe, 0, len(s.recipes))
	found := false
	for _, r := range s.recipes {
		if r.ID == id {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	s.recipes = next
	s.persistRecipesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetRecipeContent fills one language slot of the matching recipe, leaving
// every other field untouched. Used by the translation coordinator.
func (s *Store) SetRecipeContent(id string, lang models.Language, content *models.RecipeContent) error {
	if content.Empty() {
		return apperr.ErrValidation
	}
	s.mu.Lock()
	idx := -1
	for i, cur := range s.recipes {
		if cur.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	updated := s.recipes[idx].Clone()
	updated.SetContent(lang, content.Clone())
	next := append([]*models.Recipe(nil), s.recipes...)
	next[idx] = updated
	s.recipes = next
	s.persistRecipesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Categories returns the current category collection snapshot.
func (s *Store) Categories() []*models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Category(nil), s.categories...)
}

// CategoryByID returns the category with the given id.
func (s *Store) CategoryByID(id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// AddCategory appends a category. Validation is the category manager's job.
func (s *Store) AddCategory(c *models.Category) {
	s.mu.Lock()
	cc := *c
	s.categories = append(append([]*models.Category(nil), s.categories...), &cc)
	s.persistCategoriesLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateCategory replaces the category with matching id in place.
func (s *Store) UpdateCategory(c *models.Category) error {
	s.mu.Lock()
	idx := -1
	for i, cur := range s.categories {
		if cur.ID == c.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	cc := *c
	next := append([]*models.Category(nil), s.categories...)
	next[idx] = &cc
	s.categories = next
	s.persistCategoriesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveCategory deletes the category and clears the reference on every
// recipe that pointed at it, as a single transformation over both
// collections. Recipes themselves are never deleted.
func (s *Store) RemoveCategory(id string) error {
	s.mu.Lock()
	nextCats := make([]*models.Category, 0, len(s.categories))
	found := false
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		nextCats = append(nextCats, c)
	}
	if !found {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}

	nextRecipes := append([]*models.Recipe(nil), s.recipes...)
	for i, r := range nextRecipes {
		if r.CategoryID == id {
			cleared := r.Clone()
			cleared.CategoryID = ""
			nextRecipes[i] = cleared
		}
	}

	s.categories = nextCats
	s.recipes = nextRecipes
	s.persistCategoriesLocked()
	s.persistRecipesLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Reload re-reads both collections from the provider and swaps in whatever
// changed since the last load or write-back. Used by the file watcher to pick
// up external edits.
func (s *Store) Reload() error {
	changed := false
	s.mu.Lock()

	if data, err := s.provider.Load(RecipesKey); err == nil {
		if sum := checksum.Sum(data); sum != s.checksums[RecipesKey] {
			var recipes []*models.Recipe
			if err := json.Unmarshal(data, &recipes); err == nil {
				s.recipes = recipes
				s.checksums[RecipesKey] = sum
				changed = true
			} else {
				s.logger.Warn("reload: corrupt recipes record ignored", slog.String("error", err.Error()))
			}
		}
	}
	if data, err := s.provider.Load(CategoriesKey); err == nil {
		if sum := checksum.Sum(data); sum != s.checksums[CategoriesKey] {
			var categories []*models.Category
			if err := json.Unmarshal(data, &categories); err == nil {
				s.categories = categories
				s.checksums[CategoriesKey] = sum
				changed = true
			} else {
				s.logger.Warn("reload: corrupt categories record ignored", slog.String("error", err.Error()))
			}
		}
	}

	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return nil
}

// persistRecipesLocked writes the recipe collection back to storage. An empty
// collection is never persisted: it would overwrite durable state with a
// still-loading blank.
func (s *Store) persistRecipesLocked() {
	if len(s.recipes) == 0 {
		return
	}
	s.persistLocked(RecipesKey, s.recipes)
}

func (s *Store) persistCategoriesLocked() {
	if len(s.categories) == 0 {
		return
	}
	s.persistLocked(CategoriesKey, s.categories)
}

func (s *Store) persistLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("serialize failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.provider.Save(key, data); err != nil {
		s.logger.Warn("write-back failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	s.checksums[key] = checksum.Sum(data)
}
