// Package models defines the domain types for Sabor.
package models

import "github.com/google/uuid"

// Language identifies one of the two supported locales. The value doubles as
// the content-slot key on Recipe and Category.
type Language string

const (
	LanguageHE Language = "he"
	LanguageES Language = "es"
)

// Valid reports whether l is a supported locale.
func (l Language) Valid() bool {
	return l == LanguageHE || l == LanguageES
}

// Other returns the opposite locale.
func (l Language) Other() Language {
	if l == LanguageHE {
		return LanguageES
	}
	return LanguageHE
}

// Unit is a measurement unit. Known values are listed below, but free-form
// strings coming from imports are preserved as-is.
type Unit string

const (
	UnitGram    Unit = "gram"
	UnitKg      Unit = "kg"
	UnitTsp     Unit = "tsp"
	UnitTbsp    Unit = "tbsp"
	UnitCup     Unit = "cup"
	UnitPinch   Unit = "pinch"
	UnitDrizzle Unit = "drizzle"
	UnitUnits   Unit = "units"
	UnitMl      Unit = "ml"
	UnitLiters  Unit = "liters"
)

// Ingredient is one line of a recipe's ingredient list. ID is generated at
// creation and stays stable across edits; it is the reconciliation key for
// ordered editing. Category is a free-form section label ("dough", "glaze"),
// unrelated to the catalog Category entity.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     Unit    `json:"unit"`
	Category string  `json:"category"`
}

// PrepStep is one preparation step. Same identity discipline as Ingredient.
type PrepStep struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// RecipeContent is one locale's rendering of a recipe. It has no identity of
// its own; identity is carried by the owning Recipe.
type RecipeContent struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Ingredients      []Ingredient `json:"ingredients"`
	Instructions     []PrepStep   `json:"instructions"`
	Notes            string       `json:"notes,omitempty"`
	OvenInstructions string       `json:"ovenInstructions,omitempty"`
}

// Empty reports whether the content carries nothing displayable.
func (c *RecipeContent) Empty() bool {
	return c == nil || (c.Title == "" && len(c.Ingredients) == 0 && len(c.Instructions) == 0)
}

// Clone returns a deep copy.
func (c *RecipeContent) Clone() *RecipeContent {
	if c == nil {
		return nil
	}
	out := *c
	out.Ingredients = append([]Ingredient(nil), c.Ingredients...)
	out.Instructions = append([]PrepStep(nil), c.Instructions...)
	return &out
}

// Recipe is the catalog entity. CategoryID is a weak reference resolved
// against the current category collection at read time; it may dangle to
// "uncategorized" after a category delete. At least one content slot is
// always present; the other being nil is an expected transient state pending
// translation, not a corruption.
type Recipe struct {
	ID         string         `json:"id"`
	CreatedAt  int64          `json:"createdAt"`
	Image      string         `json:"image,omitempty"`
	CategoryID string         `json:"categoryId,omitempty"`
	HE         *RecipeContent `json:"he,omitempty"`
	ES         *RecipeContent `json:"es,omitempty"`
}

// Content returns the content slot for lang, which may be nil.
func (r *Recipe) Content(lang Language) *RecipeContent {
	if lang == LanguageHE {
		return r.HE
	}
	return r.ES
}

// SetContent assigns the content slot for lang.
func (r *Recipe) SetContent(lang Language, c *RecipeContent) {
	if lang == LanguageHE {
		r.HE = c
	} else {
		r.ES = c
	}
}

// HasContent reports whether at least one content slot is present.
func (r *Recipe) HasContent() bool {
	return r.HE != nil || r.ES != nil
}

// Contents returns the present content slots, HE first.
func (r *Recipe) Contents() []*RecipeContent {
	var out []*RecipeContent
	if r.HE != nil {
		out = append(out, r.HE)
	}
	if r.ES != nil {
		out = append(out, r.ES)
	}
	return out
}

// DisplayTitle returns the title in lang, falling back to whichever content
// is present.
func (r *Recipe) DisplayTitle(lang Language) string {
	if c := r.Content(lang); c != nil {
		return c.Title
	}
	if c := r.Content(lang.Other()); c != nil {
		return c.Title
	}
	return ""
}

// Clone returns a deep copy, supporting the replace-whole-collection
// discipline: mutations work on copies and swap in a new collection value.
func (r *Recipe) Clone() *Recipe {
	out := *r
	out.HE = r.HE.Clone()
	out.ES = r.ES.Clone()
	return &out
}

// CloneRecipes deep-copies a recipe collection.
func CloneRecipes(in []*Recipe) []*Recipe {
	out := make([]*Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// Category is a catalog grouping with mandatory labels in both locales.
type Category struct {
	ID string `json:"id"`
	HE string `json:"he"`
	ES string `json:"es"`
}

// Label returns the category label in lang.
func (c *Category) Label(lang Language) string {
	if lang == LanguageHE {
		return c.HE
	}
	return c.ES
}

// CloneCategories copies a category collection.
func CloneCategories(in []*Category) []*Category {
	out := make([]*Category, len(in))
	for i, c := range in {
		cc := *c
		out[i] = &cc
	}
	return out
}

// NewID returns a fresh unique identifier.
func NewID() string {
	return uuid.NewString()
}
