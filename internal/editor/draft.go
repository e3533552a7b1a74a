// Package editor holds the transient editable draft of a single recipe's
// content in one language. Drafts live outside the collection; nothing is
// visible to the catalog until Commit.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/category"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/store"
)

// ContentResolver backfills an absent content slot (the lazy translation
// coordinator in production).
type ContentResolver interface {
	EnsureContent(ctx context.Context, recipeID string, lang models.Language) (*models.RecipeContent, error)
}

// Draft is an in-progress edit of one recipe in one language.
type Draft struct {
	ID         string                `json:"id"`
	RecipeID   string                `json:"recipeId,omitempty"` // empty for a new recipe
	Language   models.Language       `json:"language"`
	Content    *models.RecipeContent `json:"content"`
	Image      string                `json:"image,omitempty"`
	CategoryID string                `json:"categoryId,omitempty"`
	// Fallback is set when the draft opened on an untranslated copy because
	// the translation gateway failed; the form shows source-language text.
	Fallback bool `json:"fallback,omitempty"`
}

// NewDraft starts a blank draft for a new recipe in lang.
func NewDraft(lang models.Language) *Draft {
	return &Draft{
		ID:       models.NewID(),
		Language: lang,
		Content:  &models.RecipeContent{},
	}
}

// OpenDraft starts a draft editing an existing recipe in lang. When the
// recipe has no content in lang, the resolver fetches a translation; if that
// fails the draft falls back to the untranslated source content rather than
// an empty form.
func OpenDraft(ctx context.Context, r *models.Recipe, lang models.Language, resolver ContentResolver, logger *slog.Logger) *Draft {
	d := &Draft{
		ID:         models.NewID(),
		RecipeID:   r.ID,
		Language:   lang,
		Image:      r.Image,
		CategoryID: r.CategoryID,
	}

	if content := r.Content(lang); content != nil {
		d.Content = content.Clone()
		return d
	}

	if resolver != nil {
		if translated, err := resolver.EnsureContent(ctx, r.ID, lang); err == nil {
			d.Content = translated.Clone()
			return d
		} else {
			logger.Warn("draft: translation failed, editing untranslated content",
				slog.String("recipe", r.ID), slog.String("error", err.Error()))
		}
	}
	d.Content = r.Content(lang.Other()).Clone()
	d.Fallback = true
	return d
}

// AddIngredient appends a blank ingredient line and returns it.
func (d *Draft) AddIngredient() models.Ingredient {
	ing := models.Ingredient{
		ID:     models.NewID(),
		Amount: 1,
		Unit:   models.UnitUnits,
	}
	d.Content.Ingredients = append(d.Content.Ingredients, ing)
	return ing
}

// UpdateIngredient replaces the ingredient with matching id.
func (d *Draft) UpdateIngredient(ing models.Ingredient) error {
	for i, cur := range d.Content.Ingredients {
		if cur.ID == ing.ID {
			d.Content.Ingredients[i] = ing
			return nil
		}
	}
	return apperr.ErrNotFound
}

// RemoveIngredient drops the ingredient with the given id.
func (d *Draft) RemoveIngredient(id string) {
	out := d.Content.Ingredients[:0]
	for _, ing := range d.Content.Ingredients {
		if ing.ID != id {
			out = append(out, ing)
		}
	}
	d.Content.Ingredients = out
}

// AddStep appends a blank preparation step and returns it.
func (d *Draft) AddStep() models.PrepStep {
	step := models.PrepStep{
		ID:       models.NewID(),
		Category: "General",
	}
	d.Content.Instructions = append(d.Content.Instructions, step)
	return step
}

// UpdateStep replaces the step with matching id.
func (d *Draft) UpdateStep(step models.PrepStep) error {
	for i, cur := range d.Content.Instructions {
		if cur.ID == step.ID {
			d.Content.Instructions[i] = step
			return nil
		}
	}
	return apperr.ErrNotFound
}

// RemoveStep drops the step with the given id.
func (d *Draft) RemoveStep(id string) {
	out := d.Content.Instructions[:0]
	for _, step := range d.Content.Instructions {
		if step.ID != id {
			out = append(out, step)
		}
	}
	d.Content.Instructions = out
}

// QuickAddCategory creates a category inline (identical to the standalone
// add path) and selects it for this draft.
func (d *Draft) QuickAddCategory(m *category.Manager, labels category.Labels) (*models.Category, error) {
	cat, err := m.Add(labels)
	if err != nil {
		return nil, err
	}
	d.CategoryID = cat.ID
	return cat, nil
}

// Validate requires a non-blank title before commit.
func (d *Draft) Validate() error {
	title := strings.TrimSpace(d.Content.Title)
	if err := validation.Validate(title, validation.Required); err != nil {
		return fmt.Errorf("%w: title: %s", apperr.ErrValidation, err)
	}
	return nil
}

// Commit applies the draft to the collection. A new draft creates a recipe
// with content in the draft language's slot only, prepended; an edit draft
// replaces its own language's content, the image, and the category reference,
// leaving the other language's slot untouched.
func (d *Draft) Commit(s *store.Store) (*models.Recipe, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if d.RecipeID == "" {
		r := &models.Recipe{
			ID:         models.NewID(),
			CreatedAt:  time.Now().UnixMilli(),
			Image:      d.Image,
			CategoryID: d.CategoryID,
		}
		r.SetContent(d.Language, d.Content.Clone())
		if err := s.AddRecipe(r); err != nil {
			return nil, err
		}
		return r, nil
	}

	existing, err := s.RecipeByID(d.RecipeID)
	if err != nil {
		return nil, err
	}
	updated := existing.Clone()
	updated.SetContent(d.Language, d.Content.Clone())
	updated.Image = d.Image
	updated.CategoryID = d.CategoryID
	if err := s.UpdateRecipe(updated); err != nil {
		return nil, err
	}
	return updated, nil
}
