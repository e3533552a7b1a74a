package api

import (
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/view"
)

// RecipeDetail is a single-recipe response. Translated reports whether the
// requested language's content is present after any lazy fetch.
type RecipeDetail struct {
	Recipe     *models.Recipe `json:"recipe" validate:"required"`
	Translated bool           `json:"translated"`
}

// RecipeListResponse wraps a filtered, ordered recipe listing.
type RecipeListResponse struct {
	Recipes []*models.Recipe `json:"recipes" validate:"required"`
	Total   int              `json:"total" example:"3" validate:"required"`
}

// SaveRecipeRequest is the request body for creating or updating a recipe
// directly (the draft endpoints cover interactive editing).
type SaveRecipeRequest struct {
	Language   models.Language       `json:"language" example:"he" validate:"required"`
	Content    *models.RecipeContent `json:"content" validate:"required"`
	Image      string                `json:"image,omitempty"`
	CategoryID string                `json:"categoryId,omitempty"`
}

// ImportRequest is the request body for importing a recipe from a URL.
type ImportRequest struct {
	URL      string          `json:"url" example:"https://example.com/tarta" validate:"required"`
	Language models.Language `json:"language" example:"es"`
}

// ExportRequest is the request body for exporting a recipe document.
type ExportRequest struct {
	Filename string `json:"filename,omitempty" example:"tiramisu.pdf"`
}

// GenerateImageRequest is the request body for (re)generating an illustration.
type GenerateImageRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	HE string `json:"he" example:"קינוחים"`
	ES string `json:"es" example:"Postres"`
}

// CategoryListResponse wraps the category listing.
type CategoryListResponse struct {
	Categories []*models.Category `json:"categories" validate:"required"`
}

// DeleteResponse reports whether a confirmed deletion went through.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// OpenDraftRequest starts a draft editing session.
type OpenDraftRequest struct {
	RecipeID string          `json:"recipeId,omitempty"`
	Language models.Language `json:"language" example:"he" validate:"required"`
}

// DraftOpRequest applies one editing operation to an open draft.
type DraftOpRequest struct {
	Op         string             `json:"op" example:"addIngredient" validate:"required"`
	Content    *DraftFields       `json:"content,omitempty"`
	Ingredient *models.Ingredient `json:"ingredient,omitempty"`
	Step       *models.PrepStep   `json:"step,omitempty"`
	ItemID     string             `json:"itemId,omitempty"`
	Category   *CategoryRequest   `json:"category,omitempty"`
}

// DraftFields carries scalar draft fields for the "set" operation. Pointer
// fields distinguish "leave unchanged" from "set to empty".
type DraftFields struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	OvenInstructions *string `json:"ovenInstructions,omitempty"`
	Image            *string `json:"image,omitempty"`
	CategoryID       *string `json:"categoryId,omitempty"`
}

// OpenViewRequest starts a catalog view session.
type OpenViewRequest struct {
	Language models.Language `json:"language" example:"he"`
}

// ViewStateRequest updates a view session's inputs. Pointer fields distinguish
// "leave unchanged" from an explicit value.
type ViewStateRequest struct {
	Query         *string          `json:"query,omitempty"`
	InTitle       *bool            `json:"inTitle,omitempty"`
	InIngredients *bool            `json:"inIngredients,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	Sort          *string          `json:"sort,omitempty"`
	Language      *models.Language `json:"language,omitempty"`
}

// ViewResponse returns a view session id with its current snapshot.
type ViewResponse struct {
	SessionID string        `json:"sessionId" validate:"required"`
	Snapshot  view.Snapshot `json:"snapshot"`
}

// ImageUploadResponse is returned after a successful image upload.
type ImageUploadResponse struct {
	URL string `json:"url" example:"/images/0a1b2c3d4e5f.png" validate:"required"`
}
