// Package gateway defines the external capability boundaries consumed by the
// catalog core: translation, URL scraping, image generation, document export,
// and user confirmation. Each is a black box; failures surface as errors and
// never leave the collections partially updated.
package gateway

import (
	"context"

	"github.com/saborlab/sabor/internal/models"
)

// Translator produces equivalent content in the target language.
type Translator interface {
	Translate(ctx context.Context, content *models.RecipeContent, target models.Language) (*models.RecipeContent, error)
}

// Scraper extracts structured recipe content from a web page.
type Scraper interface {
	ScrapeRecipe(ctx context.Context, url string, preferred models.Language) (*models.RecipeContent, error)
}

// ImageGenerator renders an illustration for a prompt and returns a
// reference (URL) to the stored image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Exporter renders a displayed document to a downloadable file. Failures are
// not required to be observable to the core.
type Exporter interface {
	ExportDocument(ctx context.Context, elementID, filename string) error
}

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
