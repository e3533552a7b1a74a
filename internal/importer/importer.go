// Package importer turns a recipe URL into a catalog entry: scrape the page,
// generate an illustration, create the recipe.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/store"
)

// Importer runs the sequential import workflow.
type Importer struct {
	store   *store.Store
	scraper gateway.Scraper
	images  gateway.ImageGenerator
	logger  *slog.Logger
}

// New creates an importer. images may be nil when generation is not
// configured; imports then proceed without illustrations.
func New(s *store.Store, scraper gateway.Scraper, images gateway.ImageGenerator, logger *slog.Logger) *Importer {
	return &Importer{store: s, scraper: scraper, images: images, logger: logger}
}

// ImportFromURL scrapes url and creates a new recipe with the content in the
// active language's slot only, prepended to the collection (newest first).
// A failed scrape short-circuits the workflow with apperr.ErrImport and no
// collection mutation; a failed image generation is non-fatal and the recipe
// is created without an image.
func (im *Importer) ImportFromURL(ctx context.Context, url string, lang models.Language) (*models.Recipe, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperr.ErrValidation
	}

	content, err := im.scraper.ScrapeRecipe(ctx, url, lang)
	if err != nil {
		im.logger.Warn("import: scrape failed", slog.String("url", url), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperr.ErrImport, url)
	}
	if content.Empty() {
		return nil, fmt.Errorf("%w: %s", apperr.ErrImport, url)
	}

	image := ""
	if im.images != nil {
		image, err = im.images.GenerateImage(ctx, content.Title)
		if err != nil {
			im.logger.Warn("import: image generation failed, continuing without image",
				slog.String("url", url), slog.String("error", err.Error()))
			image = ""
		}
	}

	recipe := &models.Recipe{
		ID:        models.NewID(),
		CreatedAt: time.Now().UnixMilli(),
		Image:     image,
	}
	recipe.SetContent(lang, content)

	if err := im.store.AddRecipe(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
