// Package translate fills absent content slots on first display. A recipe
// created in one language gets its other-language content fetched lazily the
// first time an observer renders that language, then cached permanently into
// the collection.
package translate

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/store"
)

// Notify is called after a translation lands in the collection.
type Notify func(recipeID string, lang models.Language)

// Coordinator issues at most one in-flight translation per
// (recipe, target language) pair, process-wide. Simultaneous observers of
// the same gap share the pending result instead of issuing redundant
// gateway calls.
type Coordinator struct {
	store      *store.Store
	translator gateway.Translator
	logger     *slog.Logger
	notify     Notify

	group singleflight.Group
}

// New creates a coordinator.
func New(s *store.Store, translator gateway.Translator, logger *slog.Logger) *Coordinator {
	return &Coordinator{store: s, translator: translator, logger: logger}
}

// SetNotify registers a completion hook. Must be called before concurrent use.
func (c *Coordinator) SetNotify(fn Notify) {
	c.notify = fn
}

// EnsureContent returns the recipe's content in lang, fetching a translation
// from the present-language slot if the requested slot is absent. On success
// the result is merged into the collection (only the target slot changes)
// before returning.
//
// A failed fetch stores nothing: the next display of this recipe triggers a
// fresh attempt, with no backoff and no failure marker. If the caller's ctx
// is cancelled while the shared flight is pending, that caller gets ctx.Err()
// and must not render the eventual result; the flight itself continues for
// other observers and the merge still lands.
func (c *Coordinator) EnsureContent(ctx context.Context, recipeID string, lang models.Language) (*models.RecipeContent, error) {
	r, err := c.store.RecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	if content := r.Content(lang); content != nil {
		return content, nil
	}
	source := r.Content(lang.Other())
	if source == nil {
		return nil, fmt.Errorf("translate: recipe %s has no content in either language", recipeID)
	}
	if c.translator == nil {
		return nil, fmt.Errorf("translate: no translator configured")
	}

	key := recipeID + ":" + string(lang)
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetch(flightCtx, recipeID, source.Clone(), lang)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.RecipeContent), nil
	}
}

func (c *Coordinator) fetch(ctx context.Context, recipeID string, source *models.RecipeContent, lang models.Language) (*models.RecipeContent, error) {
	translated, err := c.translator.Translate(ctx, source, lang)
	if err != nil {
		c.logger.Warn("translation failed",
			slog.String("recipe", recipeID),
			slog.String("lang", string(lang)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperr.ErrTranslate, err)
	}
	if translated.Empty() {
		c.logger.Warn("translation returned empty content",
			slog.String("recipe", recipeID),
			slog.String("lang", string(lang)))
		return nil, fmt.Errorf("%w: empty result for recipe %s", apperr.ErrTranslate, recipeID)
	}

	// Merge only the target slot; the recipe may have been edited or removed
	// while the gateway call was in flight (last write wins).
	if err := c.store.SetRecipeContent(recipeID, lang, translated); err != nil {
		return nil, fmt.Errorf("translate: merging result: %w", err)
	}
	if c.notify != nil {
		c.notify(recipeID, lang)
	}
	return translated, nil
}
