package api

import (
	"context"
	"log/slog"
	"sync"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/category"
	"github.com/saborlab/sabor/internal/editor"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/images"
	"github.com/saborlab/sabor/internal/importer"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/sse"
	"github.com/saborlab/sabor/internal/store"
	"github.com/saborlab/sabor/internal/translate"
	"github.com/saborlab/sabor/internal/view"
)

// Service bundles the domain components behind the HTTP handlers.
type Service struct {
	Store      *store.Store
	Categories *category.Manager
	Importer   *importer.Importer
	Translator *translate.Coordinator
	Views      *view.Manager
	Exporter   gateway.Exporter
	ImageGen   gateway.ImageGenerator
	Images     *images.Dir
	Broker     *sse.Broker
	Logger     *slog.Logger

	draftsMu sync.Mutex
	drafts   map[string]*editor.Draft
}

// NewService creates the handler-facing facade.
func NewService(s *store.Store, cats *category.Manager, imp *importer.Importer, tr *translate.Coordinator, views *view.Manager, exporter gateway.Exporter, imageGen gateway.ImageGenerator, imgs *images.Dir, broker *sse.Broker, logger *slog.Logger) *Service {
	return &Service{
		Store:      s,
		Categories: cats,
		Importer:   imp,
		Translator: tr,
		Views:      views,
		Exporter:   exporter,
		ImageGen:   imageGen,
		Images:     imgs,
		Broker:     broker,
		Logger:     logger,
		drafts:     make(map[string]*editor.Draft),
	}
}

// OpenDraft creates a draft editing session: a blank draft when recipeID is
// empty, otherwise a draft over the existing recipe's content in lang.
func (s *Service) OpenDraft(ctx context.Context, recipeID string, lang models.Language) (*editor.Draft, error) {
	var d *editor.Draft
	if recipeID == "" {
		d = editor.NewDraft(lang)
	} else {
		r, err := s.Store.RecipeByID(recipeID)
		if err != nil {
			return nil, err
		}
		d = editor.OpenDraft(ctx, r, lang, s.Translator, s.Logger)
	}
	s.draftsMu.Lock()
	s.drafts[d.ID] = d
	s.draftsMu.Unlock()
	return d, nil
}

// Draft returns an open draft by id.
func (s *Service) Draft(id string) (*editor.Draft, error) {
	s.draftsMu.Lock()
	defer s.draftsMu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// CloseDraft discards an open draft.
func (s *Service) CloseDraft(id string) {
	s.draftsMu.Lock()
	delete(s.drafts, id)
	s.draftsMu.Unlock()
}

// CommitDraft applies a draft to the collection and discards it.
func (s *Service) CommitDraft(id string) (*models.Recipe, bool, error) {
	d, err := s.Draft(id)
	if err != nil {
		return nil, false, err
	}
	created := d.RecipeID == ""
	recipe, err := d.Commit(s.Store)
	if err != nil {
		return nil, false, err
	}
	s.CloseDraft(id)
	return recipe, created, nil
}
