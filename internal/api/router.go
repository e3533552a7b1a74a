package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)
	ih := NewImageHandler(svc.Images)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Recipes CRUD.
	r.Get("/recipes", h.ListRecipes)
	r.Post("/recipes", h.CreateRecipe)
	r.Get("/recipes/{id}", h.GetRecipe)
	r.Put("/recipes/{id}", h.UpdateRecipe)
	r.Delete("/recipes/{id}", h.DeleteRecipe)
	r.Post("/recipes/{id}/image", h.GenerateRecipeImage)
	r.Post("/recipes/{id}/export", h.ExportRecipe)

	// Import from URL.
	r.Post("/import", h.ImportRecipe)

	// Categories.
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	// Recipe editor drafts.
	r.Post("/drafts", h.OpenDraft)
	r.Get("/drafts/{id}", h.GetDraft)
	r.Patch("/drafts/{id}", h.EditDraft)
	r.Post("/drafts/{id}/commit", h.CommitDraft)
	r.Delete("/drafts/{id}", h.DiscardDraft)

	// Catalog view sessions.
	r.Post("/views", h.OpenView)
	r.Patch("/views/{id}", h.UpdateView)
	r.Get("/views/{id}/events", h.StreamView)
	r.Delete("/views/{id}", h.CloseView)

	// Image upload (auth-protected; serving is mounted outside /api).
	r.Post("/images", ih.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
