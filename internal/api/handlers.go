package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saborlab/sabor/internal/catalog"
	"github.com/saborlab/sabor/internal/category"
	"github.com/saborlab/sabor/internal/editor"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// queryLang reads the lang query parameter, defaulting to Hebrew.
func queryLang(r *http.Request) models.Language {
	lang := models.Language(r.URL.Query().Get("lang"))
	if !lang.Valid() {
		return models.LanguageHE
	}
	return lang
}

// boolParam parses a boolean query parameter with a default for absence.
func boolParam(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func confirmed(r *http.Request) gateway.Confirmer {
	ok := boolParam(r, "confirm", false)
	return gateway.ConfirmerFunc(func(string) bool { return ok })
}

// ListRecipes handles GET /api/recipes: a one-shot run of the view pipeline.
// Interactive surfaces use view sessions instead, which debounce the text
// query and push recomputed snapshots.
//
//	@Summary		List recipes with filtering and ordering
//	@Tags			recipes
//	@Produce		json
//	@Param			q			query		string	false	"Free-text query (AND of whitespace-split terms)"
//	@Param			title		query		bool	false	"Match in titles (default true)"
//	@Param			ingredients	query		bool	false	"Match in ingredient names (default true)"
//	@Param			category	query		string	false	"Category id, or 'all'"
//	@Param			sort		query		string	false	"Ordering"	Enums(newest, oldest, alphabetical)
//	@Param			lang		query		string	false	"Display language"	Enums(he, es)
//	@Success		200			{object}	RecipeListResponse
//	@Security		BearerAuth
//	@Router			/recipes [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	q := catalog.DefaultQuery(queryLang(r))
	q.Text = r.URL.Query().Get("q")
	q.InTitle = boolParam(r, "title", true)
	q.InIngredients = boolParam(r, "ingredients", true)
	if cat := r.URL.Query().Get("category"); cat != "" {
		q.CategoryID = cat
	}
	if sort := r.URL.Query().Get("sort"); sort != "" {
		q.Sort = catalog.SortOption(sort)
	}

	recipes := catalog.View(h.svc.Store.Recipes(), q)
	writeJSON(w, http.StatusOK, RecipeListResponse{Recipes: recipes, Total: len(recipes)})
}

// GetRecipe handles GET /api/recipes/{id}. With translate=true the handler
// waits for a lazy translation fetch when the requested language's slot is
// absent; a failed fetch still returns the recipe, untranslated.
//
//	@Summary		Get a single recipe
//	@Tags			recipes
//	@Produce		json
//	@Param			id			path		string	true	"Recipe id"
//	@Param			lang		query		string	false	"Display language"	Enums(he, es)
//	@Param			translate	query		bool	false	"Fetch missing-language content before responding"
//	@Success		200			{object}	RecipeDetail
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{id} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lang := queryLang(r)

	recipe, err := h.svc.Store.RecipeByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if boolParam(r, "translate", false) && recipe.Content(lang) == nil {
		if _, err := h.svc.Translator.EnsureContent(r.Context(), id, lang); err != nil {
			h.svc.Logger.Warn("get recipe: translation unavailable",
				slog.String("recipe", id), slog.String("error", err.Error()))
		} else if recipe, err = h.svc.Store.RecipeByID(id); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, RecipeDetail{
		Recipe:     recipe,
		Translated: recipe.Content(lang) != nil,
	})
}

// CreateRecipe handles POST /api/recipes: direct creation with content in the
// given language's slot only, prepended to the collection.
//
//	@Summary		Create a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SaveRecipeRequest	true	"Recipe to create"
//	@Success		201		{object}	models.Recipe
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes [post]
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SaveRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !req.Language.Valid() || req.Content == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("language and content are required"))
		return
	}

	d := editor.NewDraft(req.Language)
	d.Content = req.Content
	d.Image = req.Image
	d.CategoryID = req.CategoryID
	recipe, err := d.Commit(h.svc.Store)
	if err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishRecipeEvent("created", recipe.ID)
	writeJSON(w, http.StatusCreated, recipe)
}

// UpdateRecipe handles PUT /api/recipes/{id}: replaces the given language's
// content slot, image, and category reference, leaving the other language's
// slot untouched.
//
//	@Summary		Update a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Recipe id"
//	@Param			body	body		SaveRecipeRequest	true	"Fields to apply"
//	@Success		200		{object}	models.Recipe
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{id} [put]
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")
	var req SaveRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !req.Language.Valid() || req.Content == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("language and content are required"))
		return
	}

	existing, err := h.svc.Store.RecipeByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	updated := existing.Clone()
	updated.SetContent(req.Language, req.Content)
	updated.Image = req.Image
	updated.CategoryID = req.CategoryID
	if err := h.svc.Store.UpdateRecipe(updated); err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishRecipeEvent("updated", id)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /api/recipes/{id}. Deletion requires an
// explicit confirm=true; without it the request is a successful no-op, the
// same contract as a declined confirmation dialog.
//
//	@Summary		Delete a recipe
//	@Tags			recipes
//	@Produce		json
//	@Param			id		path		string	true	"Recipe id"
//	@Param			confirm	query		bool	false	"User confirmed the deletion"
//	@Success		200		{object}	DeleteResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{id} [delete]
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !confirmed(r).Confirm("Delete recipe?") {
		writeJSON(w, http.StatusOK, DeleteResponse{Deleted: false})
		return
	}
	if err := h.svc.Store.DeleteRecipe(id); err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishRecipeEvent("deleted", id)
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}

// GenerateRecipeImage handles POST /api/recipes/{id}/image: renders a fresh
// illustration and stores its URL on the recipe.
//
//	@Summary		Generate an illustration for a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Recipe id"
//	@Param			body	body		GenerateImageRequest	false	"Optional prompt override"
//	@Success		200		{object}	models.Recipe
//	@Failure		404		{object}	errResponse
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{id}/image [post]
func (h *Handler) GenerateRecipeImage(w http.ResponseWriter, r *http.Request) {
	if h.svc.ImageGen == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("image generation is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	recipe, err := h.svc.Store.RecipeByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req GenerateImageRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = recipe.DisplayTitle(queryLang(r))
	}

	url, err := h.svc.ImageGen.GenerateImage(r.Context(), prompt)
	if err != nil {
		h.svc.Logger.Warn("image generation failed",
			slog.String("recipe", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("image generation failed"))
		return
	}

	updated := recipe.Clone()
	updated.Image = url
	if err := h.svc.Store.UpdateRecipe(updated); err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishRecipeEvent("updated", id)
	writeJSON(w, http.StatusOK, updated)
}

// ExportRecipe handles POST /api/recipes/{id}/export: asks the render service
// for a document. The export runs in the background; failures are logged, not
// surfaced, so the response is always 202 for an existing recipe.
//
//	@Summary		Export a recipe document
//	@Tags			recipes
//	@Accept			json
//	@Param			id		path	string			true	"Recipe id"
//	@Param			body	body	ExportRequest	false	"Optional filename hint"
//	@Success		202
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{id}/export [post]
func (h *Handler) ExportRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe, err := h.svc.Store.RecipeByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ExportRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = recipe.DisplayTitle(queryLang(r)) + ".pdf"
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.svc.Exporter.ExportDocument(ctx, "recipe-"+id, filename); err != nil {
			h.svc.Logger.Warn("export failed",
				slog.String("recipe", id), slog.String("error", err.Error()))
		}
	}()
	w.WriteHeader(http.StatusAccepted)
}

// ImportRecipe handles POST /api/import: scrape a URL, generate an
// illustration, create the recipe. A failed scrape aborts the whole import.
//
//	@Summary		Import a recipe from a URL
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ImportRequest	true	"Source URL and target language"
//	@Success		201		{object}	models.Recipe
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import [post]
func (h *Handler) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	lang := req.Language
	if !lang.Valid() {
		lang = models.LanguageHE
	}

	recipe, err := h.svc.Importer.ImportFromURL(r.Context(), req.URL, lang)
	if err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishRecipeEvent("created", recipe.ID)
	writeJSON(w, http.StatusCreated, recipe)
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: h.svc.Store.Categories()})
}

// CreateCategory handles POST /api/categories. Both labels are mandatory.
//
//	@Summary		Create a category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CategoryRequest	true	"Bilingual labels"
//	@Success		201		{object}	models.Category
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	cat, err := h.svc.Categories.Add(category.Labels{HE: req.HE, ES: req.ES})
	if err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishCategoryEvent("created", cat.ID)
	writeJSON(w, http.StatusCreated, cat)
}

// UpdateCategory handles PUT /api/categories/{id}.
//
//	@Summary		Update a category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Category id"
//	@Param			body	body		CategoryRequest	true	"Replacement labels"
//	@Success		200		{object}	models.Category
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id} [put]
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	cat := &models.Category{ID: id, HE: req.HE, ES: req.ES}
	if err := h.svc.Categories.Update(cat); err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishCategoryEvent("updated", id)
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/categories/{id}. Without confirm=true
// the deletion is declined and nothing changes. A confirmed deletion clears
// the category reference on every recipe that pointed at it.
//
//	@Summary		Delete a category
//	@Tags			categories
//	@Produce		json
//	@Param			id		path		string	true	"Category id"
//	@Param			confirm	query		bool	false	"User confirmed the deletion"
//	@Success		200		{object}	DeleteResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirm := confirmed(r)
	if !confirm.Confirm("") {
		writeJSON(w, http.StatusOK, DeleteResponse{Deleted: false})
		return
	}
	if err := h.svc.Categories.Delete(id, confirm); err != nil {
		writeError(w, err)
		return
	}
	h.svc.Broker.PublishCategoryEvent("deleted", id)
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}
