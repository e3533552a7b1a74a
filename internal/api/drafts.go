package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/category"
	"github.com/saborlab/sabor/internal/editor"
)

func badOp(msg string) error {
	return fmt.Errorf("%w: %s", apperr.ErrValidation, msg)
}

// OpenDraft handles POST /api/drafts: start a draft editing session, blank
// for a new recipe or over an existing recipe's content.
//
//	@Summary		Open a recipe draft
//	@Tags			drafts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		OpenDraftRequest	true	"Target recipe (optional) and language"
//	@Success		201		{object}	editor.Draft
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drafts [post]
func (h *Handler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	var req OpenDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !req.Language.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("language is required"))
		return
	}
	d, err := h.svc.OpenDraft(r.Context(), req.RecipeID, req.Language)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GetDraft handles GET /api/drafts/{id}.
//
//	@Summary		Get an open draft
//	@Tags			drafts
//	@Produce		json
//	@Param			id	path		string	true	"Draft id"
//	@Success		200	{object}	editor.Draft
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drafts/{id} [get]
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Draft(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// EditDraft handles PATCH /api/drafts/{id}: apply one editing operation and
// return the updated draft.
//
//	@Summary		Apply an editing operation to a draft
//	@Tags			drafts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Draft id"
//	@Param			body	body		DraftOpRequest	true	"Operation"
//	@Success		200		{object}	editor.Draft
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drafts/{id} [patch]
func (h *Handler) EditDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Draft(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req DraftOpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.applyDraftOp(d, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) applyDraftOp(d *editor.Draft, req DraftOpRequest) error {
	switch req.Op {
	case "set":
		if req.Content == nil {
			return badOp("set requires content fields")
		}
		applyDraftFields(d, req.Content)
		return nil
	case "addIngredient":
		d.AddIngredient()
		return nil
	case "updateIngredient":
		if req.Ingredient == nil {
			return badOp("updateIngredient requires an ingredient")
		}
		return d.UpdateIngredient(*req.Ingredient)
	case "removeIngredient":
		d.RemoveIngredient(req.ItemID)
		return nil
	case "addStep":
		d.AddStep()
		return nil
	case "updateStep":
		if req.Step == nil {
			return badOp("updateStep requires a step")
		}
		return d.UpdateStep(*req.Step)
	case "removeStep":
		d.RemoveStep(req.ItemID)
		return nil
	case "quickAddCategory":
		if req.Category == nil {
			return badOp("quickAddCategory requires labels")
		}
		cat, err := d.QuickAddCategory(h.svc.Categories, category.Labels{HE: req.Category.HE, ES: req.Category.ES})
		if err != nil {
			return err
		}
		h.svc.Broker.PublishCategoryEvent("created", cat.ID)
		return nil
	default:
		return badOp("unknown op: " + req.Op)
	}
}

func applyDraftFields(d *editor.Draft, f *DraftFields) {
	if f.Title != nil {
		d.Content.Title = *f.Title
	}
	if f.Description != nil {
		d.Content.Description = *f.Description
	}
	if f.Notes != nil {
		d.Content.Notes = *f.Notes
	}
	if f.OvenInstructions != nil {
		d.Content.OvenInstructions = *f.OvenInstructions
	}
	if f.Image != nil {
		d.Image = *f.Image
	}
	if f.CategoryID != nil {
		d.CategoryID = *f.CategoryID
	}
}

// CommitDraft handles POST /api/drafts/{id}/commit: validate and apply the
// draft to the collection, then discard it.
//
//	@Summary		Commit a draft
//	@Tags			drafts
//	@Produce		json
//	@Param			id	path		string	true	"Draft id"
//	@Success		200	{object}	models.Recipe
//	@Success		201	{object}	models.Recipe
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drafts/{id}/commit [post]
func (h *Handler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	recipe, created, err := h.svc.CommitDraft(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	kind := "updated"
	if created {
		status = http.StatusCreated
		kind = "created"
	}
	h.svc.Broker.PublishRecipeEvent(kind, recipe.ID)
	writeJSON(w, status, recipe)
}

// DiscardDraft handles DELETE /api/drafts/{id}.
//
//	@Summary		Discard a draft
//	@Tags			drafts
//	@Param			id	path	string	true	"Draft id"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/drafts/{id} [delete]
func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.svc.CloseDraft(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
