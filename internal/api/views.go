package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saborlab/sabor/internal/catalog"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/view"
)

// OpenView handles POST /api/views: start a catalog view session. The session
// owns the filter state, debounces the text query, and pushes recomputed
// snapshots on its event stream.
//
//	@Summary		Open a catalog view session
//	@Tags			views
//	@Accept			json
//	@Produce		json
//	@Param			body	body		OpenViewRequest	false	"Display language (defaults to Hebrew)"
//	@Success		201		{object}	ViewResponse
//	@Security		BearerAuth
//	@Router			/views [post]
func (h *Handler) OpenView(w http.ResponseWriter, r *http.Request) {
	var req OpenViewRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	lang := req.Language
	if !lang.Valid() {
		lang = models.LanguageHE
	}
	sess := h.svc.Views.Open(lang)
	writeJSON(w, http.StatusCreated, ViewResponse{SessionID: sess.ID(), Snapshot: sess.Snapshot()})
}

// UpdateView handles PATCH /api/views/{id}: apply filter, ordering, or
// language changes. Free-text changes go through the session's debounce, so
// the returned snapshot reflects the previous query until it settles; every
// other input takes effect immediately.
//
//	@Summary		Update a view session's inputs
//	@Tags			views
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Session id"
//	@Param			body	body		ViewStateRequest	true	"Inputs to change"
//	@Success		200		{object}	ViewResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/views/{id} [patch]
func (h *Handler) UpdateView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.svc.Views.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var req ViewStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	if req.InTitle != nil || req.InIngredients != nil {
		inTitle, inIngredients := true, true
		if req.InTitle != nil {
			inTitle = *req.InTitle
		}
		if req.InIngredients != nil {
			inIngredients = *req.InIngredients
		}
		sess.SetFilters(inTitle, inIngredients)
	}
	if req.CategoryID != nil {
		sess.SetCategory(*req.CategoryID)
	}
	if req.Sort != nil {
		sess.SetSort(catalog.SortOption(*req.Sort))
	}
	if req.Language != nil && req.Language.Valid() {
		sess.SetLanguage(*req.Language)
	}
	if req.Query != nil {
		sess.SetQuery(*req.Query)
	}

	writeJSON(w, http.StatusOK, ViewResponse{SessionID: sess.ID(), Snapshot: sess.Snapshot()})
}

// StreamView handles GET /api/views/{id}/events: an SSE stream of recomputed
// snapshots for one session.
//
//	@Summary		Stream view snapshots
//	@Tags			views
//	@Produce		text/event-stream
//	@Param			id	path	string	true	"Session id"
//	@Success		200
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/views/{id}/events [get]
func (h *Handler) StreamView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.svc.Views.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSnapshot(w, sess.Snapshot()); err != nil {
		return
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.Done():
			return
		case snap, ok := <-sess.Events():
			if !ok {
				return
			}
			if err := writeSnapshot(w, snap); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap view.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: view\ndata: %s\n\n", payload)
	return err
}

// CloseView handles DELETE /api/views/{id}: tear the session down. In-flight
// translation fetches issued by the session stop delivering to it.
//
//	@Summary		Close a view session
//	@Tags			views
//	@Param			id	path	string	true	"Session id"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/views/{id} [delete]
func (h *Handler) CloseView(w http.ResponseWriter, r *http.Request) {
	h.svc.Views.Close(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
