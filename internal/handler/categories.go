package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fercho159-aq/cartera/internal/models"
)

// ListCategories returns the merged category catalog for the caller.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	cats, err := h.svc.Categories(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// CreateCategory adds a user-defined category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	created, err := h.svc.CreateCategory(userID, &cat)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
