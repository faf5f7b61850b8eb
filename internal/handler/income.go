package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fercho159-aq/cartera/internal/models"
)

// CreateIncomeSource handles income source creation
func (h *Handler) CreateIncomeSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	var src models.IncomeSource
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	created, err := h.svc.CreateIncomeSource(userID, &src)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateIncomeSource handles income source edits, including soft-disabling.
func (h *Handler) UpdateIncomeSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var src models.IncomeSource
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	src.ID = id
	updated, err := h.svc.UpdateIncomeSource(userID, &src)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ListIncomeSources handles income source listing
func (h *Handler) ListIncomeSources(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	sources, err := h.svc.ListIncomeSources(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if sources == nil {
		sources = []models.IncomeSource{}
	}
	writeJSON(w, http.StatusOK, sources)
}

// PostCommission records a commission for a variable income source and
// triggers the average recomputation.
func (h *Handler) PostCommission(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var rec models.CommissionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	rec.IncomeSourceID = id
	created, err := h.svc.PostCommission(userID, &rec)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
