package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fercho159-aq/cartera/internal/models"
)

// CreateDebt handles debt creation
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	var debt models.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	created, err := h.svc.CreateDebt(userID, &debt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListDebts handles debt listing
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	debts, err := h.svc.ListDebts(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if debts == nil {
		debts = []models.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

// MarkDebtPaid settles a debt
func (h *Handler) MarkDebtPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.MarkDebtPaid(id, userID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
