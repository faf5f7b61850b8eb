package handler

import (
	"net/http"
	"strconv"

	"github.com/fercho159-aq/cartera/internal/models"
)

// Forecast handles the cash-flow projection request. Scoping parameters:
// account_id selects a shared ledger, months sets the horizon (default 3).
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	accountID, err := queryAccountID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 {
			h.writeError(w, models.ErrValidation)
			return
		}
	}

	result, err := h.svc.GenerateForecast(userID, accountID, months)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
