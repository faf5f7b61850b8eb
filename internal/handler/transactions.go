package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fercho159-aq/cartera/internal/models"
)

// queryAccountID parses the optional account_id ledger selector.
func queryAccountID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("account_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.ErrValidation
	}
	return &id, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, models.ErrValidation
	}
	return &t, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, models.ErrValidation
	}
	return id, nil
}

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.writeError(w, models.ErrValidation)
		return
	}
	created, err := h.svc.CreateTransaction(userID, &tx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTransactions handles transaction listing; due recurring templates are
// materialized before the read.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	accountID, err := queryAccountID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		h.writeError(w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		h.writeError(w, err)
		return
	}
	txs, err := h.svc.ListTransactions(userID, accountID, from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// DeleteTransaction handles transaction deletion
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.DeleteTransaction(id, userID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
