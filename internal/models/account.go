package models

import "time"

// Account represents a shared ledger that pools transactions from several users.
// Personal transactions carry no account reference at all.
type Account struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
