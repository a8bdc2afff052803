package domain

import "time"

// Account is a registered API caller bound to a ledger address. The host
// surface authenticates accounts; the ledger core only ever sees the address.
type Account struct {
	Address      Address   `json:"address"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"created_at"`
}
