package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// EventType identifies a domain event emitted by the loyalty program.
type EventType string

const (
	EventMerchantAdded    EventType = "loyalty.merchant.added"
	EventMerchantRemoved  EventType = "loyalty.merchant.removed"
	EventCustomerRewarded EventType = "loyalty.customer.rewarded"
	EventTokensRedeemed   EventType = "loyalty.tokens.redeemed"
	EventProgramPaused    EventType = "loyalty.program.paused"
	EventProgramUnpaused  EventType = "loyalty.program.unpaused"
)

// Event is an observable record of a successful program operation. Events are
// purely informational: they are consumed by external observers and never
// re-read by the program itself.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	Caller     Address   `json:"caller"`
	Account    Address   `json:"account,omitempty"`
	Amount     string    `json:"amount,omitempty"` // decimal token amount, empty when not applicable
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent builds an event record. amount may be nil for events without one.
func NewEvent(t EventType, caller, account Address, amount *uint256.Int) Event {
	e := Event{
		ID:         uuid.New(),
		Type:       t,
		Caller:     caller,
		Account:    account,
		OccurredAt: time.Now().UTC(),
	}
	if amount != nil {
		e.Amount = amount.Dec()
	}
	return e
}
