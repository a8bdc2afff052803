package postgres

import (
	"context"
	"fmt"

	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
)

// EventJournal implements ports.EventJournal: an append-only record of every
// emitted program event. One Append call is one transaction, so a batch
// reward's events land all-or-nothing.
//
// It also implements ports.EventSink so it can be wired directly into the
// program's emission fan-out.
type EventJournal struct {
	pool       Pool
	transactor ports.DBTransactor
}

// NewEventJournal creates a new EventJournal.
func NewEventJournal(pool Pool, transactor ports.DBTransactor) *EventJournal {
	return &EventJournal{pool: pool, transactor: transactor}
}

// Append journals the events in order inside a single transaction.
func (j *EventJournal) Append(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `INSERT INTO ledger_events (id, event_type, caller, account, amount, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, e := range events {
		if _, err := tx.Exec(ctx, query,
			e.ID, string(e.Type), e.Caller.Hex(), e.Account.Hex(), e.Amount, e.OccurredAt,
		); err != nil {
			return fmt.Errorf("insert event %s: %w", e.Type, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit journal tx: %w", err)
	}
	return nil
}

// Publish satisfies ports.EventSink by journaling the emission batch.
func (j *EventJournal) Publish(ctx context.Context, events ...domain.Event) error {
	return j.Append(ctx, events)
}

// Recent returns up to limit events, most recent first.
func (j *EventJournal) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	query := `SELECT id, event_type, caller, account, amount, occurred_at
		FROM ledger_events ORDER BY occurred_at DESC, id LIMIT $1`

	rows, err := j.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			e                     domain.Event
			eventType             string
			callerHex, accountHex string
		)
		if err := rows.Scan(&e.ID, &eventType, &callerHex, &accountHex, &e.Amount, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		e.Type = domain.EventType(eventType)
		if e.Caller, err = domain.AddressFromHex(callerHex); err != nil {
			return nil, fmt.Errorf("decode stored caller: %w", err)
		}
		if e.Account, err = domain.AddressFromHex(accountHex); err != nil {
			return nil, fmt.Errorf("decode stored account: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}
