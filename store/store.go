/*
Package store defines the snapshot-provider contract between the
pricing/reconciliation engine and the persisted document collections.

PURPOSE:
  The engine is pure computation over complete input snapshots. It never
  calls persistence itself: orchestration code (the API layer) reads a
  snapshot through Provider, runs the folds, and commits recomputed
  records back through the same interface when the caller asks for it.

IMPLEMENTATIONS:
  - store/sqlite: production store, documents in SQLite
  - store/memory: in-memory store for tests and development
*/
package store

import (
	"context"
	"errors"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/ledger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Provider supplies booking and ledger snapshots and accepts commits.
// List methods return complete collections; the engine treats them as
// read-only input snapshots.
type Provider interface {
	// ListBookings returns the booking collection.
	ListBookings(ctx context.Context) ([]booking.Booking, error)

	// GetBooking returns one booking, or ErrNotFound.
	GetBooking(ctx context.Context, id string) (booking.Booking, error)

	// ListEntries returns the ledger entry collection.
	ListEntries(ctx context.Context) ([]ledger.Entry, error)

	// SaveBooking upserts a booking document.
	SaveBooking(ctx context.Context, b booking.Booking) error

	// SaveEntry upserts a ledger entry document.
	SaveEntry(ctx context.Context, e ledger.Entry) error
}
