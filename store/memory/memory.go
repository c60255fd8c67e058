// Package memory provides an in-memory store.Provider for tests/dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/store"
)

// Memory implements store.Provider with maps guarded by an RWMutex.
type Memory struct {
	mu       sync.RWMutex
	bookings map[string]booking.Booking
	entries  map[ledger.EntryID]ledger.Entry
}

func New() *Memory {
	return &Memory{
		bookings: make(map[string]booking.Booking),
		entries:  make(map[ledger.EntryID]ledger.Entry),
	}
}

var _ store.Provider = (*Memory)(nil)

func (m *Memory) ListBookings(_ context.Context) ([]booking.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]booking.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetBooking(_ context.Context, id string) (booking.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return booking.Booking{}, store.ErrNotFound
	}
	return b, nil
}

func (m *Memory) ListEntries(_ context.Context) ([]ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ledger.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveBooking(_ context.Context, b booking.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return nil
}

func (m *Memory) SaveEntry(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}
