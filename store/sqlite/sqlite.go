/*
Package sqlite provides a SQLite-backed store.Provider.

PURPOSE:
  Persists booking and ledger documents in SQLite. The documents keep
  their wire shape (factory package JSON) in a doc column; the tables
  add only the columns queries need (id, date, booking reference).
  In production against a hosted document store the same pattern
  applies - the engine only ever sees decoded snapshots.

KEY TABLES:
  bookings:       id, charter_date, doc, updated_at
  ledger_entries: id, entry_date, booking_id, doc, updated_at

WAL MODE:
  Opened with WAL (Write-Ahead Logging): multiple readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  st, err := sqlite.New("./data/charter.db")
  if err != nil { ... }
  defer st.Close()

SEE ALSO:
  - store/store.go: the Provider contract
  - factory/records.go: document encoding
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/factory"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/store"
)

// Store implements store.Provider using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: writes are serialized by s.mu anyway, and a
	// pooled ":memory:" database would otherwise be per-connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		charter_date TEXT,
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_bookings_charter_date
		ON bookings(charter_date);

	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		entry_date TEXT,
		booking_id TEXT,
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_entries_entry_date
		ON ledger_entries(entry_date);
	CREATE INDEX IF NOT EXISTS idx_ledger_entries_booking
		ON ledger_entries(booking_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

var _ store.Provider = (*Store)(nil)

// =============================================================================
// BOOKINGS
// =============================================================================

func (s *Store) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM bookings ORDER BY charter_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []booking.Booking
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b, err := factory.ParseBooking([]byte(doc))
		if err != nil {
			// A corrupt document degrades itself, not the batch.
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) GetBooking(ctx context.Context, id string) (booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM bookings WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Booking{}, store.ErrNotFound
	}
	if err != nil {
		return booking.Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return factory.ParseBooking([]byte(doc))
}

func (s *Store) SaveBooking(ctx context.Context, b booking.Booking) error {
	doc, err := factory.EncodeBooking(b)
	if err != nil {
		return fmt.Errorf("encode booking %s: %w", b.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, charter_date, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			charter_date = excluded.charter_date,
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		b.ID, factory.FormatDate(b.Date), string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save booking %s: %w", b.ID, err)
	}
	return nil
}

// =============================================================================
// LEDGER ENTRIES
// =============================================================================

func (s *Store) ListEntries(ctx context.Context) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM ledger_entries ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []ledger.Entry
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e, err := factory.ParseEntry([]byte(doc))
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) SaveEntry(ctx context.Context, e ledger.Entry) error {
	doc, err := factory.EncodeEntry(e)
	if err != nil {
		return fmt.Errorf("encode ledger entry %s: %w", e.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, entry_date, booking_id, doc, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date = excluded.entry_date,
			booking_id = excluded.booking_id,
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		string(e.ID), factory.FormatDate(e.Date), e.BookingID, string(doc),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save ledger entry %s: %w", e.ID, err)
	}
	return nil
}
