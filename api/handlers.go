/*
handlers.go - HTTP handlers for the pricing and reconciliation engine

PURPOSE:
  Exposes the engine over REST. Handlers are the orchestration boundary
  around the pure core: they read complete snapshots from the store, run
  the folds with a single captured "now", and commit recomputed records
  only when the caller asks.

ENDPOINTS:
  Pricing:
    POST /api/pricing/recompute   Split + status for one pricing state
    POST /api/pricing/propagate   Apply one unit's pricing to siblings

  Ledger:
    GET  /api/entries             Bucketed entries with summaries
    POST /api/entries             Commit a ledger entry document

  Bookings:
    GET  /api/bookings            All bookings with derived figures
    POST /api/bookings            Commit a booking document
    GET  /api/bookings/pending    Bookings with no ledger entry
    GET  /api/bookings/{id}/owner Owner payout breakdown
    POST /api/bookings/{id}/promote  Draft + commit a ledger entry

ERROR HANDLING:
  Computation never fails: warnings ride inside the response body.
  HTTP errors are reserved for malformed requests (400), unknown
  records (404), and store failures (500).

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/factory"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/logger"
	"github.com/justboats/charter-engine/pricing"
	"github.com/justboats/charter-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Store store.Provider

	// Now supplies the captured timestamp for bucketing passes.
	// Injectable for tests; defaults to time.Now.
	Now func() time.Time

	log zerolog.Logger
}

// NewHandler creates a handler over the given snapshot provider.
func NewHandler(st store.Provider) *Handler {
	return &Handler{
		Store: st,
		Now:   time.Now,
		log:   logger.WithComponent("api"),
	}
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// RecomputePricing derives the installment split and payment status for
// the submitted pricing state. Nothing is persisted; the caller owns
// the commit decision.
func (h *Handler) RecomputePricing(w http.ResponseWriter, r *http.Request) {
	var body factory.PricingJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid pricing payload", err)
		return
	}

	state := factory.PricingFromJSON(body)
	derived, result, changed := pricing.Rederive(state)

	writeJSON(w, http.StatusOK, RecomputeResponse{
		Pricing:       factory.PricingToJSON(derived),
		PaymentStatus: string(derived.Status()),
		Changed:       changed,
		Warnings:      warningDTOs(result.Warnings),
	})
}

// PropagatePricing applies the source pricing configuration across the
// target units, preserving each target's receipt facts.
func (h *Handler) PropagatePricing(w http.ResponseWriter, r *http.Request) {
	var body PropagateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid propagate payload", err)
		return
	}

	targets := make([]pricing.State, len(body.Targets))
	for i, t := range body.Targets {
		targets[i] = factory.PricingFromJSON(t)
	}
	applied := pricing.Propagate(factory.PricingFromJSON(body.Source), targets)

	resp := PropagateResponse{Targets: make([]factory.PricingJSON, len(applied))}
	for i, s := range applied {
		resp.Targets[i] = factory.PricingToJSON(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// ListEntries returns all ledger entries bucketed into past/current/
// future windows, each window with its summary, plus the overall total.
// One "now" is captured for the entire pass.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.Store.ListEntries(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}
	owners, err := h.ownerSummariesByBooking(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}

	now := h.Now()
	partitioned := ledger.Partition(now, entries)

	buckets := make(map[string]BucketGroupDTO, len(ledger.Buckets))
	total := ledger.ZeroSummary()
	for _, bucket := range ledger.Buckets {
		var (
			reports []ledger.Report
			dtos    []EntryReportDTO
		)
		for _, e := range partitioned[bucket] {
			report := ledger.BuildReport(e, owners[e.BookingID])
			reports = append(reports, report)
			dtos = append(dtos, reportDTO(report, bucket))
		}
		summary := ledger.Accumulate(reports)
		total = total.Add(summary)
		buckets[string(bucket)] = BucketGroupDTO{Entries: dtos, Summary: summaryDTO(summary)}
	}

	writeJSON(w, http.StatusOK, EntriesResponse{
		AsOf:    now.Format(time.RFC3339),
		Buckets: buckets,
		Total:   summaryDTO(total),
	})
}

// SaveEntry commits a ledger entry document.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var body factory.EntryJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry payload", err)
		return
	}
	entry := factory.EntryFromJSON(body)
	if entry.ID == "" {
		writeError(w, http.StatusBadRequest, "entry id is required", nil)
		return
	}
	if err := h.Store.SaveEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.EntryToJSON(entry))
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// ListBookings returns every booking with its bucket and reconciled
// owner payout summary.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Store.ListBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}

	now := h.Now()
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = bookingDTO(b, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveBooking commits a booking document.
func (h *Handler) SaveBooking(w http.ResponseWriter, r *http.Request) {
	var body factory.BookingJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking payload", err)
		return
	}
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "booking id is required", nil)
		return
	}
	b := factory.BookingFromJSON(body)
	if err := h.Store.SaveBooking(r.Context(), b); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save booking", err)
		return
	}
	writeJSON(w, http.StatusOK, bookingDTO(b, h.Now()))
}

// ListPendingBookings returns bookings with no ledger entry yet.
func (h *Handler) ListPendingBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookings, err := h.Store.ListBookings(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}
	entries, err := h.Store.ListEntries(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	now := h.Now()
	pending := booking.Pending(bookings, entries)
	dtos := make([]BookingDTO, len(pending))
	for i, b := range pending {
		dtos[i] = bookingDTO(b, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetOwnerSummary returns the owner payout breakdown for one booking.
func (h *Handler) GetOwnerSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.Store.GetBooking(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "booking not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load booking", err)
		return
	}
	writeJSON(w, http.StatusOK, ownerSummaryDTO(b.OwnerSummary()))
}

// PromoteBooking drafts a ledger entry from a pending booking and
// commits it. Promoting a booking that already has an entry is a
// conflict: the lifecycle only ever promotes once.
func (h *Handler) PromoteBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	b, err := h.Store.GetBooking(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "booking not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load booking", err)
		return
	}

	entries, err := h.Store.ListEntries(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}
	for _, e := range entries {
		if e.BookingID == id {
			writeError(w, http.StatusConflict, "booking already has a ledger entry", nil)
			return
		}
	}

	entry := booking.PromoteToEntry(b)
	if err := h.Store.SaveEntry(ctx, entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save entry", err)
		return
	}

	h.log.Info().Str("booking", id).Str("entry", string(entry.ID)).
		Msg("promoted pending booking to ledger entry")
	writeJSON(w, http.StatusCreated, factory.EntryToJSON(entry))
}

// =============================================================================
// HELPERS
// =============================================================================

// ownerSummariesByBooking reconciles every booking's legs once so the
// entry fold can look summaries up by reference. Entries without a
// booking get the zero summary.
func (h *Handler) ownerSummariesByBooking(ctx context.Context) (map[string]ledger.OwnerSummary, error) {
	bookings, err := h.Store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ledger.OwnerSummary, len(bookings))
	for _, b := range bookings {
		out[b.ID] = b.OwnerSummary()
	}
	return out, nil
}

func bookingDTO(b booking.Booking, now time.Time) BookingDTO {
	return BookingDTO{
		BookingJSON:  factory.BookingToJSON(b),
		Bucket:       string(ledger.BucketFor(now, b.Date)),
		OwnerSummary: ownerSummaryDTO(b.OwnerSummary()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		l := logger.WithComponent("api")
		l.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	l := logger.WithComponent("api")
	evt := l.Warn()
	if status >= http.StatusInternalServerError {
		evt = l.Error()
	}
	evt.Err(err).Int("status", status).Msg(message)

	body := map[string]string{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
