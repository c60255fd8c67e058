/*
dto.go - Data transfer objects for API requests and responses

PURPOSE:
  JSON structures for the REST surface. Record shapes reuse the factory
  package's persisted-document types (the field-name contract), wrapped
  here with derived figures and response envelopes. Formatting (currency
  symbols, locale) is the consumer's job; everything here is plain
  numeric fields.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients
  - *Response: response wrappers

SEE ALSO:
  - handlers.go: uses these types
  - factory/records.go: the underlying document shapes
*/
package api

import (
	"github.com/justboats/charter-engine/factory"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
)

// =============================================================================
// PRICING
// =============================================================================

// WarningDTO is one non-fatal finding attached to a computation.
type WarningDTO struct {
	Code   string `json:"code"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// RecomputeResponse is the outcome of a pricing recomputation: the full
// current pricing state plus its derived status, never a diff.
type RecomputeResponse struct {
	Pricing       factory.PricingJSON `json:"pricing"`
	PaymentStatus string              `json:"paymentStatus"`
	Changed       bool                `json:"changed"`
	Warnings      []WarningDTO        `json:"warnings,omitempty"`
}

// PropagateRequest applies the source unit's pricing configuration to
// every target unit.
type PropagateRequest struct {
	Source  factory.PricingJSON   `json:"source"`
	Targets []factory.PricingJSON `json:"targets"`
}

type PropagateResponse struct {
	Targets []factory.PricingJSON `json:"targets"`
}

// =============================================================================
// OWNER PAYOUTS
// =============================================================================

type LegDetailDTO struct {
	factory.OwnerLegJSON
	Due     bool `json:"due"`
	Settled bool `json:"settled"`
}

// OwnerSummaryDTO mirrors the derived owner payment summary.
type OwnerSummaryDTO struct {
	OwnerTotalDue          factory.Amount          `json:"ownerTotalDue"`
	OwnerPaidAmount        factory.Amount          `json:"ownerPaidAmount"`
	OwnerOutstandingAmount factory.Amount          `json:"ownerOutstandingAmount"`
	Breakdown              map[string]LegDetailDTO `json:"breakdown"`
}

// =============================================================================
// LEDGER
// =============================================================================

// EntryReportDTO is one ledger entry with every derived figure.
type EntryReportDTO struct {
	Entry              factory.EntryJSON `json:"entry"`
	Bucket             string            `json:"bucket"`
	CalculatedIncome   factory.Amount    `json:"calculatedIncome"`
	CalculatedExpenses factory.Amount    `json:"calculatedExpenses"`
	NetProfit          factory.Amount    `json:"netProfit"`
	ProjectedProfit    factory.Amount    `json:"projectedProfit"`
	Owner              OwnerSummaryDTO   `json:"owner"`
	Warnings           []WarningDTO      `json:"warnings,omitempty"`
}

// SummaryDTO is the accumulated totals over a set of entries.
type SummaryDTO struct {
	TotalIncome           factory.Amount `json:"totalIncome"`
	TotalExpenses         factory.Amount `json:"totalExpenses"`
	TotalOwnerPaid        factory.Amount `json:"totalOwnerPaid"`
	TotalOwnerOutstanding factory.Amount `json:"totalOwnerOutstanding"`
	TotalNetProfit        factory.Amount `json:"totalNetProfit"`
	TotalManualProfit     factory.Amount `json:"totalManualProfit"`
}

// BucketGroupDTO groups one time window's entries with their summary.
type BucketGroupDTO struct {
	Entries []EntryReportDTO `json:"entries"`
	Summary SummaryDTO       `json:"summary"`
}

// EntriesResponse is the bucketed ledger view. AsOf is the single
// captured "now" the whole pass was bucketed against.
type EntriesResponse struct {
	AsOf    string                    `json:"asOf"`
	Buckets map[string]BucketGroupDTO `json:"buckets"`
	Total   SummaryDTO                `json:"total"`
}

// =============================================================================
// BOOKINGS
// =============================================================================

// BookingDTO is a booking document with derived figures attached.
type BookingDTO struct {
	factory.BookingJSON
	Bucket       string          `json:"bucket"`
	OwnerSummary OwnerSummaryDTO `json:"ownerSummary"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func warningDTOs(ws []pricing.Warning) []WarningDTO {
	out := make([]WarningDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, WarningDTO{Code: string(w.Code), Field: w.Field, Detail: w.Detail})
	}
	return out
}

func ledgerWarningDTOs(ws []ledger.Warning) []WarningDTO {
	out := make([]WarningDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, WarningDTO{Code: string(w.Code), Field: w.Channel, Detail: w.Detail})
	}
	return out
}

func ownerSummaryDTO(s ledger.OwnerSummary) OwnerSummaryDTO {
	breakdown := make(map[string]LegDetailDTO, len(s.Breakdown))
	for key, detail := range s.Breakdown {
		breakdown[string(key)] = LegDetailDTO{
			OwnerLegJSON: factory.OwnerLegJSON{
				Amount:    factory.Amount{Decimal: detail.Leg.Amount},
				Paid:      detail.Leg.Paid,
				Signature: detail.Leg.Signature,
				Date:      factory.FormatDate(detail.Leg.Date),
				PaidBy:    detail.Leg.PaidBy,
				Invoice:   detail.Leg.Invoice,
			},
			Due:     detail.Due,
			Settled: detail.Settled,
		}
	}
	return OwnerSummaryDTO{
		OwnerTotalDue:          factory.Amount{Decimal: s.TotalDue},
		OwnerPaidAmount:        factory.Amount{Decimal: s.PaidAmount},
		OwnerOutstandingAmount: factory.Amount{Decimal: s.OutstandingAmount},
		Breakdown:              breakdown,
	}
}

func summaryDTO(s ledger.Summary) SummaryDTO {
	return SummaryDTO{
		TotalIncome:           factory.Amount{Decimal: pricing.Round2(s.Income)},
		TotalExpenses:         factory.Amount{Decimal: pricing.Round2(s.Expenses)},
		TotalOwnerPaid:        factory.Amount{Decimal: pricing.Round2(s.OwnerPaid)},
		TotalOwnerOutstanding: factory.Amount{Decimal: pricing.Round2(s.OwnerOutstanding)},
		TotalNetProfit:        factory.Amount{Decimal: pricing.Round2(s.NetProfit)},
		TotalManualProfit:     factory.Amount{Decimal: pricing.Round2(s.ManualProfit)},
	}
}

func reportDTO(r ledger.Report, bucket ledger.Bucket) EntryReportDTO {
	return EntryReportDTO{
		Entry:              factory.EntryToJSON(r.Entry),
		Bucket:             string(bucket),
		CalculatedIncome:   factory.Amount{Decimal: pricing.Round2(r.Income)},
		CalculatedExpenses: factory.Amount{Decimal: pricing.Round2(r.Expenses)},
		NetProfit:          factory.Amount{Decimal: pricing.Round2(r.NetProfit)},
		ProjectedProfit:    factory.Amount{Decimal: pricing.Round2(r.ProjectedProfit)},
		Owner:              ownerSummaryDTO(r.Owner),
		Warnings:           ledgerWarningDTOs(r.Warnings),
	}
}
