/*
Package factory converts between persisted document-store JSON and the
engine's typed records.

PURPOSE:
  The surrounding back office keeps bookings and ledger entries in a
  hosted document store. The engine has no wire format of its own; the
  only contract is the field-name and type shape of those documents,
  which must be preserved exactly to stay compatible with existing
  persisted data. All of that shape knowledge lives here.

LENIENCY:
  Partially-filled in-progress forms are a normal state, not an error:
  missing or non-numeric amounts coerce to zero, unparseable dates pass
  through as absent (the bucketer treats those records as current).
  Only a structurally broken JSON document is an error.

JSON SHAPES:
  Pricing state:
    {"agreedPrice": 1000, "pricingType": "standard",
     "firstPayment": {"amount": 300, "method": "cash", "received": true,
                      "date": "2026-05-01", "excludeVAT": false,
                      "percentage": 30, "useCustomAmount": false},
     "secondPayment": {...},
     "paymentStatus": "Partial", "totalPaid": 300}

  Booking:
    {"id": "...", "clientName": "...",
     "bookingDetails": {"date": "2026-06-10", "boatName": "..."},
     "pricing": {...}, "additionalBoats": [{"boatName": ..., "pricing": {...}}],
     "transfer": {"required": true},
     "ownerPayments": {"firstPayment": {"amount": 800, "paid": false,
                       "signature": "", "date": null, "paidBy": "", "invoice": ""}}}

  Ledger entry:
    {"id": "...", "date": "2026-06-10", "bookingId": "...",
     "income": {"agencyCash": 300, ...}, "expenses": {"skipper": 150, ...},
     "profitTotal": 450, "description": "..."}

SEE ALSO:
  - pricing, ledger, booking: the typed records these map onto
  - store/sqlite: persists the documents this package encodes
*/
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
)

// =============================================================================
// LENIENT SCALARS
// =============================================================================

// Amount is a decimal that tolerates the document store's looseness:
// numbers, numeric strings, null, empty strings, and garbage all parse,
// with anything non-numeric coercing to zero.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	// Documents store amounts as plain JSON numbers.
	return []byte(a.Decimal.String()), nil
}

// dateLayouts are tried in order when parsing stored dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDate parses a stored date string leniently. Returns nil for
// anything unparseable; the caller's bucketer handles absence.
func ParseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := ledger.Midnight(t)
			return &day
		}
	}
	return nil
}

// FormatDate renders a date the way the documents store it.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// =============================================================================
// PRICING STATE
// =============================================================================

type InstallmentJSON struct {
	Amount          Amount `json:"amount"`
	Method          string `json:"method,omitempty"`
	Received        bool   `json:"received"`
	Date            string `json:"date,omitempty"`
	ExcludeVAT      bool   `json:"excludeVAT"`
	Percentage      Amount `json:"percentage,omitempty"`
	UseCustomAmount bool   `json:"useCustomAmount,omitempty"`
}

type PricingJSON struct {
	AgreedPrice   Amount          `json:"agreedPrice"`
	PricingType   string          `json:"pricingType"`
	FirstPayment  InstallmentJSON `json:"firstPayment"`
	SecondPayment InstallmentJSON `json:"secondPayment"`

	// Derived fields, written back for the benefit of readers that
	// consume the raw documents. Ignored on parse.
	PaymentStatus string `json:"paymentStatus,omitempty"`
	TotalPaid     Amount `json:"totalPaid"`
}

func installmentFromJSON(j InstallmentJSON) pricing.Installment {
	return pricing.Installment{
		Amount:          j.Amount.Decimal,
		Method:          pricing.PaymentMethod(j.Method),
		Received:        j.Received,
		Date:            ParseDate(j.Date),
		ExcludeVAT:      j.ExcludeVAT,
		Percentage:      j.Percentage.Decimal,
		UseCustomAmount: j.UseCustomAmount,
	}.Normalize()
}

func installmentToJSON(i pricing.Installment) InstallmentJSON {
	return InstallmentJSON{
		Amount:          Amount{i.Amount},
		Method:          string(i.Method),
		Received:        i.Received,
		Date:            FormatDate(i.Date),
		ExcludeVAT:      i.ExcludeVAT,
		Percentage:      Amount{i.Percentage},
		UseCustomAmount: i.UseCustomAmount,
	}
}

// PricingFromJSON maps a stored pricing document to a State.
func PricingFromJSON(j PricingJSON) pricing.State {
	return pricing.State{
		AgreedPrice:   j.AgreedPrice.Decimal,
		Type:          pricing.Policy(j.PricingType),
		FirstPayment:  installmentFromJSON(j.FirstPayment),
		SecondPayment: installmentFromJSON(j.SecondPayment),
	}
}

// PricingToJSON maps a State back to the stored shape, filling in the
// derived paymentStatus and totalPaid fields.
func PricingToJSON(s pricing.State) PricingJSON {
	return PricingJSON{
		AgreedPrice:   Amount{s.AgreedPrice},
		PricingType:   string(s.Type),
		FirstPayment:  installmentToJSON(s.FirstPayment),
		SecondPayment: installmentToJSON(s.SecondPayment),
		PaymentStatus: string(s.Status()),
		TotalPaid:     Amount{s.TotalPaid()},
	}
}

// =============================================================================
// BOOKING
// =============================================================================

type OwnerLegJSON struct {
	Amount    Amount `json:"amount"`
	Paid      bool   `json:"paid"`
	Signature string `json:"signature,omitempty"`
	Date      string `json:"date,omitempty"`
	PaidBy    string `json:"paidBy,omitempty"`
	Invoice   string `json:"invoice,omitempty"`
}

type BookingDetailsJSON struct {
	Date     string `json:"date,omitempty"`
	BoatName string `json:"boatName,omitempty"`
}

type TransferJSON struct {
	Required bool `json:"required"`
}

type BoatJSON struct {
	BoatName string      `json:"boatName,omitempty"`
	Pricing  PricingJSON `json:"pricing"`
}

type BookingJSON struct {
	ID              string                  `json:"id"`
	ClientName      string                  `json:"clientName,omitempty"`
	BookingDetails  BookingDetailsJSON      `json:"bookingDetails"`
	Pricing         PricingJSON             `json:"pricing"`
	AdditionalBoats []BoatJSON              `json:"additionalBoats,omitempty"`
	Transfer        TransferJSON            `json:"transfer"`
	OwnerPayments   map[string]OwnerLegJSON `json:"ownerPayments,omitempty"`
}

func legFromJSON(j OwnerLegJSON) ledger.OwnerLeg {
	return ledger.OwnerLeg{
		Amount:    j.Amount.Decimal,
		Paid:      j.Paid,
		Signature: j.Signature,
		Date:      ParseDate(j.Date),
		PaidBy:    j.PaidBy,
		Invoice:   j.Invoice,
	}
}

func legToJSON(l ledger.OwnerLeg) OwnerLegJSON {
	return OwnerLegJSON{
		Amount:    Amount{l.Amount},
		Paid:      l.Paid,
		Signature: l.Signature,
		Date:      FormatDate(l.Date),
		PaidBy:    l.PaidBy,
		Invoice:   l.Invoice,
	}
}

// BookingFromJSON maps a stored booking document to the typed record.
// The primary boat is the top-level pricing; additionalBoats follow.
func BookingFromJSON(j BookingJSON) booking.Booking {
	units := make([]booking.Unit, 0, 1+len(j.AdditionalBoats))
	units = append(units, booking.Unit{
		BoatName: j.BookingDetails.BoatName,
		Pricing:  PricingFromJSON(j.Pricing),
	})
	for _, boat := range j.AdditionalBoats {
		units = append(units, booking.Unit{
			BoatName: boat.BoatName,
			Pricing:  PricingFromJSON(boat.Pricing),
		})
	}

	legs := make(map[ledger.LegKey]ledger.OwnerLeg, len(j.OwnerPayments))
	for _, key := range ledger.LegKeys {
		if raw, ok := j.OwnerPayments[string(key)]; ok {
			legs[key] = legFromJSON(raw)
		}
	}

	return booking.Booking{
		ID:               j.ID,
		ClientName:       j.ClientName,
		Date:             ParseDate(j.BookingDetails.Date),
		Units:            units,
		TransferRequired: j.Transfer.Required,
		OwnerLegs:        legs,
	}
}

// BookingToJSON maps the typed record back to the stored shape.
func BookingToJSON(b booking.Booking) BookingJSON {
	out := BookingJSON{
		ID:         b.ID,
		ClientName: b.ClientName,
		BookingDetails: BookingDetailsJSON{
			Date: FormatDate(b.Date),
		},
		Transfer: TransferJSON{Required: b.TransferRequired},
	}
	if len(b.Units) > 0 {
		out.BookingDetails.BoatName = b.Units[0].BoatName
		out.Pricing = PricingToJSON(b.Units[0].Pricing)
	}
	if len(b.Units) > 1 {
		for _, u := range b.Units[1:] {
			out.AdditionalBoats = append(out.AdditionalBoats, BoatJSON{
				BoatName: u.BoatName,
				Pricing:  PricingToJSON(u.Pricing),
			})
		}
	}
	if len(b.OwnerLegs) > 0 {
		out.OwnerPayments = make(map[string]OwnerLegJSON, len(b.OwnerLegs))
		for key, leg := range b.OwnerLegs {
			out.OwnerPayments[string(key)] = legToJSON(leg)
		}
	}
	return out
}

// ParseBooking decodes a stored booking document.
func ParseBooking(data []byte) (booking.Booking, error) {
	var j BookingJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return booking.Booking{}, fmt.Errorf("parse booking: %w", err)
	}
	return BookingFromJSON(j), nil
}

// EncodeBooking encodes a booking in the stored document shape.
func EncodeBooking(b booking.Booking) ([]byte, error) {
	return json.Marshal(BookingToJSON(b))
}

// =============================================================================
// LEDGER ENTRY
// =============================================================================

type EntryJSON struct {
	ID          string            `json:"id"`
	Date        string            `json:"date,omitempty"`
	BookingID   string            `json:"bookingId,omitempty"`
	Income      map[string]Amount `json:"income,omitempty"`
	Expenses    map[string]Amount `json:"expenses,omitempty"`
	ProfitTotal Amount            `json:"profitTotal"`
	Description string            `json:"description,omitempty"`
}

// EntryFromJSON maps a stored ledger document to the typed record.
// Unknown channel names are dropped; the channel sets are closed.
func EntryFromJSON(j EntryJSON) ledger.Entry {
	income := make(map[ledger.IncomeChannel]decimal.Decimal)
	for _, ch := range ledger.IncomeChannels {
		if v, ok := j.Income[string(ch)]; ok {
			income[ch] = v.Decimal
		}
	}
	expenses := make(map[ledger.ExpenseChannel]decimal.Decimal)
	for _, ch := range ledger.ExpenseChannels {
		if v, ok := j.Expenses[string(ch)]; ok {
			expenses[ch] = v.Decimal
		}
	}
	return ledger.Entry{
		ID:          ledger.EntryID(j.ID),
		Date:        ParseDate(j.Date),
		BookingID:   j.BookingID,
		Income:      income,
		Expenses:    expenses,
		ProfitTotal: j.ProfitTotal.Decimal,
		Description: j.Description,
	}
}

// EntryToJSON maps the typed record back to the stored shape.
func EntryToJSON(e ledger.Entry) EntryJSON {
	income := make(map[string]Amount, len(e.Income))
	for ch, v := range e.Income {
		income[string(ch)] = Amount{v}
	}
	expenses := make(map[string]Amount, len(e.Expenses))
	for ch, v := range e.Expenses {
		expenses[string(ch)] = Amount{v}
	}
	return EntryJSON{
		ID:          string(e.ID),
		Date:        FormatDate(e.Date),
		BookingID:   e.BookingID,
		Income:      income,
		Expenses:    expenses,
		ProfitTotal: Amount{e.ProfitTotal},
		Description: e.Description,
	}
}

// ParseEntry decodes a stored ledger entry document.
func ParseEntry(data []byte) (ledger.Entry, error) {
	var j EntryJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ledger.Entry{}, fmt.Errorf("parse ledger entry: %w", err)
	}
	return EntryFromJSON(j), nil
}

// EncodeEntry encodes an entry in the stored document shape.
func EncodeEntry(e ledger.Entry) ([]byte, error) {
	return json.Marshal(EntryToJSON(e))
}
