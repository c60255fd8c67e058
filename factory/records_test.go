package factory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justboats/charter-engine/factory"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// =============================================================================
// LENIENT SCALARS
// =============================================================================

func TestAmount_LenientDecoding(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"number", `1250.5`, d(1250.5)},
		{"quoted number", `"300"`, d(300)},
		{"null", `null`, decimal.Zero},
		{"empty string", `""`, decimal.Zero},
		{"garbage", `"tbd"`, decimal.Zero},
		{"negative", `-42.1`, d(-42.1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a factory.Amount
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &a))
			assert.True(t, a.Decimal.Equal(tc.want), "got %s", a.Decimal)
		})
	}
}

func TestAmount_EncodesAsPlainNumber(t *testing.T) {
	out, err := json.Marshal(factory.Amount{Decimal: d(300.5)})
	require.NoError(t, err)
	assert.Equal(t, `300.5`, string(out), "no quotes, documents hold numbers")
}

func TestParseDate_LayoutsAndFailure(t *testing.T) {
	for _, raw := range []string{
		"2026-06-10",
		"2026-06-10T14:30:00Z",
		"2026-06-10T14:30:00",
		"10/06/2026",
	} {
		got := factory.ParseDate(raw)
		require.NotNil(t, got, "layout %q", raw)
		// Always truncated to the day.
		assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, got.Location()), *got)
	}

	assert.Nil(t, factory.ParseDate("soon"), "unparseable passes through as absent")
	assert.Nil(t, factory.ParseDate(""))
}

// =============================================================================
// PRICING DOCUMENTS
// =============================================================================

func TestPricingFromJSON_PartialForm(t *testing.T) {
	// A half-filled form from the document store: amounts missing or
	// garbage, date not yet set. It must load cleanly with zeroes.
	raw := []byte(`{
		"agreedPrice": "1000",
		"pricingType": "standard",
		"firstPayment": {"amount": null, "method": "cash", "received": false,
		                 "percentage": 30},
		"secondPayment": {"amount": "pending"}
	}`)

	var doc factory.PricingJSON
	require.NoError(t, json.Unmarshal(raw, &doc))
	s := factory.PricingFromJSON(doc)

	assert.True(t, s.AgreedPrice.Equal(d(1000)))
	assert.Equal(t, pricing.PolicyStandard, s.Type)
	assert.True(t, s.FirstPayment.Amount.Equal(decimal.Zero))
	assert.True(t, s.FirstPayment.Percentage.Equal(d(30)))
	assert.True(t, s.SecondPayment.Amount.Equal(decimal.Zero))
	assert.Nil(t, s.FirstPayment.Date)
}

func TestPricingToJSON_WritesDerivedFields(t *testing.T) {
	date := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	s := pricing.State{
		AgreedPrice: d(1000),
		Type:        pricing.PolicyStandard,
		FirstPayment: pricing.Installment{
			Amount: d(300), Method: pricing.MethodCash,
			Received: true, Date: &date, Percentage: d(30),
		},
		SecondPayment: pricing.Installment{Amount: d(700), Method: pricing.MethodTransfer},
	}

	doc := factory.PricingToJSON(s)

	assert.Equal(t, "Partial", doc.PaymentStatus)
	assert.True(t, doc.TotalPaid.Decimal.Equal(d(300)))
	assert.Equal(t, "2026-05-01", doc.FirstPayment.Date)

	// Field names on the wire are the document store's, verbatim.
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	for _, field := range []string{
		`"agreedPrice"`, `"pricingType"`, `"firstPayment"`,
		`"secondPayment"`, `"paymentStatus"`, `"totalPaid"`,
		`"excludeVAT"`, `"received"`,
	} {
		assert.Contains(t, string(out), field)
	}
}

func TestInstallment_DateClearedWhenNotReceived(t *testing.T) {
	// Normalization on load: a lingering date on an unreceived
	// installment is stale and dropped.
	raw := []byte(`{
		"agreedPrice": 500,
		"pricingType": "custom",
		"firstPayment": {"amount": 200, "received": false, "date": "2026-04-01"},
		"secondPayment": {"amount": 300, "received": true, "date": "2026-04-02"}
	}`)

	var doc factory.PricingJSON
	require.NoError(t, json.Unmarshal(raw, &doc))
	s := factory.PricingFromJSON(doc)

	assert.Nil(t, s.FirstPayment.Date)
	assert.NotNil(t, s.SecondPayment.Date)
}

// =============================================================================
// BOOKING DOCUMENTS
// =============================================================================

func TestParseBooking_FullDocument(t *testing.T) {
	raw := []byte(`{
		"id": "bk-9",
		"clientName": "Mendez party",
		"bookingDetails": {"date": "2026-06-10", "boatName": "Sea Ray 290"},
		"pricing": {
			"agreedPrice": 1000, "pricingType": "standard",
			"firstPayment": {"amount": 300, "method": "cash", "received": true,
			                 "date": "2026-05-01", "percentage": 30},
			"secondPayment": {"amount": 700, "method": "transfer"}
		},
		"additionalBoats": [{
			"boatName": "Bavaria 38",
			"pricing": {"agreedPrice": 800, "pricingType": "custom",
			            "firstPayment": {"amount": 400},
			            "secondPayment": {"amount": 400}}
		}],
		"transfer": {"required": true},
		"ownerPayments": {
			"firstPayment": {"amount": 400, "paid": true},
			"transferPayment": {"amount": 50, "signature": "sig-1"},
			"extraPayment": {"amount": 999}
		}
	}`)

	b, err := factory.ParseBooking(raw)
	require.NoError(t, err)

	assert.Equal(t, "bk-9", b.ID)
	require.NotNil(t, b.Date)
	assert.Equal(t, time.June, b.Date.Month())
	assert.True(t, b.TransferRequired)

	require.Len(t, b.Units, 2)
	assert.Equal(t, "Sea Ray 290", b.Units[0].BoatName)
	assert.True(t, b.Units[0].Pricing.AgreedPrice.Equal(d(1000)))
	assert.Equal(t, "Bavaria 38", b.Units[1].BoatName)
	assert.Equal(t, pricing.PolicyCustom, b.Units[1].Pricing.Type)

	// Known legs load; the unrecognized "extraPayment" key is dropped.
	require.Len(t, b.OwnerLegs, 2)
	assert.True(t, b.OwnerLegs[ledger.LegFirst].Paid)
	assert.True(t, b.OwnerLegs[ledger.LegTransfer].Settled(), "signature settles")
}

func TestBookingRoundTrip(t *testing.T) {
	raw := []byte(`{
		"id": "bk-rt",
		"clientName": "Roca",
		"bookingDetails": {"date": "2026-07-01", "boatName": "Lagoon 40"},
		"pricing": {"agreedPrice": 2000, "pricingType": "standard",
		            "firstPayment": {"amount": 600, "method": "pos", "percentage": 30},
		            "secondPayment": {"amount": 1400}},
		"transfer": {"required": false},
		"ownerPayments": {"secondPayment": {"amount": 900, "paidBy": "office"}}
	}`)

	b, err := factory.ParseBooking(raw)
	require.NoError(t, err)

	encoded, err := factory.EncodeBooking(b)
	require.NoError(t, err)
	again, err := factory.ParseBooking(encoded)
	require.NoError(t, err)

	assert.Equal(t, b.ID, again.ID)
	assert.Equal(t, b.ClientName, again.ClientName)
	assert.True(t, b.Units[0].Pricing.AgreedPrice.Equal(again.Units[0].Pricing.AgreedPrice))
	assert.Equal(t, "office", again.OwnerLegs[ledger.LegSecond].PaidBy)
	require.NotNil(t, again.Date)
	assert.True(t, b.Date.Equal(*again.Date))
}

func TestParseBooking_BrokenDocument(t *testing.T) {
	_, err := factory.ParseBooking([]byte(`{"id": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse booking")
}

// =============================================================================
// LEDGER DOCUMENTS
// =============================================================================

func TestParseEntry_UnknownChannelsDropped(t *testing.T) {
	raw := []byte(`{
		"id": "e-7",
		"date": "2026-06-12",
		"bookingId": "bk-9",
		"income": {"agencyCash": 300, "cryptoWallet": 5000},
		"expenses": {"fuel": "80", "skipper": null},
		"profitTotal": 220,
		"description": "day charter"
	}`)

	e, err := factory.ParseEntry(raw)
	require.NoError(t, err)

	assert.Equal(t, ledger.EntryID("e-7"), e.ID)
	assert.Equal(t, "bk-9", e.BookingID)
	assert.True(t, e.Income[ledger.IncomeAgencyCash].Equal(d(300)))
	assert.Len(t, e.Income, 1, "cryptoWallet is not a channel")
	assert.True(t, e.Expenses[ledger.ExpenseFuel].Equal(d(80)))
	assert.True(t, e.Expenses[ledger.ExpenseSkipper].Equal(decimal.Zero))
	assert.True(t, e.ProfitTotal.Equal(d(220)))
}

func TestEntryRoundTrip(t *testing.T) {
	date := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
	e := ledger.Entry{
		ID:        "e-rt",
		Date:      &date,
		BookingID: "bk-1",
		Income: map[ledger.IncomeChannel]decimal.Decimal{
			ledger.IncomeAgencyPOS: d(450.25),
		},
		Expenses: map[ledger.ExpenseChannel]decimal.Decimal{
			ledger.ExpenseCommission: d(45),
		},
		ProfitTotal: d(405.25),
		Description: "afternoon charter",
	}

	encoded, err := factory.EncodeEntry(e)
	require.NoError(t, err)
	again, err := factory.ParseEntry(encoded)
	require.NoError(t, err)

	assert.Equal(t, e.ID, again.ID)
	assert.True(t, e.Income[ledger.IncomeAgencyPOS].Equal(again.Income[ledger.IncomeAgencyPOS]))
	assert.True(t, e.ProfitTotal.Equal(again.ProfitTotal))
	require.NotNil(t, again.Date)
	assert.True(t, date.Equal(*again.Date))
}
