package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justboats/charter-engine/booking"
	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
	"github.com/justboats/charter-engine/store"
	"github.com/justboats/charter-engine/store/sqlite"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestBookingSaveGetRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	date := time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC)
	b := booking.Booking{
		ID:         "bk-1",
		ClientName: "Roca",
		Date:       &date,
		Units: []booking.Unit{{
			BoatName: "Lagoon 40",
			Pricing: pricing.State{
				AgreedPrice:   d(2000),
				Type:          pricing.PolicyStandard,
				FirstPayment:  pricing.Installment{Amount: d(600), Method: pricing.MethodPOS, Percentage: d(30)},
				SecondPayment: pricing.Installment{Amount: d(1400)},
			},
		}},
		OwnerLegs: map[ledger.LegKey]ledger.OwnerLeg{
			ledger.LegFirst: {Amount: d(900), Paid: true},
		},
	}

	require.NoError(t, st.SaveBooking(ctx, b))

	got, err := st.GetBooking(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "Roca", got.ClientName)
	require.Len(t, got.Units, 1)
	assert.True(t, got.Units[0].Pricing.AgreedPrice.Equal(d(2000)))
	assert.True(t, got.OwnerLegs[ledger.LegFirst].Paid)
	require.NotNil(t, got.Date)
	assert.True(t, date.Equal(*got.Date))
}

func TestGetBooking_NotFound(t *testing.T) {
	st := openStore(t)
	_, err := st.GetBooking(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveBooking_UpsertReplacesDocument(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	b := booking.Booking{ID: "bk-up", ClientName: "before",
		Units: []booking.Unit{{BoatName: "X"}}}
	require.NoError(t, st.SaveBooking(ctx, b))

	b.ClientName = "after"
	require.NoError(t, st.SaveBooking(ctx, b))

	got, err := st.GetBooking(ctx, "bk-up")
	require.NoError(t, err)
	assert.Equal(t, "after", got.ClientName)

	all, err := st.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert, not duplicate")
}

func TestEntriesListOrderedByDate(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	later := time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveEntry(ctx, ledger.Entry{
		ID: "e-later", Date: &later,
		Income: map[ledger.IncomeChannel]decimal.Decimal{ledger.IncomeAgencyCash: d(100)},
	}))
	require.NoError(t, st.SaveEntry(ctx, ledger.Entry{
		ID: "e-earlier", Date: &earlier,
		Expenses: map[ledger.ExpenseChannel]decimal.Decimal{ledger.ExpenseFuel: d(40)},
	}))

	entries, err := st.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.EntryID("e-earlier"), entries[0].ID)
	assert.Equal(t, ledger.EntryID("e-later"), entries[1].ID)
	assert.True(t, entries[0].Expenses[ledger.ExpenseFuel].Equal(d(40)))
	assert.True(t, entries[1].Income[ledger.IncomeAgencyCash].Equal(d(100)))
}

func TestEntry_BookingReferenceSurvives(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEntry(ctx, ledger.Entry{
		ID: "e-ref", BookingID: "bk-1", ProfitTotal: d(250),
	}))

	entries, err := st.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bk-1", entries[0].BookingID)
	assert.True(t, entries[0].ProfitTotal.Equal(d(250)))
	assert.Nil(t, entries[0].Date, "dateless entries persist as dateless")
}
