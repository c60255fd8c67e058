package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justboats/charter-engine/pricing"
)

func TestPropagate_CopiesConfiguration(t *testing.T) {
	// GIVEN: a configured source unit and two blank siblings
	source := standardState(1000, 30)
	source.FirstPayment.Method = pricing.MethodPOS
	source, _, _ = pricing.Rederive(source)

	targets := []pricing.State{{}, {}}

	// WHEN: propagating
	applied := pricing.Propagate(source, targets)

	// THEN: every target carries the source's policy, price, and split
	require.Len(t, applied, 2)
	for _, s := range applied {
		assert.Equal(t, pricing.PolicyStandard, s.Type)
		assert.True(t, s.AgreedPrice.Equal(d(1000)))
		assert.True(t, s.FirstPayment.Amount.Equal(d(300)))
		assert.True(t, s.SecondPayment.Amount.Equal(d(700)))
		assert.Equal(t, pricing.MethodPOS, s.FirstPayment.Method)
	}
}

func TestPropagate_PreservesReceiptFacts(t *testing.T) {
	// GIVEN: a source whose first payment is received, and a target with
	// its own distinct receipt history
	paidOn := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

	source := standardState(1000, 30)
	source.FirstPayment.Received = true
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	source.FirstPayment.Date = &now

	target := standardState(500, 50)
	target.SecondPayment.Received = true
	target.SecondPayment.Date = &paidOn

	// WHEN: propagating
	applied := pricing.Propagate(source, []pricing.State{target})
	require.Len(t, applied, 1)
	got := applied[0]

	// THEN: the target's own facts survive, and the source's receipt is
	// NOT copied onto the untouched first payment
	assert.False(t, got.FirstPayment.Received,
		"propagation must never mark an untouched payment as received")
	assert.Nil(t, got.FirstPayment.Date)
	assert.True(t, got.SecondPayment.Received,
		"propagation must never erase a unit's own receipt history")
	require.NotNil(t, got.SecondPayment.Date)
	assert.True(t, got.SecondPayment.Date.Equal(paidOn))
}

func TestPropagate_DoesNotMutateInputs(t *testing.T) {
	source := standardState(1000, 30)
	target := standardState(500, 50)
	target, _, _ = pricing.Rederive(target)
	before := target

	pricing.Propagate(source, []pricing.State{target})

	assert.True(t, target.Equivalent(before), "targets are read-only inputs")
}
