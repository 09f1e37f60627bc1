package policy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/shared/errs"
)

func standardRules() []Rule {
	return []Rule{
		{DaysBeforeDeparture: 90, RefundPercentage: 100},
		{DaysBeforeDeparture: 60, RefundPercentage: 75},
		{DaysBeforeDeparture: 30, RefundPercentage: 50},
		{DaysBeforeDeparture: 15, RefundPercentage: 25},
		{DaysBeforeDeparture: 0, RefundPercentage: 0},
	}
}

func TestDaysToDeparture(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("exact days", func(t *testing.T) {
		departure := now.Add(40 * 24 * time.Hour)
		assert.Equal(t, 40, DaysToDeparture(now, departure))
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		departure := now.Add(39*24*time.Hour + time.Hour)
		assert.Equal(t, 40, DaysToDeparture(now, departure))
	})

	t.Run("post-departure is negative", func(t *testing.T) {
		departure := now.Add(-3 * 24 * time.Hour)
		assert.Equal(t, -3, DaysToDeparture(now, departure))
	})
}

func TestSelectRule(t *testing.T) {
	rules := standardRules()

	tests := []struct {
		name        string
		days        int
		wantPct     int
		wantDaysBnd int
	}{
		{"between tiers picks lower tier", 40, 50, 30},
		{"inclusive boundary", 30, 50, 30},
		{"just below boundary drops a tier", 29, 25, 15},
		{"above top tier", 120, 100, 90},
		{"day of departure", 0, 0, 0},
		{"negative days falls back to smallest threshold", -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := SelectRule(rules, tt.days)
			assert.Equal(t, tt.wantPct, rule.RefundPercentage)
			assert.Equal(t, tt.wantDaysBnd, rule.DaysBeforeDeparture)
		})
	}
}

func TestSelectRuleUnsortedInput(t *testing.T) {
	// Selection must not depend on storage order.
	rules := []Rule{
		{DaysBeforeDeparture: 15, RefundPercentage: 25},
		{DaysBeforeDeparture: 90, RefundPercentage: 100},
		{DaysBeforeDeparture: 30, RefundPercentage: 50},
	}

	rule := SelectRule(rules, 45)
	assert.Equal(t, 50, rule.RefundPercentage)
}

func TestComputeRefund(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	departure := now.Add(40 * 24 * time.Hour)

	t.Run("prorates evenly across travelers", func(t *testing.T) {
		// 185000 paid, 2 travelers, cancel 1 at 50%: 185000/2 * 0.5 = 46250
		quote, err := ComputeRefund(now, departure, standardRules(), 185000, 2, 1)
		require.NoError(t, err)

		assert.Equal(t, 46250.0, quote.RefundAmount)
		assert.Equal(t, 50, quote.RefundPercentage)
		assert.Equal(t, 40, quote.DaysToDeparture)
	})

	t.Run("full cancellation refunds against whole paid amount", func(t *testing.T) {
		quote, err := ComputeRefund(now, departure, standardRules(), 185000, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, 92500.0, quote.RefundAmount)
	})

	t.Run("zero percentage yields zero amount", func(t *testing.T) {
		dayOf := now.Add(2 * time.Hour)
		quote, err := ComputeRefund(now, dayOf, standardRules(), 185000, 2, 1)
		require.NoError(t, err)

		assert.Equal(t, 0.0, quote.RefundAmount)
		assert.Equal(t, 0, quote.RefundPercentage)
	})

	t.Run("nothing paid yields zero refund", func(t *testing.T) {
		quote, err := ComputeRefund(now, departure, standardRules(), 0, 2, 1)
		require.NoError(t, err)

		assert.Equal(t, 0.0, quote.RefundAmount)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// 101 paid, 3 travelers, cancel 1 at 50%: 101/3 * 0.5 = 16.833 -> 17
		quote, err := ComputeRefund(now, departure, standardRules(), 101, 3, 1)
		require.NoError(t, err)

		assert.Equal(t, 17.0, quote.RefundAmount)
	})

	t.Run("no travelers", func(t *testing.T) {
		_, err := ComputeRefund(now, departure, standardRules(), 185000, 0, 0)
		require.Error(t, err)
		assert.Equal(t, errs.CodeNoTravelers, errs.CodeOf(err))
	})

	t.Run("no rules", func(t *testing.T) {
		_, err := ComputeRefund(now, departure, nil, 185000, 2, 1)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})
}

func TestPolicyValidate(t *testing.T) {
	packageID := uuid.New()

	t.Run("valid policy", func(t *testing.T) {
		p := &CancellationPolicy{PackageID: packageID, Rules: standardRules()}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty rule set", func(t *testing.T) {
		p := &CancellationPolicy{PackageID: packageID}
		err := p.Validate()
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("percentage out of range", func(t *testing.T) {
		p := &CancellationPolicy{PackageID: packageID, Rules: []Rule{
			{DaysBeforeDeparture: 30, RefundPercentage: 150},
		}}
		assert.Error(t, p.Validate())
	})

	t.Run("negative threshold", func(t *testing.T) {
		p := &CancellationPolicy{PackageID: packageID, Rules: []Rule{
			{DaysBeforeDeparture: -1, RefundPercentage: 50},
		}}
		assert.Error(t, p.Validate())
	})

	t.Run("duplicate thresholds", func(t *testing.T) {
		p := &CancellationPolicy{PackageID: packageID, Rules: []Rule{
			{DaysBeforeDeparture: 30, RefundPercentage: 50},
			{DaysBeforeDeparture: 30, RefundPercentage: 25},
		}}
		assert.Error(t, p.Validate())
	})
}
