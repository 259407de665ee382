package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/interval"
)

func span(t *testing.T, d time.Duration) interval.Interval {
	t.Helper()
	start := time.Date(2030, time.March, 15, 10, 0, 0, 0, time.UTC)
	iv, err := interval.New(start, start.Add(d))
	require.NoError(t, err)
	return iv
}

func TestQuoteFourWheelerThreeHours(t *testing.T) {
	hours, cost, err := Quote(DefaultRates(), db.FourWheeler, span(t, 3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, hours)
	assert.True(t, cost.Equal(decimal.NewFromInt(90)), "got %s", cost)
}

func TestQuoteTwoWheelerPartialHourRoundsUp(t *testing.T) {
	hours, cost, err := Quote(DefaultRates(), db.TwoWheeler, span(t, 2*time.Hour+1*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, hours)
	assert.True(t, cost.Equal(decimal.NewFromInt(60)), "got %s", cost)
}

func TestQuoteIsDeterministic(t *testing.T) {
	iv := span(t, 5*time.Hour+30*time.Minute)
	h1, c1, err := Quote(DefaultRates(), db.FourWheeler, iv)
	require.NoError(t, err)
	h2, c2, err := Quote(DefaultRates(), db.FourWheeler, iv)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.True(t, c1.Equal(c2))
}

func TestQuoteUnknownClass(t *testing.T) {
	_, _, err := Quote(RateTable{}, db.FourWheeler, span(t, time.Hour))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicyViolation))
}
