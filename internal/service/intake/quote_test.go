package intake

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solmerch/orderbot/internal/ledger"
	"github.com/solmerch/orderbot/internal/model/order"
	"github.com/solmerch/orderbot/internal/store/session"
)

type staticRates struct{ rate decimal.Decimal }

func (s staticRates) CurrentRate(context.Context) (decimal.Decimal, error) {
	return s.rate, nil
}

func quoteEngine(rate string) *Engine {
	return NewEngine(
		session.NewMemoryStore(time.Hour),
		ledger.Nop{}, ledger.Nop{},
		staticRates{rate: decimal.RequireFromString(rate)},
		Config{},
	)
}

func TestBuildQuoteTierOneDiscounted(t *testing.T) {
	// Tier 1 ($50) + shipping ($15) = $65; discounted $58.50; at rate 100
	// the settlement amount is exactly 0.585 SOL.
	e := quoteEngine("100")

	q, err := e.buildQuote(context.Background(), order.Tier1, true)
	require.NoError(t, err)

	assert.Equal(t, "58.5", q.USDTotal.String())
	assert.Equal(t, "0.585", q.SOLAmount.String())
	assert.True(t, q.Discounted)
	assert.NotEmpty(t, q.ID)
}

func TestBuildQuoteWithoutDiscount(t *testing.T) {
	e := quoteEngine("100")

	q, err := e.buildQuote(context.Background(), order.Tier1, false)
	require.NoError(t, err)

	assert.Equal(t, "65", q.USDTotal.String())
	assert.Equal(t, "0.65", q.SOLAmount.String())
	assert.False(t, q.Discounted)
}

func TestBuildQuoteRoundsUpAtLamportGranularity(t *testing.T) {
	// $65 / 7 = 9.285714285714... and must round up to 9.285714286, never down.
	e := quoteEngine("7")

	q, err := e.buildQuote(context.Background(), order.Tier1, false)
	require.NoError(t, err)

	assert.Equal(t, "9.285714286", q.SOLAmount.String())
	assert.True(t, q.SOLAmount.Mul(q.Rate).GreaterThanOrEqual(q.USDTotal),
		"payment must cover the USD total")
}

func TestBuildQuoteDeterministic(t *testing.T) {
	e := quoteEngine("137.42")

	a, err := e.buildQuote(context.Background(), order.Tier4, true)
	require.NoError(t, err)
	b, err := e.buildQuote(context.Background(), order.Tier4, true)
	require.NoError(t, err)

	assert.True(t, a.SOLAmount.Equal(b.SOLAmount))
	assert.True(t, a.USDTotal.Equal(b.USDTotal))
}

func TestBuildQuoteEveryTier(t *testing.T) {
	e := quoteEngine("100")
	want := map[order.Tier]string{
		order.Tier1: "65",
		order.Tier2: "110",
		order.Tier3: "150",
		order.Tier4: "190",
		order.Tier5: "225",
		order.Tier6: "255",
	}

	for tier, total := range want {
		q, err := e.buildQuote(context.Background(), tier, false)
		require.NoError(t, err)
		assert.Equal(t, total, q.USDTotal.String(), "tier %s", tier)
	}
}
