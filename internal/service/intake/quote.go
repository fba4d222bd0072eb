package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solmerch/orderbot/internal/model/order"
)

// solPlaces is the settlement currency's smallest denomination: one lamport
// is 1e-9 SOL.
const solPlaces = 9

// buildQuote prices the tier at the live rate. The settlement amount is
// rounded up at lamport granularity so the required payment never rounds
// below the USD total.
func (e *Engine) buildQuote(ctx context.Context, tier order.Tier, discounted bool) (order.Quote, error) {
	usd := e.cfg.Catalog[tier].Add(e.cfg.ShippingUSD)
	if discounted {
		usd = usd.Mul(decimal.NewFromInt(1).Sub(e.cfg.DiscountRate))
	}

	rate, err := e.rates.CurrentRate(ctx)
	if err != nil {
		return order.Quote{}, err
	}

	return order.Quote{
		ID:         uuid.NewString(),
		Tier:       tier,
		USDTotal:   usd.Round(2),
		Discounted: discounted,
		Rate:       rate,
		SOLAmount:  usd.Div(rate).RoundCeil(solPlaces),
		QuotedAt:   time.Now().UTC(),
	}, nil
}
