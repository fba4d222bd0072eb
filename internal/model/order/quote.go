package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the final priced order presented to the buyer. SOLAmount is the
// exact amount to send; downstream payment flows reference the quote by ID.
type Quote struct {
	ID         string          `json:"id"`
	Tier       Tier            `json:"tier"`
	USDTotal   decimal.Decimal `json:"usdTotal"`
	Discounted bool            `json:"discounted"`
	Rate       decimal.Decimal `json:"rate"`
	SOLAmount  decimal.Decimal `json:"solAmount"`
	QuotedAt   time.Time       `json:"quotedAt"`
}
