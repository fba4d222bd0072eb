package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solmerch/orderbot/internal/model/order"
)

// Reader answers whether a contact handle belongs to a previously recorded
// order. Implementations must be read-only; the referral rule is a plain
// membership test, no fuzzy matching.
type Reader interface {
	Exists(ctx context.Context, handle string) (bool, error)
}

// Recorder appends completed orders so future buyers can name this buyer's
// handle as a referral.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Entry is one completed order as stored in the ledger.
type Entry struct {
	QuoteID         string
	ContactHandle   string
	FullName        string
	ShippingAddress string
	Tier            order.Tier
	USDTotal        decimal.Decimal
	SOLAmount       decimal.Decimal
	CreatedAt       time.Time
}

// Nop stands in when no ledger backend is configured: every lookup misses
// (no orders yet means no referrals) and writes are discarded.
type Nop struct{}

func (Nop) Exists(context.Context, string) (bool, error) { return false, nil }

func (Nop) Record(context.Context, Entry) error { return nil }
