package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solmerch/orderbot/internal/ledger"
	"github.com/solmerch/orderbot/internal/metrics"
	"github.com/solmerch/orderbot/internal/model/order"
	"github.com/solmerch/orderbot/internal/store/session"
)

// ErrMissingUser is returned when an event carries no user identity.
var ErrMissingUser = errors.New("event user id is required")

const noneSentinel = "none"

// RateSource yields the current USD value of one settlement-currency unit.
type RateSource interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

// Config carries the immutable pricing constants.
type Config struct {
	Catalog      order.Catalog
	ShippingUSD  decimal.Decimal
	DiscountRate decimal.Decimal
}

// Engine drives the order-intake conversation. It owns the only shared
// mutable state (the session store) and serializes events per user identity;
// events for distinct users run in parallel.
type Engine struct {
	store    session.Store
	reader   ledger.Reader
	recorder ledger.Recorder
	rates    RateSource
	cfg      Config
	locks    *userLocks
}

// NewEngine wires the conversation engine to its collaborators.
func NewEngine(store session.Store, reader ledger.Reader, recorder ledger.Recorder, rates RateSource, cfg Config) *Engine {
	if cfg.Catalog == nil {
		cfg.Catalog = order.DefaultCatalog()
	}
	if cfg.ShippingUSD.IsZero() {
		cfg.ShippingUSD = decimal.NewFromInt(15)
	}
	if cfg.DiscountRate.IsZero() {
		cfg.DiscountRate = decimal.RequireFromString("0.10")
	}
	return &Engine{
		store:    store,
		reader:   reader,
		recorder: recorder,
		rates:    rates,
		cfg:      cfg,
		locks:    newUserLocks(0),
	}
}

// HandleEvent processes one inbound event to completion and returns the
// replies the transport should render. Failures scoped to this user (ledger
// outages, rate fetch failures) are absorbed into replies; the returned error
// is reserved for session store faults.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) ([]Reply, error) {
	if ev.UserID == "" {
		return nil, ErrMissingUser
	}

	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	sess, ok, err := e.store.Get(ctx, ev.UserID)
	if err != nil {
		// A broken session read means we cannot trust the state tag; restart
		// this user at the menu rather than failing the event.
		log.Printf("[intake] session read for %s failed: %v", ev.UserID, err)
		ok = false
	}
	if !ok {
		sess = order.NewSession(ev.UserID, time.Now().UTC())
	}

	next, action := Transition(sess.State, ev)

	switch action {
	case ActionShowMenu:
		return e.stay(ctx, sess, next, menuReply())

	case ActionShowReviews:
		return e.stay(ctx, sess, next, reviewsReply())

	case ActionShowOrderMenu:
		return e.stay(ctx, sess, next, orderMenuReply())

	case ActionShowHowToPay:
		return e.stay(ctx, sess, next, howToPayReply())

	case ActionAskHandle:
		return e.stay(ctx, sess, next, promptFor(order.StateAskHandle))

	case ActionSetHandle:
		sess.ContactHandle = ev.Payload
		return e.stay(ctx, sess, next, promptFor(order.StateAskName))

	case ActionSetName:
		sess.FullName = ev.Payload
		return e.stay(ctx, sess, next, promptFor(order.StateAskAddress))

	case ActionSetAddress:
		sess.ShippingAddress = ev.Payload
		return e.stay(ctx, sess, next, promptFor(order.StateAskReferral))

	case ActionResolveReferral:
		return e.resolveReferral(ctx, sess, next, ev.Payload)

	case ActionQuoteTier:
		return e.quoteTier(ctx, sess, order.Tier(ev.Payload))

	case ActionRepeatPrompt:
		return e.stay(ctx, sess, next, promptFor(next))
	}

	return e.stay(ctx, sess, order.StateMainMenu, menuReply())
}

// stay persists the session at the given state and returns one reply.
func (e *Engine) stay(ctx context.Context, sess order.Session, next order.State, reply Reply) ([]Reply, error) {
	sess.State = next
	sess.UpdatedAt = time.Now().UTC()
	if err := e.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return []Reply{reply}, nil
}

// resolveReferral normalizes the supplied code, runs the single ledger
// membership test, and fixes LoyaltyDiscount for the rest of the session.
// Ledger failures fail open: no discount, no user-visible error.
func (e *Engine) resolveReferral(ctx context.Context, sess order.Session, next order.State, raw string) ([]Reply, error) {
	code := normalizeReferral(raw)
	sess.ReferralCode = code

	granted := false
	if code != "" {
		found, err := e.reader.Exists(ctx, code)
		if err != nil {
			log.Printf("[intake] referral lookup for %s failed, treating as not found: %v", sess.UserID, err)
			metrics.LedgerLookupFailures.Inc()
		} else {
			granted = found
		}
	}
	sess.LoyaltyDiscount = granted
	if granted {
		metrics.DiscountsGranted.Inc()
	}

	sess.State = next
	sess.UpdatedAt = time.Now().UTC()
	if err := e.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	replies := make([]Reply, 0, 2)
	if granted {
		replies = append(replies, Reply{Text: referralFoundText})
	}
	return append(replies, tierMenuReply()), nil
}

// quoteTier computes the final quote. On a rate fetch failure the session
// stays in ChooseTier with the tier unset so the user can simply re-select.
func (e *Engine) quoteTier(ctx context.Context, sess order.Session, tier order.Tier) ([]Reply, error) {
	quote, err := e.buildQuote(ctx, tier, sess.LoyaltyDiscount)
	if err != nil {
		log.Printf("[intake] quote for %s failed: %v", sess.UserID, err)
		metrics.RateFetchFailures.Inc()
		return e.stay(ctx, sess, order.StateChooseTier, Reply{Text: rateFailedText, Keyboard: tierMenuReply().Keyboard})
	}

	sess.Tier = tier
	sess.State = order.StateCompleted
	sess.UpdatedAt = time.Now().UTC()

	if err := e.recorder.Record(ctx, ledger.Entry{
		QuoteID:         quote.ID,
		ContactHandle:   sess.ContactHandle,
		FullName:        sess.FullName,
		ShippingAddress: sess.ShippingAddress,
		Tier:            tier,
		USDTotal:        quote.USDTotal,
		SOLAmount:       quote.SOLAmount,
		CreatedAt:       quote.QuotedAt,
	}); err != nil {
		log.Printf("[intake] recording order %s failed: %v", quote.ID, err)
	}

	// Completed sessions are removed eagerly instead of waiting for the TTL.
	if err := e.store.Delete(ctx, sess.UserID); err != nil {
		log.Printf("[intake] deleting completed session %s failed: %v", sess.UserID, err)
	}

	metrics.OrdersCompleted.Inc()
	return []Reply{quoteReply(quote)}, nil
}

// Catalog exposes the configured tier price table.
func (e *Engine) Catalog() order.Catalog {
	return e.cfg.Catalog
}

// ShippingUSD exposes the flat shipping fee.
func (e *Engine) ShippingUSD() decimal.Decimal {
	return e.cfg.ShippingUSD
}

// normalizeReferral trims the input and maps the case-insensitive "none"
// sentinel to the empty code.
func normalizeReferral(raw string) string {
	code := strings.TrimSpace(raw)
	if strings.EqualFold(code, noneSentinel) {
		return ""
	}
	return code
}
