package session

import (
	"context"

	"github.com/solmerch/orderbot/internal/model/order"
)

// Store persists in-progress order sessions keyed by user identity.
type Store interface {
	// Get returns the session for userID; the bool reports whether one exists.
	Get(ctx context.Context, userID string) (order.Session, bool, error)

	// Put stores the session under its UserID and refreshes its idle TTL.
	Put(ctx context.Context, s order.Session) error

	// Delete removes the session for userID; deleting a missing key is a no-op.
	Delete(ctx context.Context, userID string) error
}
