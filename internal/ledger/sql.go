package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLLedger reads and appends the order ledger through database/sql. The
// schema needs a single `orders` table with a `contact_handle` column; see
// Schema for the full definition.
type SQLLedger struct {
	db *sql.DB
}

// NewSQLLedger wraps an open database handle.
func NewSQLLedger(db *sql.DB) *SQLLedger {
	return &SQLLedger{db: db}
}

// Exists reports whether handle matches any recorded order's contact handle.
func (l *SQLLedger) Exists(ctx context.Context, handle string) (bool, error) {
	var found bool
	err := l.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE contact_handle = ?)`, handle,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("referral lookup: %w", err)
	}
	return found, nil
}

// Record appends a completed order.
func (l *SQLLedger) Record(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO orders (quote_id, contact_handle, full_name, shipping_address, tier, usd_total, sol_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.QuoteID, e.ContactHandle, e.FullName, e.ShippingAddress,
		string(e.Tier), e.USDTotal.String(), e.SOLAmount.String(), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record order: %w", err)
	}
	return nil
}

// Schema is the MySQL DDL for the backing table.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	quote_id         VARCHAR(36)  NOT NULL PRIMARY KEY,
	contact_handle   VARCHAR(255) NOT NULL,
	full_name        VARCHAR(255) NOT NULL,
	shipping_address TEXT         NOT NULL,
	tier             VARCHAR(16)  NOT NULL,
	usd_total        DECIMAL(10,2) NOT NULL,
	sol_amount       DECIMAL(20,9) NOT NULL,
	created_at       DATETIME     NOT NULL,
	INDEX idx_contact_handle (contact_handle)
)`
