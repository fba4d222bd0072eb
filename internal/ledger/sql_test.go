package ledger

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/solmerch/orderbot/internal/model/order"
)

const existsQuery = `SELECT EXISTS(SELECT 1 FROM orders WHERE contact_handle = ?)`

func TestSQLLedgerExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	l := NewSQLLedger(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs("@alice").
		WillReturnRows(sqlmock.NewRows([]string{"found"}).AddRow(true))

	found, err := l.Exists(ctx, "@alice")
	assert.NoError(t, err)
	assert.True(t, found)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs("@stranger").
		WillReturnRows(sqlmock.NewRows([]string{"found"}).AddRow(false))

	found, err = l.Exists(ctx, "@stranger")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLLedgerExistsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	l := NewSQLLedger(db)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs("@alice").
		WillReturnError(errors.New("connection refused"))

	_, err = l.Exists(context.Background(), "@alice")
	assert.Error(t, err)
}

func TestSQLLedgerRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	l := NewSQLLedger(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs("quote-1", "@alice", "Alice Smith", "1 Main St", "Tier 1",
			"58.5", "0.585", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = l.Record(context.Background(), Entry{
		QuoteID:         "quote-1",
		ContactHandle:   "@alice",
		FullName:        "Alice Smith",
		ShippingAddress: "1 Main St",
		Tier:            order.Tier1,
		USDTotal:        decimal.RequireFromString("58.5"),
		SOLAmount:       decimal.RequireFromString("0.585"),
		CreatedAt:       now,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopLedger(t *testing.T) {
	var l Nop

	found, err := l.Exists(context.Background(), "@anyone")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, l.Record(context.Background(), Entry{}))
}
