package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solmerch/orderbot/internal/ledger"
	intakeservice "github.com/solmerch/orderbot/internal/service/intake"
	"github.com/solmerch/orderbot/internal/store/session"
)

type fixedRates struct{}

func (fixedRates) CurrentRate(context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(100), nil
}

func setupEngine() *intakeservice.Engine {
	return intakeservice.NewEngine(
		session.NewMemoryStore(time.Hour),
		ledger.Nop{}, ledger.Nop{},
		fixedRates{},
		intakeservice.Config{},
	)
}

func setupRouter() *chi.Mux {
	handler := New(setupEngine())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postEvent(r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestEventRendersMenu(t *testing.T) {
	r := setupRouter()

	resp := postEvent(r, map[string]string{"userId": "u1", "kind": "text", "payload": "/start"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Replies []intakeservice.Reply `json:"replies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(body.Replies))
	}
	if body.Replies[0].Keyboard == nil {
		t.Fatal("expected the menu keyboard")
	}
}

func TestEventSequenceReachesQuote(t *testing.T) {
	r := setupRouter()

	steps := []map[string]string{
		{"userId": "u1", "kind": "selection", "payload": intakeservice.SelectShippingInfo},
		{"userId": "u1", "kind": "text", "payload": "@buyer"},
		{"userId": "u1", "kind": "text", "payload": "Alice Smith"},
		{"userId": "u1", "kind": "text", "payload": "1 Main St"},
		{"userId": "u1", "kind": "text", "payload": "none"},
	}
	for _, step := range steps {
		if resp := postEvent(r, step); resp.Code != http.StatusOK {
			t.Fatalf("step %v: expected 200, got %d", step, resp.Code)
		}
	}

	resp := postEvent(r, map[string]string{"userId": "u1", "kind": "selection", "payload": "Tier 1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Replies []intakeservice.Reply `json:"replies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Replies) != 1 || body.Replies[0].Quote == nil {
		t.Fatalf("expected a quote reply, got %+v", body.Replies)
	}
	if got := body.Replies[0].Quote.SOLAmount.String(); got != "0.65" {
		t.Fatalf("unexpected SOL amount: got %s", got)
	}
}

func TestEventMissingUserID(t *testing.T) {
	r := setupRouter()

	resp := postEvent(r, map[string]string{"kind": "text", "payload": "hi"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEventInvalidKind(t *testing.T) {
	r := setupRouter()

	resp := postEvent(r, map[string]string{"userId": "u1", "kind": "emoji", "payload": "hi"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEventMalformedBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCatalogListsAllTiers(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Tiers []struct {
			Tier     string          `json:"tier"`
			PriceUSD decimal.Decimal `json:"priceUsd"`
		} `json:"tiers"`
		ShippingUSD decimal.Decimal `json:"shippingUsd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Tiers) != 6 {
		t.Fatalf("expected 6 tiers, got %d", len(body.Tiers))
	}
	if body.Tiers[0].Tier != "Tier 1" || body.Tiers[0].PriceUSD.String() != "50" {
		t.Fatalf("unexpected first tier: %+v", body.Tiers[0])
	}
	if body.ShippingUSD.String() != "15" {
		t.Fatalf("unexpected shipping fee: %s", body.ShippingUSD)
	}
}
