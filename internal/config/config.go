package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Ledger  LedgerConfig
	Rates   RatesConfig
	Pricing PricingConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sess, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	rates, err := loadRatesConfig()
	if err != nil {
		return nil, err
	}

	pricing, err := loadPricingConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Session: sess,
		Ledger:  LedgerConfig{MySQLDSN: strings.TrimSpace(os.Getenv("LEDGER_MYSQL_DSN"))},
		Rates:   rates,
		Pricing: pricing,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// SessionConfig selects the session store backend and its idle TTL. An empty
// RedisAddr keeps sessions in process memory.
type SessionConfig struct {
	RedisAddr string
	TTL       time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	cfg := SessionConfig{
		RedisAddr: strings.TrimSpace(os.Getenv("SESSION_REDIS_ADDR")),
		TTL:       24 * time.Hour,
	}

	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value: %q", raw)
		}
		cfg.TTL = ttl
	}

	return cfg, nil
}

// LedgerConfig points at the order ledger database. An empty DSN disables the
// ledger; referral lookups then always miss.
type LedgerConfig struct {
	MySQLDSN string
}

// RatesConfig describes the settlement-rate feed and its retry policy.
type RatesConfig struct {
	URL      string
	AssetID  string
	Timeout  time.Duration
	Attempts int
}

func loadRatesConfig() (RatesConfig, error) {
	cfg := RatesConfig{
		URL:      "https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd",
		AssetID:  "solana",
		Timeout:  5 * time.Second,
		Attempts: 2,
	}

	if raw := strings.TrimSpace(os.Getenv("RATES_URL")); raw != "" {
		cfg.URL = raw
	}
	if raw := strings.TrimSpace(os.Getenv("RATES_ASSET")); raw != "" {
		cfg.AssetID = raw
	}
	if raw := strings.TrimSpace(os.Getenv("RATES_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return RatesConfig{}, fmt.Errorf("invalid RATES_TIMEOUT value: %q", raw)
		}
		cfg.Timeout = timeout
	}
	if raw := strings.TrimSpace(os.Getenv("RATES_ATTEMPTS")); raw != "" {
		attempts, err := strconv.Atoi(raw)
		if err != nil || attempts < 1 {
			return RatesConfig{}, fmt.Errorf("invalid RATES_ATTEMPTS value: %q", raw)
		}
		cfg.Attempts = attempts
	}

	return cfg, nil
}

// PricingConfig carries the flat shipping fee and loyalty discount rate; the
// tier catalog itself is a fixed process-wide table.
type PricingConfig struct {
	ShippingUSD  decimal.Decimal
	DiscountRate decimal.Decimal
}

func loadPricingConfig() (PricingConfig, error) {
	cfg := PricingConfig{
		ShippingUSD:  decimal.NewFromInt(15),
		DiscountRate: decimal.RequireFromString("0.10"),
	}

	if raw := strings.TrimSpace(os.Getenv("SHIPPING_USD")); raw != "" {
		shipping, err := decimal.NewFromString(raw)
		if err != nil || shipping.IsNegative() {
			return PricingConfig{}, fmt.Errorf("invalid SHIPPING_USD value: %q", raw)
		}
		cfg.ShippingUSD = shipping
	}
	if raw := strings.TrimSpace(os.Getenv("LOYALTY_DISCOUNT")); raw != "" {
		discount, err := decimal.NewFromString(raw)
		if err != nil || discount.IsNegative() || discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return PricingConfig{}, fmt.Errorf("invalid LOYALTY_DISCOUNT value: %q", raw)
		}
		cfg.DiscountRate = discount
	}

	return cfg, nil
}
