package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/solmerch/orderbot/internal/config"
	"github.com/solmerch/orderbot/internal/handler"
	"github.com/solmerch/orderbot/internal/ledger"
	"github.com/solmerch/orderbot/internal/rates"
	"github.com/solmerch/orderbot/internal/service/intake"
	"github.com/solmerch/orderbot/internal/store/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Session store: Redis when configured, process memory otherwise.
	var sessions session.Store
	if cfg.Session.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.Session.TTL)
		log.Printf("session store: redis at %s", cfg.Session.RedisAddr)
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		log.Println("session store: in-memory")
	}

	// Order ledger: MySQL when configured, otherwise every referral misses.
	var reader ledger.Reader = ledger.Nop{}
	var recorder ledger.Recorder = ledger.Nop{}
	if cfg.Ledger.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.Ledger.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to open mysql: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		if _, err := db.ExecContext(ctx, ledger.Schema); err != nil {
			log.Fatalf("failed to ensure ledger schema: %v", err)
		}

		sqlLedger := ledger.NewSQLLedger(db)
		reader, recorder = sqlLedger, sqlLedger
		log.Println("order ledger: mysql")
	} else {
		log.Println("order ledger: not configured, referral lookups will miss")
	}

	rateClient := rates.NewClient(rates.Config{
		URL:      cfg.Rates.URL,
		AssetID:  cfg.Rates.AssetID,
		Timeout:  cfg.Rates.Timeout,
		Attempts: cfg.Rates.Attempts,
	})

	engine := intake.NewEngine(sessions, reader, recorder, rateClient, intake.Config{
		ShippingUSD:  cfg.Pricing.ShippingUSD,
		DiscountRate: cfg.Pricing.DiscountRate,
	})

	router := handler.NewRouter(engine)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("order intake backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
