package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitledger/internal/auth"
	"splitledger/internal/handlers"
	"splitledger/internal/service"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	addr := getEnv("ADDR", ":8080")
	dbPath := getEnv("DB_PATH", "./data/ledger.db")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("Invalid TOKEN_TTL", "value", raw, "error", err)
			os.Exit(1)
		}
		tokenTTL = parsed
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	tokens := auth.NewJWTManager(secret, tokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := handlers.NewRouter(
		handlers.NewAuthHandler(authenticator, tokens),
		handlers.NewGroupHandler(service.NewGroupService(store)),
		handlers.NewExpenseHandler(service.NewExpenseService(store)),
		tokens,
	)

	// h2c allows HTTP/2 without TLS for clients that want it
	handler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
