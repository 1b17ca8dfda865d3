package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"google.golang.org/api/option"

	"github.com/finwise/finance-api/internal/api/handlers"
	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/auth"
	"github.com/finwise/finance-api/internal/config"
	"github.com/finwise/finance-api/internal/logger"
	"github.com/finwise/finance-api/internal/store"
	fsstore "github.com/finwise/finance-api/internal/store/firestore"
	"github.com/finwise/finance-api/internal/store/inmemory"
)

// recordStore is the full set of repositories a backend must provide.
type recordStore interface {
	store.TransactionRepository
	store.BudgetRepository
	store.CategoryRepository
	store.UserRepository
	Close() error
}

func main() {
	// Flags win over environment values.
	var (
		port    = flag.String("port", "", "HTTP server port (overrides PORT env)")
		backend = flag.String("backend", "", "record store backend: firestore or memory (overrides STORE_BACKEND env)")
	)
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	// Initialize logger
	log := logger.New()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.ProjectID, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token verifier")
	}

	var recStore recordStore
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory store - data is lost on restart")
		recStore = inmemory.New()
	default:
		recStore, err = fsstore.New(ctx, cfg.ProjectID, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create record store")
		}
	}
	defer recStore.Close()

	// Initialize handlers
	usersHandler := handlers.NewUsersHandler(recStore, verifier, log)
	transactionsHandler := handlers.NewTransactionsHandler(recStore, log)
	budgetsHandler := handlers.NewBudgetsHandler(recStore, log)
	categoriesHandler := handlers.NewCategoriesHandler(recStore, log)
	analyticsHandler := handlers.NewAnalyticsHandler(recStore, log)

	// Protected routes: everything here sits behind the auth gate and
	// never runs without a verified identity.
	protected := http.NewServeMux()

	protected.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			usersHandler.Create(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			usersHandler.Profile(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.Get(w, r, id)
		case http.MethodPut:
			transactionsHandler.Update(w, r, id)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			budgetsHandler.List(w, r)
		case http.MethodPost:
			budgetsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/budgets/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/budgets/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Budget ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			budgetsHandler.Get(w, r, id)
		case http.MethodPut:
			budgetsHandler.Update(w, r, id)
		case http.MethodDelete:
			budgetsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categoriesHandler.List(w, r)
		case http.MethodPost:
			categoriesHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/categories/type/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		typ := strings.TrimPrefix(r.URL.Path, "/categories/type/")
		categoriesHandler.ListByType(w, r, typ)
	})

	protected.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/categories/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Category ID is required")
			return
		}
		switch r.Method {
		case http.MethodPut:
			categoriesHandler.Update(w, r, id)
		case http.MethodDelete:
			categoriesHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/analytics/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.PeriodTotals(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/analytics/monthly-totals", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.MonthlyTotals(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	protected.HandleFunc("/analytics/category-totals", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.CategoryTotals(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Public routes plus the gated subtree.
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/verify-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			usersHandler.VerifyToken(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	mux.Handle("/", middleware.Auth(verifier, log)(protected))

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.RequestID(log)(
			middleware.Logger(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
