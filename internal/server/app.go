package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/controller"
	"github.com/rublebank/rubank/internal/repository"
	"github.com/rublebank/rubank/internal/service"
)

// App hosts the demo banking backend: the three endpoints the client
// speaks to, backed by Postgres.
type App struct {
	cfg    *Config
	Router *chi.Mux
	db     *repository.Database
	Logger *zap.Logger
	Server *http.Server
}

func New(cfg *Config, logger *zap.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		Router: chi.NewRouter(),
		Logger: logger,
	}

	if err := app.initDB(); err != nil {
		return nil, err
	}
	app.initRouter()

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Server = &http.Server{
		Addr:    a.cfg.RunAddress,
		Handler: a.Router,
	}

	go func() {
		a.Logger.Info("Starting HTTP server",
			zap.String("address", a.cfg.RunAddress))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	return a.shutdown()
}

func (a *App) initDB() error {
	db, err := repository.NewDatabase(repository.DatabaseConfig{
		DSN:            a.cfg.DatabaseURI,
		MigrationsPath: a.cfg.MigrationsPath,
	})
	if err != nil {
		a.Logger.Error("Database initialization failed",
			zap.String("dsn", a.cfg.MaskDBPassword()),
			zap.Error(err))
		return fmt.Errorf("database initialization failed: %w", err)
	}

	a.db = db
	a.Logger.Info("Database initialized",
		zap.String("migrations_path", a.cfg.MigrationsPath))

	return nil
}

func (a *App) initRouter() {
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.RealIP)
	a.Router.Use(middleware.Logger)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.Compress(5))
	a.Router.Use(controller.CORSMiddleware)

	// Repositories
	userRepo := repository.NewUserRepository(a.db)
	txRepo := repository.NewTransactionRepository(a.db)

	// Services
	authService := service.NewAuthService(userRepo)
	transferService := service.NewTransferService(userRepo, txRepo, a.Logger)
	balanceService := service.NewBalanceService(userRepo)

	// Controllers
	authController := controller.NewAuthController(authService, a.Logger)
	transactionsController := controller.NewTransactionsController(transferService, a.Logger)
	balanceController := controller.NewBalanceController(balanceService, a.Logger)

	a.Router.Post("/api/auth", authController.Authenticate)
	a.Router.Get("/api/transactions", transactionsController.List)
	a.Router.Post("/api/transactions", transactionsController.Transfer)
	a.Router.Get("/api/balance", balanceController.GetBalance)
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.Server.Shutdown(ctx)
}
