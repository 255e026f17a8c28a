package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gomarket/market-system/internal/api/handler"
	"github.com/gomarket/market-system/internal/api/middleware"
	"github.com/gomarket/market-system/internal/api/render"
	"github.com/gomarket/market-system/internal/core/service"
	"github.com/gomarket/market-system/internal/infrastructure/config"
	"github.com/gomarket/market-system/internal/infrastructure/db/postgres"
	redisdb "github.com/gomarket/market-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("market"))

	// --- Dependencies ---
	users := postgres.NewUserRepository(db)
	items := postgres.NewItemRepository(db)
	trades := postgres.NewTradeRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(users, sessions, cfg.SessionSecret, cfg.SessionTTL)
	catalogService := service.NewCatalogService(items, log)
	tradeService := service.NewTradeService(trades, log)

	authHandler := handler.NewAuthHandler(authService)
	marketHandler := handler.NewMarketHandler(catalogService)
	itemHandler := handler.NewItemHandler(catalogService)
	tradeHandler := handler.NewTradeHandler(tradeService)

	optionalSession := middleware.OptionalSession(authService)
	requireSession := middleware.Session(authService)
	requireAdmin := middleware.RequireAdmin()

	// --- Public routes ---
	e.GET("/", marketHandler.Home, optionalSession)
	e.GET("/home", marketHandler.Home, optionalSession)
	e.GET("/login", authHandler.ShowLogin, optionalSession)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.ShowRegister, optionalSession)
	e.POST("/register", authHandler.Register)

	// --- Authenticated routes ---
	e.GET("/market", marketHandler.Market, requireSession)
	e.GET("/inventory", marketHandler.Inventory, requireSession)
	e.GET("/add_money", tradeHandler.ShowAddMoney, requireSession)
	e.POST("/add_money", tradeHandler.AddMoney, requireSession)
	e.GET("/item/:id", itemHandler.Show, requireSession)
	e.POST("/item/:id", itemHandler.Edit, requireSession)
	e.POST("/sell_item/:id", tradeHandler.Sell, requireSession)
	e.POST("/delete_item/:id", itemHandler.Delete, requireSession)
	e.POST("/add_to_account/:id", tradeHandler.Purchase, requireSession)
	e.GET("/logout", authHandler.Logout, requireSession)

	// --- Admin routes ---
	e.GET("/add_item", itemHandler.ShowAdd, requireSession, requireAdmin)
	e.POST("/add_item", itemHandler.Add, requireSession, requireAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
