package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/handler"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/middleware"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenVerifier
	Accounts ports.AccountService
	Products ports.ProductService
	Stock    ports.StockService
	Audit    ports.AuditService
	Checks   []handlers.Check
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	authn := middleware.Auth(deps.Tokens, deps.Logger)
	admin := middleware.RequireRole(domain.RoleAdmin)
	customer := middleware.RequireRole(domain.RoleCustomer)

	authHandler := handler.NewAuthHandler(deps.Auth)
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	productHandler := handler.NewProductHandler(deps.Products)
	stockHandler := handler.NewStockHandler(deps.Stock)
	auditHandler := handler.NewAuditHandler(deps.Audit)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Caller's own account ---
	me := e.Group("/me", authn)
	me.GET("", accountHandler.Me)
	me.PUT("/profile", accountHandler.UpdateMyProfile, customer)
	me.PUT("/password", accountHandler.ChangeMyPassword)

	// --- Accounts (self access is checked by the service) ---
	accounts := e.Group("/accounts", authn)
	accounts.POST("", accountHandler.Create, admin)
	accounts.GET("", accountHandler.List, admin)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.PUT("/:id/profile", accountHandler.UpdateProfile)
	accounts.PUT("/:id/password", accountHandler.ResetPassword, admin)
	accounts.DELETE("/:id", accountHandler.Delete, admin)

	// --- Catalog: public reads, admin writes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/search", productHandler.Search)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authn, admin)
	e.PUT("/products/:id", productHandler.Update, authn, admin)
	e.DELETE("/products/:id", productHandler.Delete, authn, admin)
	e.GET("/products/:id/stock", stockHandler.ListByProduct, authn)

	stock := e.Group("/stock", authn)
	stock.GET("", stockHandler.List)
	stock.GET("/:id", stockHandler.Get)
	stock.POST("", stockHandler.Create, admin)
	stock.PUT("/:id", stockHandler.Update, admin)
	stock.DELETE("/:id", stockHandler.Delete, admin)

	e.GET("/admin/audit", auditHandler.List, authn, admin)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.Checks...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
