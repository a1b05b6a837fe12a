// Package routes assembles the HTTP surface shared by the local server and
// the Lambda entrypoint.
package routes

import (
	"net/http"
	"time"

	"labtracker/internal/adapter/http/handlers"
	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const PathV1 = "/v1"

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	Quote         *handlers.QuoteHandler
	Payment       *handlers.QuotePaymentHandler
	Realtime      *handlers.RealtimeHandler
	Account       *handlers.AccountHandler
	Usage         *handlers.UsageHandler
	Impersonation *handlers.ImpersonationHandler
}

// Options configures the middleware chain.
type Options struct {
	Verifier      middleware.TokenVerifier
	AuthDisabled  bool
	Roles         middleware.RoleResolver
	Impersonation middleware.ImpersonationReader
	CORSOrigins   []string
	Logger        *zap.Logger
}

// NewRouter builds the engine: public system routes plus the authenticated
// /v1 API.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	log := logger.OrNop(opts.Logger)

	router := gin.New()
	setMiddlewares(router, opts.CORSOrigins, log)
	addSystemRoutes(router)

	v1 := router.Group(PathV1)
	v1.Use(
		middleware.Auth(opts.Verifier, opts.AuthDisabled, log),
		middleware.Identity(opts.Roles, opts.Impersonation, log),
	)
	addQuoteRoutes(v1, h.Quote, h.Payment, h.Realtime)
	addAccountRoutes(v1, h.Account, h.Usage, h.Impersonation)

	return router
}

func setMiddlewares(router *gin.Engine, origins []string, log *zap.Logger) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(middleware.Recovery(middleware.LogReporter{Log: log}))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderSessionID, middleware.HeaderDevUserID},
		MaxAge:       12 * time.Hour,
	}))
}

func addSystemRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
