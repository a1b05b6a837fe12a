package routes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"labtracker/internal/adapter/http/handlers"
	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/adapter/persistence/repository"
	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
	"labtracker/internal/impersonation"
	"labtracker/internal/infrastructure/cache"
	"labtracker/internal/infrastructure/config"
	"labtracker/internal/infrastructure/database"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/infrastructure/payments"
	"labtracker/internal/infrastructure/realtime"
	"labtracker/internal/usecase"
	"labtracker/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App is the wired service. Close releases the broker and Redis connection.
type App struct {
	Router  *gin.Engine
	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Build connects to DynamoDB and, when configured, Redis, then wires the
// repositories, use cases and handlers into a router.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	app := &App{}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: %w", err)
	}

	t := cfg.Tables
	quoteRepo := repository.NewQuoteDynamoRepository(ddb, t.Quotes)
	itemRepo := repository.NewQuoteItemDynamoRepository(ddb, t.QuoteItems)
	catalogRepo := repository.NewCatalogDynamoRepository(ddb, t.Products, t.Labs)
	paymentRepo := repository.NewQuotePaymentDynamoRepository(ddb, t.Payments)
	subscriptionRepo := repository.NewSubscriptionDynamoRepository(ddb, t.Subscriptions)
	usageRepo := repository.NewUsageDynamoRepository(ddb, t.UsageTracking)
	roleRepo := repository.NewUserRoleDynamoRepository(ddb, t.UserRoles)
	profileRepo := repository.NewProfileDynamoRepository(ddb, t.Profiles)
	labUserRepo := repository.NewLabUserDynamoRepository(ddb, t.LabUsers)

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	var (
		broker realtime.Broker
		store  impersonation.Store
	)
	if redisClient != nil {
		log.Info("using redis for realtime and impersonation", zap.String("addr", cfg.Redis.Addr))
		broker = realtime.NewRedisBroker(redisClient, cfg.Redis.EventsChannel, log)
		store = impersonation.NewRedisStore(redisClient, cfg.Redis.SessionTTL)
		app.closers = append(app.closers, func() { _ = redisClient.Close() })
	} else {
		mem := realtime.NewMemoryBroker(log)
		broker = mem
		store = impersonation.NewMemoryStore(cfg.Redis.SessionTTL)
		app.closers = append(app.closers, mem.Close)
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, log)
	if err != nil {
		log.Warn("payment gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	calc := pricing.NewCalculator(cfg.Pricing.AdditionalSamplePrice, cfg.Pricing.AdditionalHeaderPrice)

	usageUseCase := usecase.NewUsageUseCase(subscriptionRepo, usageRepo, log)
	userUseCase := usecase.NewUserUseCase(roleRepo, profileRepo, labUserRepo, log)
	quoteUseCase := usecase.NewQuoteUseCase(usecase.QuoteUseCaseDeps{
		Quotes:     quoteRepo,
		Items:      itemRepo,
		Catalog:    catalogRepo,
		Usage:      usageUseCase,
		Events:     broker,
		Calculator: calc,
		Logger:     log,
	})
	paymentUseCase := usecase.NewQuotePaymentUseCase(usecase.QuotePaymentUseCaseDeps{
		Payments:   paymentRepo,
		Quotes:     quoteRepo,
		Items:      itemRepo,
		Catalog:    catalogRepo,
		Gateway:    gateway,
		Events:     broker,
		Calculator: calc,
		Options:    usecase.PaymentOptions{MockMode: cfg.Payments.MockMode, TestPayerEmail: cfg.Payments.TestPayerEmail},
		Logger:     log,
	})
	sw := impersonation.NewSwitch(store, log)
	app.closers = append(app.closers, sw.Subscribe(func(_ string, current entities.ImpersonatedUser) {
		kind := string(current.Kind)
		if kind == "" {
			kind = "none"
		}
		metrics.ImpersonationChanges.WithLabelValues(kind).Inc()
	}))

	var verifier middleware.TokenVerifier
	if cfg.Auth.Disabled {
		log.Warn("authentication disabled, callers are identified by " + middleware.HeaderDevUserID)
	} else {
		jwtVerifier, err := middleware.NewJWTVerifier(ctx, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.JWKSURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
		verifier = jwtVerifier
	}

	app.Router = NewRouter(Handlers{
		Quote:         handlers.NewQuoteHandler(quoteUseCase, log),
		Payment:       handlers.NewQuotePaymentHandler(paymentUseCase, log),
		Realtime:      handlers.NewRealtimeHandler(broker, 0, log),
		Account:       handlers.NewAccountHandler(userUseCase, log),
		Usage:         handlers.NewUsageHandler(usageUseCase, log),
		Impersonation: handlers.NewImpersonationHandler(sw, log),
	}, Options{
		Verifier:      verifier,
		AuthDisabled:  cfg.Auth.Disabled,
		Roles:         userUseCase,
		Impersonation: sw,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        log,
	})
	return app, nil
}

// Run serves the API until ctx is done, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log = logger.OrNop(log)
	app, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	// streaming handlers watch the request context, which derives from this
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	cancelStreams()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
