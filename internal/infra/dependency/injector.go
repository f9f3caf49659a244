// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cash-register/backend/config"
	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/application/usecase/auth"
	"github.com/cash-register/backend/internal/application/usecase/barber"
	"github.com/cash-register/backend/internal/application/usecase/cashregister"
	"github.com/cash-register/backend/internal/infra/lock"
	"github.com/cash-register/backend/internal/infra/server/router"
	"github.com/cash-register/backend/internal/integration/adapters"
	"github.com/cash-register/backend/internal/integration/entrypoint/controller"
	"github.com/cash-register/backend/internal/integration/entrypoint/middleware"
	"github.com/cash-register/backend/internal/integration/export"
	"github.com/cash-register/backend/internal/integration/persistence"
	"github.com/cash-register/backend/internal/integration/worker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	SeedBarbers      *barber.SeedBarbersUseCase
	TokenCleanup     *worker.TokenCleanupWorker
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case register operations are not locked across instances.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, clock adapter.Clock) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	registerRepo := persistence.NewCashRegisterRepository(db)
	barberRepo := persistence.NewBarberRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:          cfg.JWT.Secret,
		AccessDuration:  cfg.JWT.AccessTokenExpiry,
		RefreshDuration: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)

	var locker adapter.RegisterLocker
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
	} else {
		locker = lock.NewNopLocker()
	}

	location := cfg.CashRegister.Location()
	policy := cashregister.Policy{
		RequireBarberForSale: cfg.CashRegister.RequireBarberForSale,
		HistoryDefaultLimit:  cfg.CashRegister.HistoryDefaultLimit,
		HistoryMaxLimit:      cfg.CashRegister.HistoryMaxLimit,
		Location:             location,
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create cash register use cases
	openUseCase := cashregister.NewOpenCashRegisterUseCase(registerRepo, locker, clock)
	statusUseCase := cashregister.NewGetCashStatusUseCase(registerRepo)
	recordMovementUseCase := cashregister.NewRecordMovementUseCase(registerRepo, barberRepo, locker, clock, policy)
	closeUseCase := cashregister.NewCloseCashRegisterUseCase(registerRepo, locker, clock)
	listClosingsUseCase := cashregister.NewListClosingsUseCase(registerRepo, clock, policy)
	exportClosingsUseCase := cashregister.NewExportClosingsUseCase(listClosingsUseCase, export.NewXLSXExporter(location), clock)
	listMovementsUseCase := cashregister.NewListMovementsUseCase(registerRepo)

	// Create barber use cases
	listBarbersUseCase := barber.NewListBarbersUseCase(barberRepo)
	seedBarbersUseCase := barber.NewSeedBarbersUseCase(barberRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthChecker(redisClient))

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	cashRegisterController := controller.NewCashRegisterController(
		openUseCase,
		statusUseCase,
		recordMovementUseCase,
		closeUseCase,
		listClosingsUseCase,
		exportClosingsUseCase,
		listMovementsUseCase,
		listBarbersUseCase,
	)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		cashRegisterController,
		loginRateLimiter,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		SeedBarbers:      seedBarbersUseCase,
		TokenCleanup:     worker.NewTokenCleanupWorker(tokenRepo, clock, cfg.JWT.CleanupInterval),
		LoginRateLimiter: loginRateLimiter,
	}
}

func redisHealthChecker(client *redis.Client) controller.HealthChecker {
	if client == nil {
		return nil
	}
	return func() bool {
		return client.Ping(context.Background()).Err() == nil
	}
}
