package app

import (
	"context"

	"attendance-service/internal/attendance"
	"attendance-service/internal/attendance/handler"
	"attendance-service/internal/clock"
	"attendance-service/internal/config"
	"attendance-service/internal/logger"
	"attendance-service/internal/middleware"
	"attendance-service/internal/roster"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	var store attendance.Store
	switch cfg.StoreBackend {
	case "redis":
		store = attendance.NewRedisStore(infra.Redis.Client)
	case "memory":
		store = attendance.NewMemoryStore()
	default:
		store = attendance.NewPostgresStore(infra.DB)
	}

	logger.Info("session store configured", map[string]any{
		"backend": cfg.StoreBackend,
	})

	lessonRoster := roster.NewDBRoster(infra.DB)
	systemClock := clock.System()

	issuer := attendance.NewIssuer(store, lessonRoster, systemClock,
		attendance.IssuerConfig{
			TokenBytes: cfg.TokenBytes,
			Window:     cfg.TokenWindow,
		},
	)
	verifier := attendance.NewVerifier(store, lessonRoster, systemClock)

	attendanceHandler := handler.NewHandler(issuer, verifier, store, lessonRoster)

	identity := middleware.NewIdentityMiddleware()

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Authenticated API Routes
	// ----------------------------

	api := router.Group("/")
	api.Use(middleware.GinRequireIdentity(identity))

	attendanceHandler.RegisterRoutes(api)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
