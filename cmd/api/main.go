package main

import (
	"github.com/gin-gonic/gin"

	"serenityspa/internal/config"
	"serenityspa/internal/database"
	"serenityspa/internal/domain"
	applog "serenityspa/internal/log"
	"serenityspa/internal/middleware"
	"serenityspa/internal/modules/admin"
	"serenityspa/internal/modules/auth"
	"serenityspa/internal/modules/booking"
	"serenityspa/internal/modules/cart"
	"serenityspa/internal/modules/catalog"
	"serenityspa/internal/modules/checkout"
	"serenityspa/internal/modules/review"
	"serenityspa/internal/modules/voucher"
	"serenityspa/internal/notify"
	jwtsvc "serenityspa/internal/pkg/jwt"
	"serenityspa/internal/repository"
	"serenityspa/internal/storage"
	"serenityspa/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := applog.New(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	kv := storage.NewGormKV(db)
	if err := kv.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("client slot migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	sessions := store.NewSessionStore(kv, userRepo, cfg.LoginDelay, logger)
	carts := store.NewCartStore(kv, logger)
	vouchers := store.NewVoucherStore(kv, voucherRepo, logger)

	hub := notify.NewHub(logger)
	defer hub.Close()
	wsHandler := notify.NewWSHandler(hub, j)

	authHandler := auth.NewHandler(sessions, j)
	catalogHandler := catalog.NewHandler(branchRepo, serviceRepo, productRepo)
	cartHandler := cart.NewHandler(carts, productRepo, hub)
	voucherHandler := voucher.NewHandler(vouchers, hub)
	bookingHandler := booking.NewHandler(kv, branchRepo, serviceRepo, hub, cfg.ClosedWeekday, logger)
	checkoutHandler := checkout.NewHandler(carts, branchRepo, hub, cfg.CheckoutDelay, logger)
	reviewHandler := review.NewHandler(reviewRepo)
	adminHandler := admin.NewHandler(userRepo, branchRepo, serviceRepo, productRepo, voucherRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(logger))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		voucherHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// any signed-in user
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, sessions))
		{
			authHandler.RegisterProtectedRoutes(protected)
			cartHandler.RegisterRoutes(protected)
			voucherHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			checkoutHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
		}

		// back office, role-gated with redirects instead of 403s
		adminArea := v1.Group("/admin")
		adminArea.Use(middleware.Guard(j, sessions, domain.RoleAdmin))
		{
			adminHandler.RegisterAdminRoutes(adminArea)
		}

		managerArea := v1.Group("/admin")
		managerArea.Use(middleware.Guard(j, sessions, domain.RoleAdmin, domain.RoleManager))
		{
			adminHandler.RegisterManagerRoutes(managerArea)
		}
	}

	wsHandler.RegisterRoutes(r.Group("/"))

	logger.Info().Str("port", cfg.Port).Msg("starting api")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
