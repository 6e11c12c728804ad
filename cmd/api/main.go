package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/logger"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/user"
	"shareit/internal/repository"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.ErrorLogger.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.ErrorLogger.Fatal(err)
	}
	if cfg.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			logger.ErrorLogger.Fatal(err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	itemService := item.NewService(itemRepo, userRepo)
	itemHandler := item.NewHandler(itemService, cfg.ListPageLimit)

	bookingService := booking.NewService(bookingRepo, userRepo, itemRepo)
	bookingHandler := booking.NewHandler(bookingService, cfg.ListPageLimit)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		// user creation needs no identity header
		userHandler.RegisterRoutes(v1)

		authed := v1.Group("/")
		authed.Use(middleware.Identity())
		{
			itemHandler.RegisterRoutes(authed)
			bookingHandler.RegisterRoutes(authed)
		}
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.InfoLogger.Infof("listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil {
		logger.ErrorLogger.Fatal(err)
	}
}
