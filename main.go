package main

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/upostnikova0/java-shareit/api"
	bk "github.com/upostnikova0/java-shareit/booking"
	"github.com/upostnikova0/java-shareit/config"
	"github.com/upostnikova0/java-shareit/item"
	"github.com/upostnikova0/java-shareit/request"
	"github.com/upostnikova0/java-shareit/user"
)

//go:embed database/setup.sql
var setupSQL string

func main() {
	logger := slog.Default().With("component", "main")

	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", "err", err)
	}

	cfg, err := config.Load()

	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger.Info("connecting to PostgreSQL database")
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)

	if err != nil {
		logger.Error("Unable to connect to database", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	_, err = pool.Exec(context.Background(), setupSQL)
	if err != nil {
		logger.Error("failed to initialize tables", "err", err)
		os.Exit(1)
	} else {
		logger.Info("initialized database tables")
	}

	userRepo := user.NewRepository(pool)
	userService := user.NewService(userRepo, cfg.UserCacheTTL, cfg.UserCacheCleanup)

	requestRepo := request.NewRepository(pool)
	requestService := request.NewService(requestRepo, userService)

	itemRepo := item.NewRepository(pool)
	bookingRepo := bk.NewRepository(pool)
	bookingService := bk.NewService(bookingRepo, userService, itemRepo)
	itemService := item.NewService(itemRepo, userService, requestService, bookingService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// USER API (no sharer header)

	userHandler := api.NewUserHandler(userService)
	userHandler.Register(r.Group("/users"))

	// ITEM API

	itemHandler := api.NewItemHandler(itemService)
	itemHandler.RegisterPublic(r.Group("/items"))

	itemRouter := r.Group("/items")
	itemRouter.Use(api.SharerAuth())
	itemHandler.Register(itemRouter)

	// BOOKING API

	bookingRouter := r.Group("/bookings")
	bookingRouter.Use(api.SharerAuth())
	bookingHandler := api.NewBookingHandler(bookingService)

	bookingHandler.Register(bookingRouter)

	// ITEM REQUEST API

	requestRouter := r.Group("/requests")
	requestRouter.Use(api.SharerAuth())
	requestHandler := api.NewRequestHandler(requestService)

	requestHandler.Register(requestRouter)

	r.Run(cfg.HTTPAddr)
}
