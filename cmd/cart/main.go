package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_cart/internal/config"
	"github.com/Skotchmaster/shop_cart/internal/httpserver"
	"github.com/Skotchmaster/shop_cart/internal/models"
	"github.com/Skotchmaster/shop_cart/internal/mykafka"
	"github.com/Skotchmaster/shop_cart/internal/repo"
	"github.com/Skotchmaster/shop_cart/internal/service"
	"github.com/Skotchmaster/shop_cart/pkg/db"
	"github.com/Skotchmaster/shop_cart/pkg/logging"
	loggingmw "github.com/Skotchmaster/shop_cart/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Cart{},
		&models.LineItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		defer producer.Close()
	}

	gormRepo := &repo.GormRepo{DB: gormDB}

	cartService := &service.CartService{
		Repo:               gormRepo,
		DecrementInventory: cfg.CheckoutDecrementsInventory,
	}
	itemService := &service.ItemService{Repo: gormRepo}
	orderService := &service.OrderService{Repo: gormRepo}

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:  &httpserver.CartHTTP{Svc: cartService, Producer: producer},
		ItemHandler:  &httpserver.ItemHTTP{Svc: itemService},
		OrderHandler: &httpserver.OrderHTTP{Svc: orderService},
		JWTSecret:    cfg.JWTSecret,
	})

	port := strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("starting cart service", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
