package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mashop/storefront/internal/activity"
	"github.com/mashop/storefront/internal/cart"
	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/config"
	"github.com/mashop/storefront/internal/db"
	"github.com/mashop/storefront/internal/events"
	"github.com/mashop/storefront/internal/handlers"
	"github.com/mashop/storefront/internal/logging"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
	"github.com/mashop/storefront/internal/session"
	httpserver "github.com/mashop/storefront/internal/transport/http"
	"github.com/mashop/storefront/internal/wishlist"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	gormDB, err := db.Open(context.Background(), configuration.DB_DRIVER, configuration.DATABASE_URL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	catalogClient := catalog.NewClient(configuration.CATALOG_URL)

	sessions := &session.Store{
		DB:            gormDB,
		Catalog:       catalogClient,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		AdminUsername: configuration.ADMIN_USERNAME,
	}
	recorder := &activity.Recorder{DB: gormDB, Producer: prod}
	cartStore := &cart.Store{DB: gormDB}
	wishlistStore := &wishlist.Store{DB: gormDB}
	sessionMW := &mwauth.SessionMiddleware{Sessions: sessions}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB:              gormDB,
		AuthHandler:     &handlers.AuthHandler{Sessions: sessions, Catalog: catalogClient, Activity: recorder},
		ProductsHandler: &handlers.ProductsHandler{Catalog: catalogClient},
		CartHandler:     &handlers.CartHandler{Cart: cartStore, Catalog: catalogClient, Activity: recorder},
		WishlistHandler: &handlers.WishlistHandler{Wishlist: wishlistStore, Catalog: catalogClient},
		AdminHandler:    &handlers.AdminHandler{Catalog: catalogClient, Activity: recorder},
		Session:         sessionMW,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.PORT),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
