// cmd/server/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/juggernaut03/kalakritBackend/internal/database"
	"github.com/juggernaut03/kalakritBackend/internal/middleware"
	"github.com/juggernaut03/kalakritBackend/internal/repository/mongodb"
	"github.com/juggernaut03/kalakritBackend/internal/router"
	"github.com/juggernaut03/kalakritBackend/internal/services"
	"github.com/juggernaut03/kalakritBackend/internal/storage"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

const shutdownTimeout = 30 * time.Second

// kalakriti serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := boot()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The API is useless without its database, so connection and schema
	// failures end the process.
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer database.Close(context.Background(), db)

	if err := database.Initialize(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database schema")
	}

	driver, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure image store: %w", err)
	}
	storageService := services.NewStorageService(driver, cfg.Storage.Folder)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	_ = storageService.Ping(pingCtx)
	cancel()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authLimiter := middleware.PerMinute(cfg.RateLimit.AuthPerMinute)
	r := router.Initialize(cfg, router.Dependencies{
		Users:         mongodb.NewUserRepository(db),
		Products:      mongodb.NewProductRepository(db),
		Orders:        mongodb.NewOrderRepository(db),
		Notifications: mongodb.NewNotificationRepository(db),
		Images:        storageService,
		JWT:           utils.NewJWTManager(cfg.JWT.SecretKey, cfg.TokenTTL()),
		AuthLimiter:   authLimiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		authLimiter.Cleanup(ctx)
		return nil
	})

	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
			"image_store": storageService.DriverName(),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logrus.Info("Server exited")
		return nil
	})

	return g.Wait()
}
