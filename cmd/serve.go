package main

import (
	"context"
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServer()
	},
}

// @title           avr-lab-reservation
// @version         1.0
// @description     Reservations of AVR lab boards and simulators.

// @BasePath  /
// @schemes http https
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			listenAddr := ":" + cfg.Server.Port
			logger.Info("starting server", "address", listenAddr, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("server stopped with error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping server")
			return nil
		},
	})
}

// syncInventoryOnStart reconciles once at boot. A broken inventory file is
// logged and the API still starts with whatever is stored.
func syncInventoryOnStart(lc fx.Lifecycle, cfg config.Config, inventory commands.InventoryCommands, logger *slog.Logger) {
	if !cfg.Inventory.SyncOnStart {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			result, err := inventory.ReconcileFromSource(ctx)
			if err != nil {
				logger.Error("inventory sync failed", "path", cfg.Inventory.Path, "error", err)
				return nil
			}
			logger.Info("inventory synced",
				"created", result.Created,
				"updated", result.Updated,
				"unchanged", result.Unchanged,
				"marked_unavailable", result.MarkedUnavailable,
			)
			return nil
		},
	})
}

func runServer() error {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			bootstrap.MigrateOnStart,
			syncInventoryOnStart,
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "error", err)
		return err
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "error", err)
	}

	slog.Info("application stopped")
	return nil
}
