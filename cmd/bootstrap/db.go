package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/db"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// MigrateOnStart applies the embedded schema before anything else touches the pool.
func MigrateOnStart(lc fx.Lifecycle, pool *pgxpool.Pool, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			logger.Info("database schema is up to date")
			return nil
		},
	})
}
