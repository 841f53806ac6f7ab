package bootstrap

import (
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/middleware"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger builds the process-wide slog logger and installs it as the default.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
