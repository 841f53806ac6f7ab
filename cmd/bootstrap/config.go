package bootstrap

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections splits a provided config.Config into the sections
// constructors ask for directly.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.ReservationConfig { return cfg.Reservation },
	func(cfg config.Config) config.TokenConfig { return cfg.Token },
	func(cfg config.Config) config.InventoryConfig { return cfg.Inventory },
)
