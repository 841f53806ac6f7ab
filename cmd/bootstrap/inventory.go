package bootstrap

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/inventory"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"

	"go.uber.org/fx"
)

var InventoryModule = fx.Module("inventory",
	fx.Provide(
		fx.Annotate(
			NewInventorySource,
			fx.As(new(commands.InventorySource)),
		),
	),
)

func NewInventorySource(cfg config.InventoryConfig) *inventory.FileSource {
	return inventory.NewFileSource(cfg.Path)
}
