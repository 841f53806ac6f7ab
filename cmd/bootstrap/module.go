package bootstrap

import (
	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule wires everything the use cases need, without the HTTP surface.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	TokenModule,
	InventoryModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
)
