package components

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/clock"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewValidator,
	commands.NewTokenIssuer,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewInventoryUseCase,
		commands.NewUserUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewResourceQueries,
		queries.NewUserQueries,
	),
)
