package components

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewResourceHandler,
		api.NewInventoryHandler,
		api.NewUserHandler,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(r *api.ReservationHandler, res *api.ResourceHandler, inv *api.InventoryHandler, u *api.UserHandler) handler.Handlers {
	return handler.Handlers{
		Reservations: r,
		Resources:    res,
		Inventory:    inv,
		Users:        u,
	}
}
