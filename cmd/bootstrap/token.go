package bootstrap

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/token"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		fx.Annotate(
			NewSigner,
			fx.As(new(commands.Signer)),
			fx.As(new(queries.TokenVerifier)),
		),
	),
)

func NewSigner(cfg config.Config) (*token.Signer, error) {
	return token.NewSigner(cfg.Token.Secret)
}
