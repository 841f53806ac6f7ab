package main

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app := fx.New(
			bootstrap.ConfigModule,
			bootstrap.LoggerModule,
			bootstrap.DBModule,
			fx.NopLogger,
			fx.Invoke(bootstrap.MigrateOnStart),
		)
		if err := app.Start(ctx); err != nil {
			return err
		}
		return app.Stop(context.Background())
	},
}
