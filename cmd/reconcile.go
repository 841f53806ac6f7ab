package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/inventory"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var inventoryPath string

func init() {
	reconcileCmd.Flags().StringVar(&inventoryPath, "inventory", "", "inventory file to reconcile against (defaults to INVENTORY_PATH)")
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Sync stored resources with the inventory file",
	Long: `Reconcile loads the inventory file, creates or updates the listed resources
and marks every other resource unavailable. Nothing is changed when the file
has an invalid entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReconcile(cmd.Context(), inventoryPath)
	},
}

func runReconcile(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var uc commands.InventoryCommands
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Invoke(bootstrap.MigrateOnStart),
		fx.Populate(&uc),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	var (
		result *commands.ReconcileResult
		err    error
	)
	if path != "" {
		entries, loadErr := inventory.NewFileSource(path).Load(ctx)
		if loadErr != nil {
			return loadErr
		}
		result, err = uc.Reconcile(ctx, entries)
	} else {
		result, err = uc.ReconcileFromSource(ctx)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
