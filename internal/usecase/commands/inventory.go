package commands

import (
	"context"
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

// InventorySource yields the full list of resources that currently exist.
type InventorySource interface {
	Load(ctx context.Context) ([]resource.InventoryEntry, error)
}

type ReconcileResult struct {
	Created           int   `json:"created"`
	Updated           int   `json:"updated"`
	Unchanged         int   `json:"unchanged"`
	MarkedUnavailable int64 `json:"marked_unavailable"`
}

type InventoryCommands interface {
	Reconcile(ctx context.Context, entries []resource.InventoryEntry) (*ReconcileResult, error)
	ReconcileFromSource(ctx context.Context) (*ReconcileResult, error)
}

type inventoryUseCaseImpl struct {
	uow    shared.UnitOfWork
	source InventorySource
}

func NewInventoryUseCase(uow shared.UnitOfWork, source InventorySource) InventoryCommands {
	return &inventoryUseCaseImpl{uow: uow, source: source}
}

func (uc *inventoryUseCaseImpl) ReconcileFromSource(ctx context.Context) (*ReconcileResult, error) {
	entries, err := uc.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return uc.Reconcile(ctx, entries)
}

// Reconcile replaces the stored inventory with entries. Types are committed as
// they are resolved; resource changes commit together or not at all.
func (uc *inventoryUseCaseImpl) Reconcile(ctx context.Context, entries []resource.InventoryEntry) (*ReconcileResult, error) {
	if err := resource.CheckInventory(entries); err != nil {
		return nil, err
	}

	typeIDs, err := uc.resolveTypes(ctx, entries)
	if err != nil {
		return nil, translateStoreErr(err, "")
	}

	var result ReconcileResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = ReconcileResult{}

		if err := tx.Locks().Lock(ctx, shared.InventoryLockKey); err != nil {
			return err
		}

		keep := make([]int64, 0, len(entries))
		for _, entry := range entries {
			desired := resource.FromEntry(entry, typeIDs[entry.NormalizedType()])
			keep = append(keep, desired.ID())

			existing, err := tx.Resources().FindByID(ctx, desired.ID())
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				if err := tx.Resources().Create(ctx, desired); err != nil {
					return err
				}
				result.Created++
			case err != nil:
				return err
			case existing.SameAs(desired):
				result.Unchanged++
			default:
				if err := tx.Resources().Update(ctx, desired); err != nil {
					return err
				}
				result.Updated++
			}
		}

		n, err := tx.Resources().MarkUnavailableExcept(ctx, keep)
		if err != nil {
			return err
		}
		result.MarkedUnavailable = n
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "")
	}

	slog.Info("inventory reconciled",
		"entries", len(entries),
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"marked_unavailable", result.MarkedUnavailable)
	return &result, nil
}

func (uc *inventoryUseCaseImpl) resolveTypes(ctx context.Context, entries []resource.InventoryEntry) (map[string]int64, error) {
	ids := make(map[string]int64)
	for _, entry := range entries {
		name := entry.NormalizedType()
		if _, ok := ids[name]; ok {
			continue
		}
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			id, err := tx.ResourceTypes().Upsert(ctx, name)
			if err != nil {
				return err
			}
			ids[name] = id
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
