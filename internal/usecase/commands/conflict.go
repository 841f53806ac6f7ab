package commands

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

// overlaps is the single overlap check used by create, update and the
// standalone query. excludeID 0 excludes nothing.
func overlaps(ctx context.Context, repo shared.ReservationRepository, resourceID int64, slot reservation.TimeSlot, excludeID int64) (bool, error) {
	n, err := repo.CountOverlapping(ctx, resourceID, slot, excludeID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func alreadyReserved(resourceName string, slot reservation.TimeSlot) error {
	return errs.Newf(errs.KindAlreadyReserved,
		"Resource %s is already reserved. Please, check your dates.", resourceName).
		With("resource", resourceName).
		With("window", slot.String())
}
