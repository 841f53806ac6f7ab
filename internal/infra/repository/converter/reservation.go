package converter

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.TimeSlot()
	return sqlc.CreateReservationParams{
		ResourceID: res.ResourceID(),
		UserID:     res.UserID(),
		StartAt:    pgconv.TimeToPgtype(slot.Start()),
		EndAt:      pgconv.TimeToPgtype(slot.End()),
		Token:      res.Token(),
	}
}

func ReservationToUpdateParams(res *reservation.Reservation) sqlc.UpdateReservationParams {
	slot := res.TimeSlot()
	return sqlc.UpdateReservationParams{
		ID:         res.ID(),
		ResourceID: res.ResourceID(),
		StartAt:    pgconv.TimeToPgtype(slot.Start()),
		EndAt:      pgconv.TimeToPgtype(slot.End()),
		Token:      res.Token(),
	}
}

func ReservationFromRow(row sqlc.Reservations) *reservation.Reservation {
	return reservation.ReconstructReservation(
		row.ID,
		row.ResourceID,
		row.UserID,
		reservation.ReconstructTimeSlot(pgconv.TimeFromPgtype(row.StartAt), pgconv.TimeFromPgtype(row.EndAt)),
		row.Token,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
