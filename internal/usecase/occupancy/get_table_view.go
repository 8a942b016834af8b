package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/dto"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type GetTableView struct {
	repo domain.Repository
}

func NewGetTableView(repo domain.Repository) *GetTableView {
	return &GetTableView{repo: repo}
}

func (uc *GetTableView) Execute(ctx context.Context, tableID uint) (*dto.TableSnapshot, error) {
	table, err := uc.repo.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	salon, err := uc.repo.GetSalon(ctx, table.SalonID)
	if err != nil {
		return nil, err
	}

	snap := &dto.TableSnapshot{
		TableID:   table.ID,
		SalonID:   table.SalonID,
		SalonName: salon.Name,
		Shape:     table.Shape,
		Size:      table.Size,
		Status:    table.Status,
	}

	if table.ActiveReservationID != nil {
		res, err := uc.repo.GetReservation(ctx, *table.ActiveReservationID)
		if err != nil {
			return nil, err
		}
		snap.Reservation = reservationView(res)
	}

	return snap, nil
}

func reservationView(r *models.Reservation) *dto.ReservationView {
	return &dto.ReservationView{
		ID:           r.ID,
		GuestName:    r.GuestName,
		PartySize:    r.PartySize,
		Date:         r.Date,
		Time:         r.Time,
		DurationHint: r.DurationHint,
		Origin:       r.Origin,
		Notes:        r.Notes,
		SalonName:    r.SalonName,
		CreatedAt:    r.CreatedAt,
		SeatedAt:     r.SeatedAt,
	}
}

// ======================================================
// GET RESERVATION
// ======================================================

type GetReservation struct {
	repo domain.Repository
}

func NewGetReservation(repo domain.Repository) *GetReservation {
	return &GetReservation{repo: repo}
}

func (uc *GetReservation) Execute(ctx context.Context, id string) (*models.Reservation, error) {
	return uc.repo.GetReservation(ctx, id)
}
