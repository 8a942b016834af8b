package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/locks"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type AddTableInput struct {
	SalonID string
	Shape   string
	Size    string
	ActorID *uint
}

type AddTable struct {
	deps Deps
}

func NewAddTable(deps Deps) *AddTable {
	return &AddTable{deps: deps}
}

// Execute allocates the next table id (max+1) and creates a free table.
func (uc *AddTable) Execute(ctx context.Context, in AddTableInput) (*models.Table, error) {
	var bad []string
	if !domain.Shape(in.Shape).Valid() {
		bad = append(bad, "shape")
	}
	if !domain.Size(in.Size).Valid() {
		bad = append(bad, "size")
	}
	if len(bad) > 0 {
		return nil, httperr.ErrValidation(bad...)
	}

	var created *models.Table

	err := uc.deps.withTables(ctx, []uint{locks.RegistryKey}, func(tx domain.Repository) error {
		if _, err := tx.GetSalon(ctx, in.SalonID); err != nil {
			if httperr.IsBusiness(err, httperr.CodeNotFound) {
				return domain.ErrInvalidSalon
			}
			return err
		}

		id, err := tx.NextTableID(ctx)
		if err != nil {
			return err
		}

		t := &models.Table{
			ID:      id,
			SalonID: in.SalonID,
			Shape:   in.Shape,
			Size:    in.Size,
			Status:  string(domain.StatusFree),
		}
		if err := tx.CreateTable(ctx, t); err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrBusy
			}
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(in.ActorID, "table_added", created.ID, map[string]any{
		"salon_id": created.SalonID,
		"shape":    created.Shape,
		"size":     created.Size,
	})

	return created, nil
}
