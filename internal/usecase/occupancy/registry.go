package occupancy

import (
	"context"
	"strings"

	"github.com/Soulinho/pandawok-project/internal/audit"
	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/dto"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
)

// ======================================================
// LIST TABLES
// ======================================================

type ListTables struct {
	repo domain.Repository
}

func NewListTables(repo domain.Repository) *ListTables {
	return &ListTables{repo: repo}
}

// Execute returns the salon's tables ordered by id.
func (uc *ListTables) Execute(ctx context.Context, salonID string) ([]dto.TableListDTO, error) {
	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, domain.ErrInvalidSalon
		}
		return nil, err
	}

	tables, err := uc.repo.ListTables(ctx, salonID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TableListDTO, 0, len(tables))
	for _, t := range tables {
		out = append(out, dto.TableListDTO{
			ID:            t.ID,
			Shape:         t.Shape,
			Size:          t.Size,
			Status:        t.Status,
			ReservationID: t.ActiveReservationID,
		})
	}
	return out, nil
}

// ======================================================
// GET TABLE
// ======================================================

type GetTable struct {
	repo domain.Repository
}

func NewGetTable(repo domain.Repository) *GetTable {
	return &GetTable{repo: repo}
}

func (uc *GetTable) Execute(ctx context.Context, id uint) (*models.Table, error) {
	return uc.repo.GetTable(ctx, id)
}

// ======================================================
// SALONS
// ======================================================

type ListSalons struct {
	repo domain.Repository
}

func NewListSalons(repo domain.Repository) *ListSalons {
	return &ListSalons{repo: repo}
}

func (uc *ListSalons) Execute(ctx context.Context) ([]models.Salon, error) {
	return uc.repo.ListSalons(ctx)
}

type CreateSalonInput struct {
	ID       string
	Name     string
	Position int
	ActorID  *uint
}

type CreateSalon struct {
	deps Deps
}

func NewCreateSalon(deps Deps) *CreateSalon {
	return &CreateSalon{deps: deps}
}

func (uc *CreateSalon) Execute(ctx context.Context, in CreateSalonInput) (*models.Salon, error) {
	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)

	var bad []string
	if id == "" {
		bad = append(bad, "id")
	}
	if name == "" {
		bad = append(bad, "name")
	}
	if len(bad) > 0 {
		return nil, httperr.ErrValidation(bad...)
	}

	salon := &models.Salon{ID: id, Name: name, Position: in.Position}
	if err := uc.deps.Repo.CreateSalon(ctx, salon); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrValidation("id")
		}
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: salon.ID,
		Metadata: map[string]any{"name": salon.Name},
	})
	return salon, nil
}
