package occupancy

import (
	"context"

	"github.com/Soulinho/pandawok-project/internal/models"
)

// Repository is the table and reservation store. Lookups return ErrNotFound
// for missing rows.
type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Any error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Salons --------
	ListSalons(ctx context.Context) ([]models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	CreateSalon(ctx context.Context, s *models.Salon) error

	// -------- Tables --------
	NextTableID(ctx context.Context) (uint, error)
	CreateTable(ctx context.Context, t *models.Table) error
	ListTables(ctx context.Context, salonID string) ([]models.Table, error)
	GetTable(ctx context.Context, id uint) (*models.Table, error)

	// LockTable reads a table with a row lock when the store supports it.
	LockTable(ctx context.Context, id uint) (*models.Table, error)
	SaveTable(ctx context.Context, t *models.Table) error

	// -------- Reservations --------
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	SaveReservation(ctx context.Context, r *models.Reservation) error
	DeleteReservation(ctx context.Context, id string) error

	// -------- Blocks --------
	CreateBlock(ctx context.Context, b *models.TableBlock) error
	ListBlocks(ctx context.Context, tableID uint) ([]models.TableBlock, error)
	ListBlocksForDate(ctx context.Context, tableID uint, date string) ([]models.TableBlock, error)
	GetBlock(ctx context.Context, id string) (*models.TableBlock, error)
	DeleteBlock(ctx context.Context, id string) error
}
