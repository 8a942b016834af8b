package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type OccupancyGormRepository struct {
	db *gorm.DB
}

func NewOccupancyGormRepository(db *gorm.DB) *OccupancyGormRepository {
	return &OccupancyGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *OccupancyGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OccupancyGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Salons
// --------------------------------------------------

func (r *OccupancyGormRepository) ListSalons(ctx context.Context) ([]models.Salon, error) {
	var salons []models.Salon
	if err := r.db.WithContext(ctx).
		Order("position ASC, id ASC").
		Find(&salons).Error; err != nil {
		return nil, err
	}
	return salons, nil
}

func (r *OccupancyGormRepository) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&salon).Error; err != nil {
		return nil, notFound(err)
	}
	return &salon, nil
}

func (r *OccupancyGormRepository) CreateSalon(ctx context.Context, s *models.Salon) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// --------------------------------------------------
// Tables
// --------------------------------------------------

func (r *OccupancyGormRepository) NextTableID(ctx context.Context) (uint, error) {
	var max uint
	if err := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *OccupancyGormRepository) CreateTable(ctx context.Context, t *models.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *OccupancyGormRepository) ListTables(ctx context.Context, salonID string) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *OccupancyGormRepository) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	var t models.Table
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *OccupancyGormRepository) LockTable(ctx context.Context, id uint) (*models.Table, error) {
	var t models.Table
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *OccupancyGormRepository) SaveTable(ctx context.Context, t *models.Table) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

func (r *OccupancyGormRepository) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *OccupancyGormRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// SaveReservation never rewrites origin or created_at.
func (r *OccupancyGormRepository) SaveReservation(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).
		Model(res).
		Select("*").
		Omit("origin", "created_at").
		Updates(res).Error
}

func (r *OccupancyGormRepository) DeleteReservation(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Reservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *OccupancyGormRepository) CreateBlock(ctx context.Context, b *models.TableBlock) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *OccupancyGormRepository) ListBlocks(ctx context.Context, tableID uint) ([]models.TableBlock, error) {
	var blocks []models.TableBlock
	if err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("date ASC, start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *OccupancyGormRepository) ListBlocksForDate(
	ctx context.Context,
	tableID uint,
	date string,
) ([]models.TableBlock, error) {
	var blocks []models.TableBlock
	if err := r.db.WithContext(ctx).
		Where("table_id = ? AND date = ?", tableID, date).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *OccupancyGormRepository) GetBlock(ctx context.Context, id string) (*models.TableBlock, error) {
	var b models.TableBlock
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *OccupancyGormRepository) DeleteBlock(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.TableBlock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*OccupancyGormRepository)(nil)
