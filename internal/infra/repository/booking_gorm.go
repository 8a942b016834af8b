package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/Soulinho/pandawok-project/internal/domain/booking"
	"github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	firstName string,
	lastName string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		// intake is anonymous: fill a missing email, never replace one
		if email != "" && client.Email == "" {
			client.Email = email
			if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		// lost a race with another request for the same phone
		if httperr.IsUniqueViolation(err) {
			if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&client).Error; err != nil {
				return nil, err
			}
			return &client, nil
		}
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) ListClients(
	ctx context.Context,
	query string,
	limit int,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})

	if query = strings.TrimSpace(strings.ToLower(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("last_name ASC, first_name ASC").
		Limit(limit).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (r *BookingGormRepository) CreateRequest(ctx context.Context, req *models.BookingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *BookingGormRepository) GetRequest(ctx context.Context, id string) (*models.BookingRequest, error) {
	var req models.BookingRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, occupancy.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *BookingGormRepository) PlacedReservationID(ctx context.Context, requestID string) (*string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("booking_request_id = ?", requestID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

func (r *BookingGormRepository) ListRequests(ctx context.Context, status string) ([]models.BookingRequest, error) {
	q := r.db.WithContext(ctx).Model(&models.BookingRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.BookingRequest
	if err := q.
		Order("date ASC, time ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) SaveRequest(ctx context.Context, req *models.BookingRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
