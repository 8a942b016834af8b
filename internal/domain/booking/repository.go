package booking

import (
	"context"

	"github.com/Soulinho/pandawok-project/internal/models"
)

type Repository interface {
	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		firstName string,
		lastName string,
		phone string,
		email string,
	) (*models.Client, error)

	ListClients(ctx context.Context, query string, limit int) ([]models.Client, error)

	// -------- Requests --------
	CreateRequest(ctx context.Context, r *models.BookingRequest) error
	GetRequest(ctx context.Context, id string) (*models.BookingRequest, error)
	ListRequests(ctx context.Context, status string) ([]models.BookingRequest, error)
	SaveRequest(ctx context.Context, r *models.BookingRequest) error

	// PlacedReservationID finds a reservation already created for the request.
	PlacedReservationID(ctx context.Context, requestID string) (*string, error)
}
