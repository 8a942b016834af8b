package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/Soulinho/pandawok-project/internal/audit"
	domain "github.com/Soulinho/pandawok-project/internal/domain/booking"
	"github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/logger"
	"github.com/Soulinho/pandawok-project/internal/models"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

// ======================================================
// LIST
// ======================================================

type ListRequests struct {
	repo domain.Repository
}

func NewListRequests(repo domain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

func (uc *ListRequests) Execute(ctx context.Context, status string) ([]models.BookingRequest, error) {
	return uc.repo.ListRequests(ctx, status)
}

// ======================================================
// APPROVE / REJECT
// ======================================================

type ReviewRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReviewRequest(repo domain.Repository, audit *audit.Dispatcher) *ReviewRequest {
	return &ReviewRequest{repo: repo, audit: audit}
}

func (uc *ReviewRequest) Approve(ctx context.Context, id string, actorID *uint) (*models.BookingRequest, error) {
	req, err := uc.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanApprove(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	req.Status = string(domain.StatusApproved)
	if err := uc.repo.SaveRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_approved",
		Entity:   "booking_request",
		EntityID: req.ID,
	})
	return req, nil
}

func (uc *ReviewRequest) Reject(
	ctx context.Context,
	id string,
	reason string,
	actorID *uint,
) (*models.BookingRequest, error) {

	req, err := uc.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReject(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	req.Status = string(domain.StatusRejected)
	req.RejectReason = strings.TrimSpace(reason)
	if err := uc.repo.SaveRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_rejected",
		Entity:   "booking_request",
		EntityID: req.ID,
		Metadata: map[string]any{"reason": req.RejectReason},
	})
	return req, nil
}

// ======================================================
// PLACE
// ======================================================

type PlaceRequest struct {
	repo  domain.Repository
	place *ucOccupancy.PlaceReservation
	audit *audit.Dispatcher
}

func NewPlaceRequest(
	repo domain.Repository,
	place *ucOccupancy.PlaceReservation,
	audit *audit.Dispatcher,
) *PlaceRequest {
	return &PlaceRequest{repo: repo, place: place, audit: audit}
}

// Execute books the request onto a free table with origin Web.
func (uc *PlaceRequest) Execute(
	ctx context.Context,
	requestID string,
	tableID uint,
	actorID *uint,
) (*models.Reservation, error) {

	req, err := uc.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanPlace(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	// a previous attempt booked a table but failed to mark the request
	existing, err := uc.repo.PlacedReservationID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		req.Status = string(domain.StatusPlaced)
		req.ReservationID = existing
		if err := uc.repo.SaveRequest(ctx, req); err != nil {
			return nil, err
		}
		return nil, occupancy.ErrInvalidState
	}

	reqID := req.ID
	res, err := uc.place.Execute(ctx, ucOccupancy.PlaceReservationInput{
		TableID:          tableID,
		GuestName:        strings.TrimSpace(req.FirstName + " " + req.LastName),
		PartySize:        req.PartySize,
		Date:             req.Date,
		Time:             req.Time,
		Notes:            req.Comments,
		Origin:           string(occupancy.OriginWeb),
		Phone:            req.Phone,
		Email:            req.Email,
		BookingRequestID: &reqID,
		ActorID:          actorID,
	})
	if err != nil {
		return nil, err
	}

	resID := res.ID
	req.Status = string(domain.StatusPlaced)
	req.ReservationID = &resID
	if err := uc.repo.SaveRequest(ctx, req); err != nil {
		// the table is booked; staff reconcile the request from this entry
		logger.ErrorLogger.WithError(err).
			WithField("request_id", req.ID).
			WithField("reservation_id", res.ID).
			WithField("table_id", tableID).
			Error("booking request placed but not marked")
		return nil, fmt.Errorf("mark request %s placed as reservation %s: %w", req.ID, res.ID, err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_placed",
		Entity:   "booking_request",
		EntityID: req.ID,
		Metadata: map[string]any{"reservation_id": res.ID, "table_id": tableID},
	})
	return res, nil
}

// ======================================================
// CLIENTS
// ======================================================

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(ctx context.Context, query string, limit int) ([]models.Client, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.repo.ListClients(ctx, query, limit)
}
