package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Soulinho/pandawok-project/internal/audit"
	domain "github.com/Soulinho/pandawok-project/internal/domain/booking"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/logger"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/timezone"
	"github.com/Soulinho/pandawok-project/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type SubmitRequest struct {
	repo     domain.Repository
	notifier events.Notifier
	audit    *audit.Dispatcher
	rules    domain.Rules

	Timezone         string
	CheckEmailDomain bool
	Now              func() time.Time
}

func NewSubmitRequest(
	repo domain.Repository,
	notifier events.Notifier,
	audit *audit.Dispatcher,
	rules domain.Rules,
) *SubmitRequest {
	return &SubmitRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		rules:    rules,
		Timezone: timezone.DefaultTimezone,
	}
}

func (uc *SubmitRequest) now() time.Time {
	loc := timezone.Location(uc.Timezone)
	if uc.Now != nil {
		return uc.Now().In(loc)
	}
	return time.Now().In(loc)
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates a public request and records it. It never touches table
// state; staff place accepted requests later.
func (uc *SubmitRequest) Execute(
	ctx context.Context,
	in domain.Request,
) (*models.BookingRequest, error) {

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	now := uc.now()

	// --------------------------------------------------
	// 1️⃣ Rules
	// --------------------------------------------------
	if err := uc.rules.Validate(in, now); err != nil {
		return nil, err
	}
	if uc.CheckEmailDomain && !validators.IsEmailDomainValid(in.Email) {
		return nil, httperr.ErrValidation("email")
	}

	// --------------------------------------------------
	// 2️⃣ Guest directory
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, in.FirstName, in.LastName, in.Phone, in.Email)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Request (large groups wait for approval)
	// --------------------------------------------------
	req := &models.BookingRequest{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     in.Email,
		PartySize: in.PartySize,
		Date:      in.Date,
		Time:      in.Time,
		Comments:  in.Comments,
		Status:    string(domain.InitialStatus(in.PartySize, uc.rules.LargeGroupThreshold)),
		ClientID:  &client.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Notification
	// --------------------------------------------------
	queue := events.QueueBookingRequested
	if req.Status == string(domain.StatusPendingApproval) {
		queue = events.QueueApprovalRequired
	}
	if err := uc.notifier.Notify(ctx, queue, notificationFor(req)); err != nil {
		logger.ErrorLogger.WithError(err).
			WithField("request_id", req.ID).
			Error("booking notification failed")
	}

	// --------------------------------------------------
	// 5️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "booking_requested",
		Entity:   "booking_request",
		EntityID: req.ID,
		Metadata: map[string]any{
			"party_size": req.PartySize,
			"status":     req.Status,
		},
	})

	return req, nil
}

func notificationFor(req *models.BookingRequest) events.BookingNotification {
	return events.BookingNotification{
		RequestID: req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		PartySize: req.PartySize,
		Date:      req.Date,
		Time:      req.Time,
		Comments:  req.Comments,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
}
