package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/Soulinho/pandawok-project/internal/domain/booking"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	"github.com/Soulinho/pandawok-project/internal/timezone"
	ucBooking "github.com/Soulinho/pandawok-project/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	rules    domain.Rules
	tz       string
	submit   *ucBooking.SubmitRequest
	list     *ucBooking.ListRequests
	review   *ucBooking.ReviewRequest
	placeReq *ucBooking.PlaceRequest
}

func NewBookingHandler(
	rules domain.Rules,
	tz string,
	submit *ucBooking.SubmitRequest,
	list *ucBooking.ListRequests,
	review *ucBooking.ReviewRequest,
	placeReq *ucBooking.PlaceRequest,
) *BookingHandler {
	return &BookingHandler{
		rules:    rules,
		tz:       tz,
		submit:   submit,
		list:     list,
		review:   review,
		placeReq: placeReq,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RejectRequest struct {
	Reason string `json:"reason"`
}

type PlaceBookingRequest struct {
	TableID uint `json:"table_id" binding:"required"`
}

// ======================================================
// PUBLIC
// ======================================================

// Slots publishes what the booking form may offer.
func (h *BookingHandler) Slots(c *gin.Context) {
	first, last := h.rules.DateWindow(timezone.NowIn(h.tz))

	httpresp.OK(c, gin.H{
		"slots":                 h.rules.Slots,
		"min_party_size":        domain.MinPartySize,
		"max_party_size":        domain.MaxPartySize,
		"large_group_threshold": h.rules.LargeGroupThreshold,
		"first_date":            first.Format(timezone.DateLayout),
		"last_date":             last.Format(timezone.DateLayout),
		"default_date":          first.Format(timezone.DateLayout),
	})
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var req domain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.submit.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"success":           true,
		"requires_approval": created.Status == string(domain.StatusPendingApproval),
		"reservation": gin.H{
			"id":     created.ID,
			"date":   created.Date,
			"time":   created.Time,
			"status": created.Status,
		},
	})
}

// ======================================================
// STAFF
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	out, err := h.review.Approve(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	var req RejectRequest
	_ = c.ShouldBindJSON(&req)

	out, err := h.review.Reject(c.Request.Context(), c.Param("id"), req.Reason, actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *BookingHandler) Place(c *gin.Context) {
	var req PlaceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.placeReq.Execute(c.Request.Context(), c.Param("id"), req.TableID, actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, res)
}
