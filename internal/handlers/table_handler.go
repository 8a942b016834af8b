package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

// ======================================================
// HANDLER
// ======================================================

type TableHandler struct {
	view     *ucOccupancy.GetTableView
	place    *ucOccupancy.PlaceReservation
	walkIn   *ucOccupancy.SeatWalkIn
	seat     *ucOccupancy.SeatReservedGuest
	move     *ucOccupancy.ChangeTable
	finalize *ucOccupancy.Finalize
	remove   *ucOccupancy.DeleteReservation
	update   *ucOccupancy.UpdateReservation
}

type TableUseCases struct {
	View     *ucOccupancy.GetTableView
	Place    *ucOccupancy.PlaceReservation
	WalkIn   *ucOccupancy.SeatWalkIn
	Seat     *ucOccupancy.SeatReservedGuest
	Move     *ucOccupancy.ChangeTable
	Finalize *ucOccupancy.Finalize
	Delete   *ucOccupancy.DeleteReservation
	Update   *ucOccupancy.UpdateReservation
}

func NewTableHandler(uc TableUseCases) *TableHandler {
	return &TableHandler{
		view:     uc.View,
		place:    uc.Place,
		walkIn:   uc.WalkIn,
		seat:     uc.Seat,
		move:     uc.Move,
		finalize: uc.Finalize,
		remove:   uc.Delete,
		update:   uc.Update,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PlaceReservationRequest struct {
	GuestName    string `json:"guest_name" binding:"required"`
	PartySize    int    `json:"party_size" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
	Origin       string `json:"origin"`
	DurationHint string `json:"duration_hint"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type WalkInRequest struct {
	GuestName string `json:"guest_name" binding:"required"`
	PartySize int    `json:"party_size" binding:"required"`
	Notes     string `json:"notes"`
}

type MoveRequest struct {
	ToTableID uint `json:"to_table_id" binding:"required"`
}

type UpdateReservationRequest struct {
	GuestName    *string    `json:"guest_name"`
	PartySize    *int       `json:"party_size"`
	Date         *string    `json:"date"`
	Time         *string    `json:"time"`
	DurationHint *string    `json:"duration_hint"`
	Notes        *string    `json:"notes"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email"`
	Origin       *string    `json:"origin"`
	CreatedAt    *time.Time `json:"created_at"`
}

func (r UpdateReservationRequest) patch() domain.ReservationPatch {
	return domain.ReservationPatch{
		GuestName:    r.GuestName,
		PartySize:    r.PartySize,
		Date:         r.Date,
		Time:         r.Time,
		DurationHint: r.DurationHint,
		Notes:        r.Notes,
		Phone:        r.Phone,
		Email:        r.Email,
		Origin:       r.Origin,
		CreatedAt:    r.CreatedAt,
	}
}

// ======================================================
// VIEW
// ======================================================

func (h *TableHandler) View(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	snap, err := h.view.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, snap)
}

// ======================================================
// CREATE (reservation / walk-in)
// ======================================================

func (h *TableHandler) Place(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PlaceReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.place.Execute(c.Request.Context(), ucOccupancy.PlaceReservationInput{
		TableID:      id,
		GuestName:    req.GuestName,
		PartySize:    req.PartySize,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		Origin:       req.Origin,
		DurationHint: req.DurationHint,
		Phone:        req.Phone,
		Email:        req.Email,
		ActorID:      actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, res)
}

func (h *TableHandler) WalkIn(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.walkIn.Execute(c.Request.Context(), ucOccupancy.SeatWalkInInput{
		TableID:   id,
		GuestName: req.GuestName,
		PartySize: req.PartySize,
		Notes:     req.Notes,
		ActorID:   actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, res)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *TableHandler) Seat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res, err := h.seat.Execute(c.Request.Context(), id, actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *TableHandler) Move(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.move.Execute(c.Request.Context(), ucOccupancy.ChangeTableInput{
		FromTableID: id,
		ToTableID:   req.ToTableID,
		ActorID:     actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *TableHandler) Finalize(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.finalize.Execute(c.Request.Context(), id, actorID(c)); err != nil {
		httperr.Handle(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, actorID(c)); err != nil {
		httperr.Handle(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TableHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.update.Execute(c.Request.Context(), id, req.patch(), actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, res)
}
