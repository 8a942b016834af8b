package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

type ReservationHandler struct {
	get    *ucOccupancy.GetReservation
	update *ucOccupancy.UpdateReservation
}

func NewReservationHandler(
	get *ucOccupancy.GetReservation,
	update *ucOccupancy.UpdateReservation,
) *ReservationHandler {
	return &ReservationHandler{get: get, update: update}
}

func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.update.ExecuteByReservation(c.Request.Context(), c.Param("id"), req.patch(), actorID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, res)
}
