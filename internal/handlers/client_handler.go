package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	ucBooking "github.com/Soulinho/pandawok-project/internal/usecase/booking"
)

type ClientHandler struct {
	list *ucBooking.ListClients
}

func NewClientHandler(list *ucBooking.ListClients) *ClientHandler {
	return &ClientHandler{list: list}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	clients, err := h.list.Execute(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, clients)
}
