package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

type BlockHandler struct {
	block  *ucOccupancy.BlockTable
	list   *ucOccupancy.ListBlocks
	remove *ucOccupancy.RemoveBlock
}

func NewBlockHandler(
	block *ucOccupancy.BlockTable,
	list *ucOccupancy.ListBlocks,
	remove *ucOccupancy.RemoveBlock,
) *BlockHandler {
	return &BlockHandler{block: block, list: list, remove: remove}
}

type BlockTableRequest struct {
	Reason    string `json:"reason" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *BlockHandler) Create(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req BlockTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	block, err := h.block.Execute(c.Request.Context(), ucOccupancy.BlockTableInput{
		TableID:   id,
		Reason:    req.Reason,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ActorID:   actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, block)
}

func (h *BlockHandler) List(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	blocks, err := h.list.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, blocks)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		httperr.Handle(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
