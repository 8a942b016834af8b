package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	listSalons  *ucOccupancy.ListSalons
	createSalon *ucOccupancy.CreateSalon
	listTables  *ucOccupancy.ListTables
	addTable    *ucOccupancy.AddTable
}

func NewSalonHandler(
	listSalons *ucOccupancy.ListSalons,
	createSalon *ucOccupancy.CreateSalon,
	listTables *ucOccupancy.ListTables,
	addTable *ucOccupancy.AddTable,
) *SalonHandler {
	return &SalonHandler{
		listSalons:  listSalons,
		createSalon: createSalon,
		listTables:  listTables,
		addTable:    addTable,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSalonRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

type AddTableRequest struct {
	Shape string `json:"shape" binding:"required"`
	Size  string `json:"size" binding:"required"`
}

// ======================================================
// SALONS
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	salons, err := h.listSalons.Execute(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, salons)
}

func (h *SalonHandler) Create(c *gin.Context) {
	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	salon, err := h.createSalon.Execute(c.Request.Context(), ucOccupancy.CreateSalonInput{
		ID:       req.ID,
		Name:     req.Name,
		Position: req.Position,
		ActorID:  actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, salon)
}

// ======================================================
// TABLES
// ======================================================

func (h *SalonHandler) ListTables(c *gin.Context) {
	tables, err := h.listTables.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, tables)
}

func (h *SalonHandler) AddTable(c *gin.Context) {
	var req AddTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	table, err := h.addTable.Execute(c.Request.Context(), ucOccupancy.AddTableInput{
		SalonID: c.Param("id"),
		Shape:   req.Shape,
		Size:    req.Size,
		ActorID: actorID(c),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, table)
}
