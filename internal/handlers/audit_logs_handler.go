package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/audit"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/httpresp"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store *audit.Store
	tz    string
}

func NewAuditLogsHandler(store *audit.Store, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, tz: tz}
}

// List pages through the audit trail. from/to are local calendar days.
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := h.filter(c)
	f.Action = c.Query("action")
	f.Entity = c.Query("entity")
	f.EntityID = c.Query("entity_id")

	h.respond(c, f)
}

// TableHistory lists every recorded change to one table, newest first.
func (h *AuditLogsHandler) TableHistory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	f := h.filter(c)
	f.Entity = "table"
	f.EntityID = strconv.FormatUint(uint64(id), 10)

	h.respond(c, f)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (h *AuditLogsHandler) filter(c *gin.Context) audit.Filter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{Page: page, Limit: limit}

	loc := timezone.Location(h.tz)
	if from, err := timezone.ParseDate(c.Query("from"), loc); err == nil {
		f.From = &from
	}
	if to, err := timezone.ParseDate(c.Query("to"), loc); err == nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}
	return f
}

func (h *AuditLogsHandler) respond(c *gin.Context, f audit.Filter) {
	logs, total, err := h.store.Query(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	httpresp.OK(c, gin.H{
		"page":  f.Page,
		"total": total,
		"logs":  logs,
	})
}
