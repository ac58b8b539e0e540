package handlers

import (
	"github.com/gin-gonic/gin"

	"laundrydesk/internal/domain/backfill"
)

// MigrationHandler exposes the financial backfill.
type MigrationHandler struct {
	*BaseHandler
	engine *backfill.Engine
}

// NewMigrationHandler creates a new migration handler.
func NewMigrationHandler(base *BaseHandler, engine *backfill.Engine) *MigrationHandler {
	return &MigrationHandler{BaseHandler: base, engine: engine}
}

// Preview handles GET /migration/preview
func (h *MigrationHandler) Preview(c *gin.Context) {
	p, err := h.engine.Preview(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Run handles POST /migration/run
func (h *MigrationHandler) Run(c *gin.Context) {
	res, err := h.engine.Migrate(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, res)
}

// History handles GET /migration/history?limit=
func (h *MigrationHandler) History(c *gin.Context) {
	items, err := h.engine.History(c.Request.Context(), h.ParseIntQuery(c, "limit", 20))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}
