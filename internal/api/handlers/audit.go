package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/helpers"
)

// AdminLogs godoc
// @Summary Administrator audit log
// @Description Returns the most recent administrator actions, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum entries (1-500)" default(100)
// @Success 200 {object} models.AdminLogResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/logs [get]
func (h *Handler) AdminLogs(c *gin.Context) {
	limit := helpers.IntParam(c.Query("limit"), 100, 1, 500)
	actions, err := h.db.AdminActions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]models.AdminLogEntry, len(actions))
	for i, a := range actions {
		out[i] = models.AdminLogEntry{
			ID:             a.ID,
			AdminUsername:  a.AdminUsername,
			Action:         a.Action,
			TargetUsername: a.TargetUsername,
			Details:        a.Details,
			Timestamp:      a.Timestamp,
		}
	}
	c.JSON(http.StatusOK, models.AdminLogResponse{Entries: out, Count: len(out)})
}
