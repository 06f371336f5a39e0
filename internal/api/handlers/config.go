package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
)

// GetDeleteZoneEnabled godoc
// @Summary Zone deletion flag
// @Description Reports whether additional zones may be deleted
// @Tags config
// @Produce json
// @Success 200 {object} models.DeleteZoneEnabled
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/config/delete-zone-enabled [get]
func (h *Handler) GetDeleteZoneEnabled(c *gin.Context) {
	cfg, err := h.zones.AppConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	enabled := cfg.DeleteBaseDomainEnabled
	c.JSON(http.StatusOK, models.DeleteZoneEnabled{Enabled: &enabled})
}

// SetDeleteZoneEnabled godoc
// @Summary Toggle zone deletion
// @Description Enables or disables deletion of additional zones
// @Tags config
// @Accept json
// @Produce json
// @Param flag body models.DeleteZoneEnabled true "New flag value"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/config/delete-zone-enabled [put]
func (h *Handler) SetDeleteZoneEnabled(c *gin.Context) {
	var req models.DeleteZoneEnabled
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	enable := *req.Enabled
	if err := h.zones.SetDeleteEnabled(c.Request.Context(), enable); err != nil {
		respondError(c, err)
		return
	}
	h.audit(c, "set_delete_zone_enabled", "", "enabled="+strconv.FormatBool(enable))

	state := "disabled"
	if enable {
		state = "enabled"
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Delete base domain feature " + state})
}
