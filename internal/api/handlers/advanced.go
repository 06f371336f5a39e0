package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/advanced"
	"github.com/jroosing/dyndns/internal/api/models"
)

// ListAdvanced godoc
// @Summary List advanced records
// @Description Returns the advanced records of a zone with zone-relative names ("@" is the apex)
// @Tags advanced
// @Produce json
// @Param zone path string true "Zone name"
// @Success 200 {object} models.AdvancedListResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/advanced/{zone} [get]
func (h *Handler) ListAdvanced(c *gin.Context) {
	zone := c.Param("zone")
	entries, err := h.advanced.List(c.Request.Context(), zone)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]models.AdvancedRecord, len(entries))
	for i, e := range entries {
		out[i] = models.AdvancedRecord{
			ID:      e.Record.ID,
			Name:    e.Name,
			Type:    e.Record.Kind.String(),
			Content: e.Record.Content,
			TTL:     e.Record.TTL,
		}
	}
	c.JSON(http.StatusOK, models.AdvancedListResponse{Zone: zone, Records: out, Count: len(out)})
}

// AddAdvanced godoc
// @Summary Add advanced records
// @Description Stores a record set for an owner name, replacing any records of the same type. Content is comma separated except for TXT.
// @Tags advanced
// @Accept json
// @Produce json
// @Param record body models.AdvancedAddRequest true "Record set"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/advanced [post]
func (h *Handler) AddAdvanced(c *gin.Context) {
	var req models.AdvancedAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	err := h.advanced.Add(c.Request.Context(), advanced.AddRequest{
		Zone:    req.Zone,
		Name:    req.Name,
		Type:    req.RecordType,
		Content: req.Content,
		TTL:     req.TTL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit(c, "add_advanced_record", "",
		fmt.Sprintf("zone=%s name=%s type=%s ttl=%d content=%s", req.Zone, req.Name, req.RecordType, req.TTL, req.Content))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "DNS record added successfully"})
}

// DeleteAdvanced godoc
// @Summary Delete advanced records
// @Description Deletes the matching advanced records and removes advanced domains left without records
// @Tags advanced
// @Accept json
// @Produce json
// @Param selector body models.AdvancedDeleteRequest true "Records to delete"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/advanced [delete]
func (h *Handler) DeleteAdvanced(c *gin.Context) {
	var req models.AdvancedDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	n, err := h.advanced.Delete(c.Request.Context(), advanced.DeleteRequest{
		Zone:    req.Zone,
		Name:    req.Name,
		Type:    req.Type,
		TTL:     req.TTL,
		Content: req.Content,
		IDs:     req.IDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit(c, "delete_advanced_record", "",
		fmt.Sprintf("zone=%s name=%s type=%s count=%d", req.Zone, req.Name, req.Type, n))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "DNS record(s) deleted successfully"})
}
