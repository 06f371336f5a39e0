package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/records"
)

// ListZones godoc
// @Summary List zones
// @Description Returns the base domain followed by every additional zone. The list is empty before setup.
// @Tags zones
// @Produce json
// @Success 200 {object} models.ZoneListResponse
// @Security ApiKeyAuth
// @Router /api/v1/zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	list, err := h.zones.List(c.Request.Context())
	if err != nil && !errors.Is(err, records.ErrConfigurationMissing) {
		respondError(c, err)
		return
	}

	summaries := make([]models.ZoneSummary, 0, len(list))
	for _, z := range list {
		summaries = append(summaries, zoneSummary(z))
	}
	c.JSON(http.StatusOK, models.ZoneListResponse{
		Zones: summaries,
		Count: len(summaries),
	})
}

// SetupBaseDomain godoc
// @Summary Configure the base domain
// @Description One-time setup writing the apex NS, ALIAS and SOA records of the base domain
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body models.ZoneCreateRequest true "Base domain and nameservers"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/setup [post]
func (h *Handler) SetupBaseDomain(c *gin.Context) {
	var req models.ZoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.zones.SetupBaseDomain(c.Request.Context(), req.Domain, req.Nameservers); err != nil {
		respondError(c, err)
		return
	}
	domain := records.Normalize(req.Domain)
	h.audit(c, "setup_base_domain", "", "domain="+domain+" nameservers="+strings.Join(req.Nameservers, ","))
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Configuration updated and DNS records created successfully.",
	})
}

// CreateZone godoc
// @Summary Add an additional zone
// @Description Adds a zone served next to the base domain, with its NS, ALIAS and SOA records
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body models.ZoneCreateRequest true "Zone and nameservers"
// @Success 201 {object} models.ZoneSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/zones [post]
func (h *Handler) CreateZone(c *gin.Context) {
	var req models.ZoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	zone, err := h.zones.AddAdditional(c.Request.Context(), req.Domain, req.Nameservers)
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit(c, "add_additional_domain", "", "domain="+zone.Name)
	c.JSON(http.StatusCreated, zoneSummary(zone))
}

// DeleteZone godoc
// @Summary Delete an additional zone
// @Description Removes the zone, its records and every domain under it. Requires the delete-zone flag.
// @Tags zones
// @Produce json
// @Param name path string true "Zone name"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/zones/{name} [delete]
func (h *Handler) DeleteZone(c *gin.Context) {
	ctx := c.Request.Context()
	cfg, err := h.zones.AppConfig(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if !cfg.DeleteBaseDomainEnabled {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Zone deletion is disabled"})
		return
	}

	name := records.Normalize(c.Param("name"))
	if err := h.zones.DeleteAdditional(ctx, name); err != nil {
		respondError(c, err)
		return
	}
	h.audit(c, "delete_additional_domain", "", "domain="+name)
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Additional base domain, associated DNS records, and related subdomains deleted successfully",
	})
}

func zoneSummary(z records.Zone) models.ZoneSummary {
	return models.ZoneSummary{
		Name:        z.Name,
		Base:        z.IsBase(),
		Nameservers: z.Nameservers,
		CreatedAt:   z.CreatedAt,
	}
}
