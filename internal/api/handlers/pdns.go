package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/records"
)

// Lookup godoc
// @Summary Resolve a query
// @Description Returns the records answering qname/qtype. ANY matches every type; wildcard owners only answer TXT and ANY.
// @Tags pdns
// @Produce json
// @Param qname path string true "Query name"
// @Param qtype path string true "Query type"
// @Success 200 {object} models.LookupResponse
// @Failure 400 {object} models.LookupResponse
// @Failure 500 {object} models.LookupResponse
// @Router /pdns/lookup/{qname}/{qtype} [get]
func (h *Handler) Lookup(c *gin.Context) {
	parts := strings.Split(strings.Trim(c.Param("params"), "/"), "/")
	if len(parts) != 2 {
		c.JSON(http.StatusBadRequest, models.LookupResponse{Result: []models.LookupRecord{}, Message: "Invalid URL format"})
		return
	}
	qname := records.Normalize(parts[0])
	qtype := strings.ToUpper(strings.TrimSpace(parts[1]))
	if qname == "" || qtype == "" {
		c.JSON(http.StatusBadRequest, models.LookupResponse{Result: []models.LookupRecord{}})
		return
	}

	answers, err := h.lookup.Lookup(c.Request.Context(), qname, qtype)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.LookupResponse{
			Result:  []models.LookupRecord{},
			Message: "An error occurred during lookup",
		})
		return
	}

	result := make([]models.LookupRecord, len(answers))
	for i, a := range answers {
		result[i] = models.LookupRecord{QType: a.Type, QName: a.Name, Content: a.Content, TTL: a.TTL}
	}
	c.JSON(http.StatusOK, models.LookupResponse{Result: result})
}

// GetAllDomains godoc
// @Summary List served zones
// @Description Returns the base domain (id 1) followed by every additional zone
// @Tags pdns
// @Produce json
// @Success 200 {object} models.DomainInfoResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /pdns/getAllDomains [get]
func (h *Handler) GetAllDomains(c *gin.Context) {
	descs, err := h.zones.Descriptors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]models.DomainInfo, len(descs))
	for i, d := range descs {
		result[i] = models.DomainInfo{
			ID:             d.ID,
			Zone:           d.Zone,
			Masters:        d.Masters,
			NotifiedSerial: d.NotifiedSerial,
			Serial:         d.Serial,
			LastCheck:      d.LastCheck,
			Kind:           d.Kind,
		}
	}
	c.JSON(http.StatusOK, models.DomainInfoResponse{Result: result})
}

// GetAllDomainMetadata godoc
// @Summary Zone metadata
// @Description Returns static metadata for a served zone or a domain under the base domain
// @Tags pdns
// @Produce json
// @Param name path string true "Domain name"
// @Success 200 {object} models.MetadataResponse
// @Failure 404 {object} models.MetadataResponse
// @Router /pdns/getAllDomainMetadata/{name} [get]
func (h *Handler) GetAllDomainMetadata(c *gin.Context) {
	ctx := c.Request.Context()
	name := records.Normalize(c.Param("name"))

	known := false
	names, err := h.zones.Names(ctx)
	if err != nil && !errors.Is(err, records.ErrConfigurationMissing) {
		respondError(c, err)
		return
	}
	for _, z := range names {
		if z == name {
			known = true
			break
		}
	}
	if !known && len(names) > 0 && records.InZone(name, names[0]) {
		_, err := h.db.Domain(ctx, name)
		switch {
		case err == nil:
			known = true
		case !errors.Is(err, records.ErrNotFound):
			respondError(c, err)
			return
		}
	}

	if !known {
		c.JSON(http.StatusNotFound, models.MetadataResponse{Result: map[string][]string{}})
		return
	}
	c.JSON(http.StatusOK, models.MetadataResponse{Result: map[string][]string{"PRESIGNED": {"0"}}})
}
