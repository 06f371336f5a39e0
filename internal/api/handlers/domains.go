package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/database"
)

func currentUser(c *gin.Context) (database.User, bool) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	}
	return user, ok
}

// ListDomains godoc
// @Summary List my domains
// @Description Returns the caller's domains with their records
// @Tags domains
// @Produce json
// @Success 200 {object} models.DomainListResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/domains [get]
func (h *Handler) ListDomains(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.accounts.ListDomains(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]models.UserDomain, len(list))
	for i, d := range list {
		recs := make([]models.DomainRecord, len(d.Records))
		for j, r := range d.Records {
			recs[j] = models.DomainRecord{Type: r.Kind.String(), Content: r.Content, TTL: r.TTL}
		}
		out[i] = models.UserDomain{Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt, Records: recs}
	}
	c.JSON(http.StatusOK, models.DomainListResponse{Domains: out, Count: len(out)})
}

// CreateDomain godoc
// @Summary Claim a subdomain
// @Description Registers <subdomain>.<base domain> for the caller
// @Tags domains
// @Accept json
// @Produce json
// @Param domain body models.DomainCreateRequest true "Subdomain label"
// @Success 201 {object} models.UserDomain
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/domains [post]
func (h *Handler) CreateDomain(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.DomainCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	row, err := h.accounts.AddDomain(c.Request.Context(), user.ID, req.Subdomain)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.UserDomain{
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Records:   []models.DomainRecord{},
	})
}

// DeleteDomain godoc
// @Summary Release a subdomain
// @Description Deletes one of the caller's domains and its records
// @Tags domains
// @Produce json
// @Param name path string true "Domain name, qualified or relative to the base domain"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/domains/{name} [delete]
func (h *Handler) DeleteDomain(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.accounts.DeleteDomain(c.Request.Context(), user.ID, c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Domain deleted successfully"})
}
