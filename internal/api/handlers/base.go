// Package handlers implements the HTTP endpoint handlers of the dyndns
// control plane.
//
// Lookup protocol (polled by the authoritative nameserver):
//   - GET /pdns/lookup/<qname>/<qtype> - records answering a query
//   - GET /pdns/getAllDomains - every served zone
//   - GET /pdns/getAllDomainMetadata/<name> - static zone metadata
//
// Dynamic update protocol (plain text):
//   - GET /update?domains=&token=&ip=&ipv6=&txt=&clear=&verbose=
//   - GET /update/<domains>/<token>[/<ip>]
//
// Administration (X-API-Key or a Super-Admin bearer token):
//   - GET /api/v1/stats - process and host statistics
//   - GET /api/v1/zones, POST /api/v1/setup, POST /api/v1/zones, DELETE /api/v1/zones/:name
//   - GET|PUT /api/v1/config/delete-zone-enabled
//   - GET /api/v1/advanced/:zone, POST /api/v1/advanced, DELETE /api/v1/advanced
//   - GET /api/v1/admin/logs
//
// User domains (Authorization: Bearer <api key>):
//   - GET /api/v1/domains, POST /api/v1/domains, DELETE /api/v1/domains/:name
//
// @title dyndns Control Plane API
// @version 1.0
// @description Dynamic DNS control plane: zones, advanced records, user domains and the update protocol.
//
// @contact.name dyndns
// @contact.url https://github.com/jroosing/dyndns
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @BasePath /
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/accounts"
	"github.com/jroosing/dyndns/internal/advanced"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/lookup"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/update"
	"github.com/jroosing/dyndns/internal/zones"
)

// Deps are the services the handlers delegate to.
type Deps struct {
	Config   *config.Config
	DB       *database.DB
	Zones    *zones.Directory
	Advanced *advanced.Manager
	Updates  *update.Engine
	Lookup   *lookup.Resolver
	Accounts *accounts.Service
	Logger   *slog.Logger
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	zones     *zones.Directory
	advanced  *advanced.Manager
	updates   *update.Engine
	lookup    *lookup.Resolver
	accounts  *accounts.Service
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler.
func New(d Deps) *Handler {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        d.DB,
		zones:     d.Zones,
		advanced:  d.Advanced,
		updates:   d.Updates,
		lookup:    d.Lookup,
		accounts:  d.Accounts,
		logger:    d.Logger,
		startTime: time.Now(),
	}
}

// Accounts exposes the account service for the authentication middleware.
func (h *Handler) Accounts() *accounts.Service {
	return h.accounts
}

// errorStatus maps the error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, records.ErrConfigurationMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, records.ErrUnknownZone), errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, records.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, records.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error payload. Internal failures are
// attached to the context for the request logger and reported generically.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, models.ErrorResponse{Error: msg})
}

// audit records a successful administrator mutation. Failures are logged
// and never change the response.
func (h *Handler) audit(c *gin.Context, action, target, details string) {
	if h.db == nil {
		return
	}
	// The request may already be cancelled once the response is written.
	ctx := context.WithoutCancel(c.Request.Context())
	err := h.db.LogAdminAction(ctx, database.AdminAction{
		AdminUsername:  middleware.ActorFromContext(c),
		Action:         action,
		TargetUsername: target,
		Details:        details,
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("failed to record admin action", "action", action, "err", err)
	}
}
