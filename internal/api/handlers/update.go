package handlers

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/helpers"
	"github.com/jroosing/dyndns/internal/update"
)

const textPlain = "text/plain; charset=utf-8"

// Update godoc
// @Summary Dynamic update
// @Description Refreshes A, AAAA or TXT values of owned subdomains. Without ip, ipv6 and txt the caller's address is used. The response is a plain-text transcript starting with OK or KO.
// @Tags update
// @Produce plain
// @Param domains query string false "Comma separated subdomains"
// @Param token query string false "User API key"
// @Param ip query string false "IPv4 address"
// @Param ipv6 query string false "IPv6 address"
// @Param txt query string false "TXT value"
// @Param clear query bool false "Remove A, AAAA and TXT first"
// @Param verbose query bool false "Report values and NOCHANGE"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Failure 401 {string} string
// @Router /update [get]
func (h *Handler) Update(c *gin.Context) {
	req := update.Request{
		TXT:     c.Query("txt"),
		Clear:   helpers.FlagParam(c.Query("clear")),
		Verbose: helpers.FlagParam(c.Query("verbose")),
		Client:  middleware.ClientAddr(c.Request, h.cfg.Update.TrustProxyHeaders),
	}

	if params := strings.Trim(c.Param("params"), "/"); params != "" {
		parts := strings.Split(params, "/")
		if len(parts) < 2 || len(parts) > 3 {
			c.Data(http.StatusBadRequest, textPlain, []byte(update.StatusKO+"\nInvalid URL format"))
			return
		}
		req.Names = []string{parts[0]}
		req.Token = parts[1]
		if len(parts) == 3 {
			req.IP = parts[2]
			if addr, err := netip.ParseAddr(parts[2]); err == nil && addr.Is6() && !addr.Is4In6() {
				req.IP, req.IPv6 = "", parts[2]
			}
		}
	} else {
		if d := c.Query("domains"); d != "" {
			req.Names = []string{d}
		}
		req.Token = c.Query("token")
		req.IP = c.Query("ip")
		req.IPv6 = c.Query("ipv6")
	}

	res, err := h.updates.Update(c.Request.Context(), req)
	if err != nil {
		status := errorStatus(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
			msg = "Internal server error"
		}
		c.Data(status, textPlain, []byte(update.StatusKO+"\n"+msg))
		return
	}
	c.Data(http.StatusOK, textPlain, []byte(res.Text()))
}
