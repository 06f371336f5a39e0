package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/ratelimit"
)

// ClientAddr returns the caller's address. With trustProxy the first
// X-Forwarded-For entry or X-Real-IP wins over the socket peer. The zero
// Addr is returned when nothing parses.
func ClientAddr(r *http.Request, trustProxy bool) netip.Addr {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
				return addr.Unmap()
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			if addr, err := netip.ParseAddr(xri); err == nil {
				return addr.Unmap()
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

// RateLimit rejects requests over the limiter's budget with a plain-text
// KO response. A nil limiter admits everything.
func RateLimit(l *ratelimit.Limiter, trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(ClientAddr(c.Request, trustProxy)) {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.Data(http.StatusTooManyRequests, "text/plain; charset=utf-8", []byte("KO\nToo many requests"))
		c.Abort()
	}
}
