package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// MountStatic serves an admin front-end from dir. Unknown non-API paths
// fall back to index.html so client-side routes resolve.
func MountStatic(r *gin.Engine, dir string, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		if logger != nil {
			logger.Warn("static directory unavailable, front-end not served", "dir", dir)
		}
		return
	}

	r.Use(static.Serve("/", static.LocalFile(dir, false)))

	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || isBackendPath(path) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(index)
	})
}

func isBackendPath(path string) bool {
	for _, prefix := range []string{"/api/", "/pdns/", "/update", "/metrics", "/swagger/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
