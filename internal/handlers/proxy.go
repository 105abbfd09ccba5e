package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Proxy forwards GET requests to the configured upstream, preserving the
// path and raw query. Responses are passed through untouched so cached
// upstream JSON stays byte-identical.
func (h *Handler) Proxy(c *gin.Context) {
	target := h.proxyUpstream + "/" + strings.TrimPrefix(c.Param("path"), "/")
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}

	resp, err := h.proxyClient.Get(target)
	if err != nil {
		h.log.Errorf("[Proxy] upstream request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "proxy request failed"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.log.Errorf("[Proxy] failed to read upstream response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "proxy request failed"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, body)
}
