package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/infra-validator/api/v1"
)

// GetHealth returns the server health
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, v1.Health{Status: "ok", Version: h.version})
}
