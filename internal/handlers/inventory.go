package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
)

// GetInventoryHost returns the configuration of a host from the workbook
// (GET /inventory/{hostname})
func (h *Handler) GetInventoryHost(c *gin.Context, hostname string) {
	if h.inventorySrv == nil {
		abort(c, http.StatusServiceUnavailable, "no inventory workbook configured")
		return
	}

	host, err := h.inventorySrv.Lookup(hostname)
	if err != nil {
		zap.S().Named("inventory_handler").Warnw("lookup failed", "hostname", hostname, "error", err)
		abort(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, host)
}

// PutInventoryHost creates or updates a host in the workbook
// (PUT /inventory/{hostname})
func (h *Handler) PutInventoryHost(c *gin.Context, hostname string) {
	if h.inventorySrv == nil {
		abort(c, http.StatusServiceUnavailable, "no inventory workbook configured")
		return
	}

	var host v1.Host
	if err := c.ShouldBindJSON(&host); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	host.Hostname = hostname

	created, err := h.inventorySrv.Upsert(host)
	if err != nil {
		zap.S().Named("inventory_handler").Errorw("upsert failed", "hostname", hostname, "error", err)
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		abort(c, status, err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, v1.UpsertHostResponse{Created: created, Host: host})
}
