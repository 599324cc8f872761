package handlers

import (
	"maps"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/services"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

// Handler implements v1.ServerInterface. reportSrv is nil when no store is
// configured, inventorySrv when no workbook is.
type Handler struct {
	suiteSrv     *services.SuiteService
	reportSrv    *services.ReportService
	inventorySrv *services.InventoryService
	suite        models.Suite
	version      string
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(suiteSrv *services.SuiteService, reportSrv *services.ReportService, inventorySrv *services.InventoryService, suite models.Suite) *Handler {
	return &Handler{
		suiteSrv:     suiteSrv,
		reportSrv:    reportSrv,
		inventorySrv: inventorySrv,
		suite:        suite,
	}
}

func (h *Handler) WithVersion(version string) *Handler {
	h.version = version
	return h
}

// thresholds returns a copy of the suite thresholds that request decoding
// can write into.
func (h *Handler) thresholds() compliance.Thresholds {
	t := h.suite.Thresholds
	t.RPOHours = maps.Clone(t.RPOHours)
	t.Criticality = maps.Clone(t.Criticality)
	t.OffsiteRequired = slices.Clone(t.OffsiteRequired)
	t.CategoryTiers = slices.Clone(t.CategoryTiers)
	return t
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		return http.StatusNotFound
	case srvErrors.IsConfigurationError(err), srvErrors.IsMissingCredentialError(err):
		return http.StatusBadRequest
	case srvErrors.IsUnauthorizedError(err):
		return http.StatusUnauthorized
	case srvErrors.IsConnectionError(err), srvErrors.IsNotConnectedError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, msg string) {
	c.JSON(status, v1.Error{Error: msg})
}
