package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// PostValidation runs one validator on the records of the request body
// (POST /validations/{check})
func (h *Handler) PostValidation(c *gin.Context, name string) {
	check, err := compliance.ParseCheck(name)
	if err != nil {
		abort(c, http.StatusNotFound, err.Error())
		return
	}

	req := v1.ValidationRequest{Thresholds: h.thresholds()}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	params := compliance.Params{
		Thresholds: req.Thresholds,
		Cluster:    req.Cluster,
	}
	if len(req.RequiredVMs) > 0 {
		params.Thresholds.OffsiteRequired = req.RequiredVMs
	}
	if len(req.Criticality) > 0 {
		params.Thresholds.Criticality = req.Criticality
	}
	if req.Now != nil {
		params.Now = *req.Now
	}

	report, err := compliance.Evaluate(check, req.Records, compliance.FormatJSON, params)
	if err != nil {
		zap.S().Named("validation_handler").Warnw("failed to evaluate records", "check", check, "error", err)
		abort(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, v1.NewReport(report))
}
