package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/services"
	"github.com/kubev2v/infra-validator/internal/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateRun runs the configured suite and returns the finished run
// (POST /runs)
func (h *Handler) CreateRun(c *gin.Context) {
	run, err := h.suiteSrv.Run(c.Request.Context(), h.suite)
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to run suite", "suite", h.suite.Name, "error", err)
		if run == nil {
			abort(c, http.StatusInternalServerError, "failed to run suite")
			return
		}
	}

	c.JSON(http.StatusCreated, v1.NewRunFromModel(*run))
}

// ListRuns returns the run history with filtering and pagination
// (GET /runs)
func (h *Handler) ListRuns(c *gin.Context, params v1.ListRunsParams) {
	if h.reportSrv == nil {
		abort(c, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	// Parse pagination
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	svcParams := services.RunListParams{
		States: v1.ParseRunStates(splitAll(params.State)),
		Checks: v1.ParseChecks(splitAll(params.Check)),
		Suites: splitAll(params.Suite),
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}

	result, err := h.reportSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to list runs", "error", err)
		abort(c, http.StatusInternalServerError, "failed to list runs")
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	runs := make([]v1.Run, 0, len(result.Runs))
	for _, r := range result.Runs {
		runs = append(runs, v1.NewRunFromModel(r))
	}

	c.JSON(http.StatusOK, v1.RunListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Runs:      runs,
	})
}

// GetRun returns one run with its results
// (GET /runs/{id})
func (h *Handler) GetRun(c *gin.Context, id uuid.UUID) {
	if h.reportSrv == nil {
		abort(c, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	run, err := h.reportSrv.Get(c.Request.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			zap.S().Named("run_handler").Errorw("failed to get run", "id", id, "error", err)
		}
		abort(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, v1.NewRunFromModel(*run))
}

// splitAll accepts both repeated and comma separated query values.
func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, util.SplitList(v)...)
	}
	return out
}
