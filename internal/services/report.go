package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// ReportService reads the run history.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

type RunListParams struct {
	States []models.RunState
	Suites []string
	Checks []compliance.Check
	Limit  uint64
	Offset uint64
}

type RunListResult struct {
	Runs  []models.Run
	Total int
}

func (s *ReportService) List(ctx context.Context, params RunListParams) (*RunListResult, error) {
	filters := s.buildFilters(params)

	opts := append([]store.ListOption{}, filters...)
	opts = append(opts, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	runs, err := s.store.Runs().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	total, err := s.store.Runs().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &RunListResult{
		Runs:  runs,
		Total: total,
	}, nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	return s.store.Runs().Get(ctx, id)
}

func (s *ReportService) buildFilters(params RunListParams) []store.ListOption {
	var opts []store.ListOption

	if len(params.States) > 0 {
		opts = append(opts, store.ByStates(params.States...))
	}
	if len(params.Suites) > 0 {
		opts = append(opts, store.BySuite(params.Suites...))
	}
	if len(params.Checks) > 0 {
		opts = append(opts, store.ByChecks(params.Checks...))
	}

	return opts
}
