package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	"github.com/kubev2v/infra-validator/pkg/scheduler"
)

// SuiteService runs suites on a worker pool and records them.
type SuiteService struct {
	builder    models.CheckWorkBuilder
	store      *store.Store
	numWorkers int

	validator  PrivilegeValidator
	privileges []string

	now func() time.Time
}

// NewSuiteService creates the service. st may be nil, in which case runs are
// not persisted.
func NewSuiteService(builder models.CheckWorkBuilder, st *store.Store, numWorkers int) *SuiteService {
	return &SuiteService{
		builder:    builder,
		store:      st,
		numWorkers: numWorkers,
		now:        time.Now,
	}
}

// WithRequiredPrivileges makes every run start by validating privileges on
// the inventory root. A run lacking them ends in the error state.
func (s *SuiteService) WithRequiredPrivileges(v PrivilegeValidator, privileges []string) *SuiteService {
	s.validator = v
	s.privileges = privileges
	return s
}

func (s *SuiteService) WithClock(now func() time.Time) *SuiteService {
	s.now = now
	return s
}

// Run executes every check of suite and returns the run. Check failures are
// recorded in the results; the returned error is only set when the run could
// not be saved.
func (s *SuiteService) Run(ctx context.Context, suite models.Suite) (*models.Run, error) {
	logger := zap.S().Named("suite_service")

	run := models.NewRun(suite.Name)
	run.State = models.RunStateRunning
	run.StartedAt = s.now()
	if err := s.save(ctx, run); err != nil {
		return nil, err
	}

	logger.Infow("suite run started", "id", run.ID, "suite", suite.Name, "checks", len(suite.Checks), "workers", s.numWorkers)

	if s.validator != nil && len(s.privileges) > 0 {
		logger.Info("validate privileges on inventory root")
		if err := s.validator.ValidateRootPrivileges(ctx, s.privileges); err != nil {
			logger.Errorw("privilege validation failed", "error", err)
			return s.finish(ctx, run, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return s.finish(ctx, run, err)
	}

	units := s.builder.Build(suite)

	sched := scheduler.NewScheduler[*compliance.Report](s.numWorkers)
	defer sched.Close()

	futures := make([]*scheduler.Future[scheduler.Result[*compliance.Report]], 0, len(units))
	for _, u := range units {
		futures = append(futures, sched.AddWork(u.Work))
	}

	run.Results = make([]models.CheckResult, 0, len(units))
	for i, f := range futures {
		res, err := f.Wait(ctx)
		if err != nil {
			for _, rest := range futures[i+1:] {
				rest.Stop()
			}
			logger.Warnw("suite run canceled", "id", run.ID, "error", err)
			return s.finish(ctx, run, err)
		}
		run.Results = append(run.Results, models.CheckResult{
			Check:  units[i].Check,
			Report: res.Data,
			Error:  res.Err,
		})
	}

	return s.finish(ctx, run, nil)
}

func (s *SuiteService) finish(ctx context.Context, run *models.Run, runErr error) (*models.Run, error) {
	run.FinishedAt = s.now()
	run.State = models.RunStateCompleted
	if runErr != nil {
		run.State = models.RunStateError
		run.Error = runErr
	}

	zap.S().Named("suite_service").Infow("suite run finished",
		"id", run.ID,
		"state", run.State,
		"critical", run.Critical(),
		"warnings", run.Warnings(),
		"errored", run.Errored(),
	)

	// the caller's context may be done already
	if err := s.save(context.WithoutCancel(ctx), run); err != nil {
		return run, err
	}
	return run, nil
}

func (s *SuiteService) save(ctx context.Context, run *models.Run) error {
	if s.store == nil {
		return nil
	}
	return s.store.Runs().Save(ctx, run)
}
