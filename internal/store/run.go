package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

// Save inserts or replaces a run together with its results.
func (s *RunStore) Save(ctx context.Context, run *models.Run) error {
	return s.db.WithTx(ctx, func(tx Tx) error {
		_, err := tx.ExecContext(ctx, queryUpsertRun,
			run.ID.String(),
			run.Suite,
			string(run.State),
			errString(run.Error),
			nullTime(run.StartedAt),
			nullTime(run.FinishedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to save run %s: %w", run.ID, err)
		}

		if _, err := tx.ExecContext(ctx, queryDeleteResults, run.ID.String()); err != nil {
			return err
		}

		for i, res := range run.Results {
			var (
				total, count, critical, warning int
				violations                      = []byte("[]")
			)
			if res.Report != nil {
				total, count = res.Report.Total, res.Report.Count
				critical, warning = res.Report.Critical(), res.Report.Warnings()
				violations, err = json.Marshal(res.Report.Violations)
				if err != nil {
					return err
				}
			}
			_, err = tx.ExecContext(ctx, queryInsertResult,
				run.ID.String(), i, string(res.Check),
				total, count, critical, warning,
				errString(res.Error), string(violations),
			)
			if err != nil {
				return fmt.Errorf("failed to save result %s of run %s: %w", res.Check, run.ID, err)
			}
		}
		return nil
	})
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	runs, err := s.List(ctx, ByIDs(id))
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, srvErrors.NewRunNotFoundError(id)
	}
	return &runs[0], nil
}

// List returns runs with their results.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select(
		"runs.id",
		"runs.suite",
		"runs.state",
		"runs.error",
		"runs.started_at",
		"runs.finished_at",
	).From("runs")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var (
			run               models.Run
			id, state, errMsg string
			started, finished sql.NullTime
		)
		if err := rows.Scan(&id, &run.Suite, &state, &errMsg, &started, &finished); err != nil {
			return nil, err
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", id, err)
		}
		run.State = models.RunState(state)
		run.Error = toError(errMsg)
		run.StartedAt = started.Time
		run.FinishedAt = finished.Time
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := s.loadResults(ctx, runs); err != nil {
		return nil, err
	}

	return runs, nil
}

func (s *RunStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("runs")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (s *RunStore) loadResults(ctx context.Context, runs []models.Run) error {
	if len(runs) == 0 {
		return nil
	}

	index := make(map[string]int, len(runs))
	ids := make([]string, 0, len(runs))
	for i, r := range runs {
		index[r.ID.String()] = i
		ids = append(ids, r.ID.String())
	}

	query, args, err := sq.Select(
		"run_id", "check_name", "total", "violations_count", "error", "violations",
	).From("check_results").
		Where(sq.Eq{"run_id": ids}).
		OrderBy("run_id", "position").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID, check, errMsg, violations string
			total, count                     int
		)
		if err := rows.Scan(&runID, &check, &total, &count, &errMsg, &violations); err != nil {
			return err
		}

		res := models.CheckResult{Check: compliance.Check(check), Error: toError(errMsg)}
		if res.Error == nil {
			report := &compliance.Report{Check: res.Check, Total: total, Violations: []compliance.Violation{}}
			if err := json.Unmarshal([]byte(violations), &report.Violations); err != nil {
				return fmt.Errorf("invalid violations of run %s: %w", runID, err)
			}
			report.Count = len(report.Violations)
			res.Report = report
		}

		i := index[runID]
		runs[i].Results = append(runs[i].Results, res)
	}

	return rows.Err()
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByIDs(ids ...uuid.UUID) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(ids) == 0 {
			return b
		}
		s := make([]string, 0, len(ids))
		for _, id := range ids {
			s = append(s, id.String())
		}
		return b.Where(sq.Eq{"runs.id": s})
	}
}

func ByStates(states ...models.RunState) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(states) == 0 {
			return b
		}
		s := make([]string, 0, len(states))
		for _, st := range states {
			s = append(s, string(st))
		}
		return b.Where(sq.Eq{"runs.state": s})
	}
}

func BySuite(names ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(names) == 0 {
			return b
		}
		return b.Where(sq.Eq{"runs.suite": names})
	}
}

// ByChecks keeps runs that executed at least one of the checks.
func ByChecks(checks ...compliance.Check) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(checks) == 0 {
			return b
		}
		names := make([]string, 0, len(checks))
		for _, c := range checks {
			names = append(names, string(c))
		}
		sub, args, err := sq.Select("run_id").From("check_results").Where(sq.Eq{"check_name": names}).ToSql()
		if err != nil {
			return b
		}
		return b.Where("runs.id IN ("+sub+")", args...)
	}
}

// ByStartedAfter keeps runs started at or after t.
func ByStartedAfter(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"runs.started_at": t.UTC()})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort orders runs newest first.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("runs.started_at DESC", "runs.id")
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func toError(s string) error {
	if s == "" {
		return nil
	}
	return errors.New(s)
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
