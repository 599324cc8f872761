package store

// Run queries
const (
	queryUpsertRun = `
		INSERT INTO runs (id, suite, state, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			suite = EXCLUDED.suite,
			state = EXCLUDED.state,
			error = EXCLUDED.error,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at`

	queryDeleteResults = `DELETE FROM check_results WHERE run_id = ?`

	queryInsertResult = `
		INSERT INTO check_results (
			run_id, position, check_name, total, violations_count,
			critical_count, warning_count, error, violations
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)
