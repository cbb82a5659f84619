package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"housing-trainer/models"
	"housing-trainer/utils"
)

const sampleBatchSize = 500

// PostgresWriter persists training runs and their samples to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, models.WrapError(models.KindStorage, "postgres: open", err)
	}

	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, models.WrapError(models.KindStorage, "postgres", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, models.WrapError(models.KindStorage, "postgres: migrate", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS training_runs (
			id          SERIAL PRIMARY KEY,
			data_path   TEXT        NOT NULL,
			model_path  TEXT        NOT NULL DEFAULT '',
			rows_kept   INTEGER     NOT NULL DEFAULT 0,
			rows_dropped INTEGER    NOT NULL DEFAULT 0,
			steps       INTEGER     NOT NULL DEFAULT 0,
			w           REAL        NOT NULL DEFAULT 0,
			b           REAL        NOT NULL DEFAULT 0,
			passed      BOOLEAN     NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS training_samples (
			run_id             INTEGER NOT NULL REFERENCES training_runs(id) ON DELETE CASCADE,
			idx                INTEGER NOT NULL,
			total_rooms        REAL    NOT NULL,
			median_house_value REAL    NOT NULL,
			PRIMARY KEY (run_id, idx)
		);

		CREATE INDEX IF NOT EXISTS idx_training_runs_created ON training_runs(created_at);
	`)
	return err
}

// Write stores the run and every sample of buf in one transaction and
// returns the new run id.
func (pw *PostgresWriter) Write(run *models.RunRecord, buf *models.FeatureBuffers) (int64, error) {
	tx, err := pw.db.Begin()
	if err != nil {
		return 0, models.WrapError(models.KindStorage, "postgres: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRow(`
		INSERT INTO training_runs (data_path, model_path, rows_kept, rows_dropped, steps, w, b, passed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, run.DataPath, run.ModelPath, run.Rows, run.Dropped, run.Steps, run.W, run.B, run.Passed).Scan(&id)
	if err != nil {
		return 0, models.WrapError(models.KindStorage, "postgres: insert run", err)
	}

	for i := 0; i < buf.Len(); i += sampleBatchSize {
		end := i + sampleBatchSize
		if end > buf.Len() {
			end = buf.Len()
		}
		query, args := buildSampleInsert(id, i, buf.Features[i:end], buf.Targets[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return 0, models.WrapError(models.KindStorage, "postgres: insert samples", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, models.WrapError(models.KindStorage, "postgres: commit", err)
	}
	run.ID = id
	return id, nil
}

// buildSampleInsert renders one multi-row INSERT for samples starting at offset.
func buildSampleInsert(runID int64, offset int, features, targets []float32) (string, []interface{}) {
	valueStrings := make([]string, 0, len(features))
	valueArgs := make([]interface{}, 0, len(features)*4)

	for idx := range features {
		base := idx * 4
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
		valueArgs = append(valueArgs, runID, offset+idx, features[idx], targets[idx])
	}

	query := fmt.Sprintf(`
		INSERT INTO training_samples (run_id, idx, total_rooms, median_house_value)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

// FetchRecent retrieves the newest runs, used by the history report.
func (pw *PostgresWriter) FetchRecent(limit int) ([]*models.RunRecord, error) {
	rows, err := pw.db.Query(`
		SELECT id, data_path, model_path, rows_kept, rows_dropped, steps, w, b, passed, created_at
		FROM training_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, models.WrapError(models.KindStorage, "postgres: fetch runs", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		r := &models.RunRecord{}
		var created time.Time
		if err := rows.Scan(
			&r.ID, &r.DataPath, &r.ModelPath, &r.Rows, &r.Dropped,
			&r.Steps, &r.W, &r.B, &r.Passed, &created,
		); err != nil {
			return nil, models.WrapError(models.KindStorage, "postgres: scan run", err)
		}
		r.CreatedAt = created
		runs = append(runs, r)
	}
	return runs, models.WrapError(models.KindStorage, "postgres: iterate runs", rows.Err())
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
