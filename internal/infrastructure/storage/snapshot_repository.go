package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"legtracker/internal/domain"
	"legtracker/internal/ports"
)

const insertBatchSize = 500

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	build_id   TEXT PRIMARY KEY,
	built_at   TIMESTAMP NOT NULL,
	bill_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS bill_stages (
	build_id    TEXT NOT NULL,
	sponsor     TEXT NOT NULL,
	bill_number TEXT NOT NULL,
	status_tag  TEXT NOT NULL,
	percentage  REAL NOT NULL,
	record_date TIMESTAMP NOT NULL,
	captured_at TIMESTAMP NOT NULL,
	PRIMARY KEY (build_id, sponsor, bill_number)
);
CREATE INDEX IF NOT EXISTS idx_bill_stages_build ON bill_stages(build_id);
`

// SnapshotRepository persists the stage of every bill per dashboard build.
type SnapshotRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)

// Open picks the driver from the DSN: postgres:// and postgresql:// use
// lib/pq, sqlite: prefixes or bare paths use go-sqlite3. The schema is
// created when missing.
func Open(ctx context.Context, dsn string) (*SnapshotRepository, error) {
	driver, source, placeholder := resolveDSN(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	repo := NewSnapshotRepository(db, placeholder)
	if err := repo.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSnapshotRepository wires an already opened sql.DB.
func NewSnapshotRepository(db *sql.DB, placeholder sq.PlaceholderFormat) *SnapshotRepository {
	return &SnapshotRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}
}

func resolveDSN(dsn string) (driver, source string, placeholder sq.PlaceholderFormat) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, sq.Dollar
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite3", strings.TrimPrefix(dsn, "sqlite://"), sq.Question
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite3", strings.TrimPrefix(dsn, "sqlite:"), sq.Question
	default:
		return "sqlite3", dsn, sq.Question
	}
}

func (r *SnapshotRepository) migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (r *SnapshotRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// LatestStages returns the snapshots of the most recent build, keyed by bill.
func (r *SnapshotRepository) LatestStages(ctx context.Context) (map[ports.SnapshotKey]domain.StageSnapshot, error) {
	result := map[ports.SnapshotKey]domain.StageSnapshot{}
	if r.db == nil {
		return result, nil
	}

	latest, args, err := r.builder.
		Select("build_id").
		From("builds").
		OrderBy("built_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest query: %w", err)
	}

	var buildID string
	switch err := r.db.QueryRowContext(ctx, latest, args...).Scan(&buildID); {
	case errors.Is(err, sql.ErrNoRows):
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("query latest build: %w", err)
	}

	query, args, err := r.builder.
		Select("sponsor", "bill_number", "status_tag", "percentage", "record_date", "captured_at").
		From("bill_stages").
		Where(sq.Eq{"build_id": buildID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stages query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}

	for rows.Next() {
		snap := domain.StageSnapshot{BuildID: buildID}
		if err := rows.Scan(&snap.Sponsor, &snap.BillNumber, &snap.StatusTag, &snap.Percentage, &snap.RecordDate, &snap.CapturedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		result[ports.SnapshotKey{Sponsor: snap.Sponsor, BillNumber: snap.BillNumber}] = snap
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// SaveBuild records a build and all of its bill stages in one transaction.
func (r *SnapshotRepository) SaveBuild(ctx context.Context, buildID string, snapshots []domain.StageSnapshot) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin build %s: %w", buildID, err)
	}
	defer tx.Rollback()

	builtAt := r.now().UTC()
	query, args, err := r.builder.
		Insert("builds").
		Columns("build_id", "built_at", "bill_count").
		Values(buildID, builtAt, len(snapshots)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert build %s: %w", buildID, err)
	}

	for start := 0; start < len(snapshots); start += insertBatchSize {
		end := min(start+insertBatchSize, len(snapshots))

		insert := r.builder.
			Insert("bill_stages").
			Columns("build_id", "sponsor", "bill_number", "status_tag", "percentage", "record_date", "captured_at")
		for _, s := range snapshots[start:end] {
			captured := s.CapturedAt
			if captured.IsZero() {
				captured = builtAt
			}
			insert = insert.Values(buildID, s.Sponsor, s.BillNumber, s.StatusTag, s.Percentage, s.RecordDate.UTC(), captured.UTC())
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build stage insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert stages for %s: %w", buildID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit build %s: %w", buildID, err)
	}
	return nil
}
