package store

import (
	"context"
	"time"

	"github.com/zintix-labs/lottolab/errs"
)

// Run 一次匯入的紀錄
type Run struct {
	ID         string    `json:"run_id"`
	Source     string    `json:"source"`
	Inserted   int       `json:"inserted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RecordRun 寫入匯入紀錄
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	if r.ID == "" {
		return errs.NewWarn("run id is required")
	}
	if err := s.Init(ctx); err != nil {
		return err
	}
	db, err := s.open(ctx, false)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx,
		`INSERT INTO import_runs (run_id, source, inserted, skipped, failed, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Source, r.Inserted, r.Skipped, r.Failed,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errs.WrapWithExtra(err, "record import run", r.ID)
	}
	return nil
}

// Runs 最近 limit 次匯入（新到舊）；limit<=0 表示全部
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	db, err := s.open(ctx, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT run_id, source, inserted, skipped, failed, started_at, finished_at
		FROM import_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Wrap(err, "query import runs")
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var (
			r              Run
			started, ended string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Inserted, &r.Skipped, &r.Failed, &started, &ended); err != nil {
			return nil, errs.Wrap(err, "scan import run")
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate import runs")
	}
	return out, nil
}
