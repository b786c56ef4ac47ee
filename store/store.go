// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store 是開獎資料的 SQLite 儲存層。
//
// 每個操作都開一條專屬連線、執行查詢、把結果完整讀進記憶體後關閉連線；
// Store 本身只保存路徑，不持有 *sql.DB。
// 寫入一律 INSERT OR IGNORE：期別重複的列會被略過，不會更新既有資料。
package store

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS lotto539 (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	period TEXT UNIQUE NOT NULL,
	draw_date TEXT NOT NULL,
	weekday TEXT NOT NULL,
	no1 INTEGER NOT NULL,
	no2 INTEGER NOT NULL,
	no3 INTEGER NOT NULL,
	no4 INTEGER NOT NULL,
	no5 INTEGER NOT NULL,
	remark TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_lotto539_date ON lotto539(draw_date);

CREATE TABLE IF NOT EXISTS import_runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	inserted INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
`

// Order 讀取排序
type Order uint8

const (
	Asc  Order = iota // 舊到新
	Desc              // 新到舊
)

// Store SQLite 檔案存取
type Store struct {
	path string
	log  *slog.Logger
}

// New 建立 Store；不會建立檔案，首次寫入前請呼叫 Init
func New(path string, log *slog.Logger) *Store {
	return &Store{path: path, log: logger.OrDiscard(log)}
}

// Path 資料庫檔案路徑
func (s *Store) Path() string { return s.path }

// Exists 資料庫檔案是否存在
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// open 開啟一條連線。create=false 時檔案不存在回傳 Fatal。
func (s *Store) open(ctx context.Context, create bool) (*sql.DB, error) {
	if !create && !s.Exists() {
		return nil, errs.NewWithExtra(errs.Fatal, "database not found", s.path)
	}
	if create {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errs.Wrap(err, "create database dir")
			}
		}
	}
	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return nil, errs.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "ping database")
	}
	return db, nil
}

// Init 建立資料表（可重複呼叫）
func (s *Store) Init(ctx context.Context) error {
	db, err := s.open(ctx, true)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errs.Wrap(err, "create schema")
	}
	s.log.Debug("store.init", slog.String("path", s.path))
	return nil
}

// InsertResult 寫入結果
type InsertResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"` // 期別已存在
}

const insertSQL = `INSERT OR IGNORE INTO lotto539
	(period, draw_date, weekday, no1, no2, no3, no4, no5, remark)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert 在單一交易中寫入多筆；重複期別計入 Skipped。
// progress 非 nil 時每處理一筆呼叫一次（匯入進度條用）。
func (s *Store) Insert(ctx context.Context, draws []draw.Draw, progress func()) (InsertResult, error) {
	res := InsertResult{}
	if err := s.Init(ctx); err != nil {
		return res, err
	}
	db, err := s.open(ctx, false)
	if err != nil {
		return res, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, errs.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return res, errs.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, d := range draws {
		n := d.Numbers
		r, err := stmt.ExecContext(ctx, d.Period, d.DateString(), d.Weekday.Label(),
			n[0], n[1], n[2], n[3], n[4], d.Remark)
		if err != nil {
			return InsertResult{}, errs.WrapWithExtra(err, "insert draw", d.Period)
		}
		affected, err := r.RowsAffected()
		if err != nil {
			return InsertResult{}, errs.Wrap(err, "rows affected")
		}
		if affected > 0 {
			res.Inserted++
		} else {
			res.Skipped++
		}
		if progress != nil {
			progress()
		}
	}
	if err := tx.Commit(); err != nil {
		return InsertResult{}, errs.Wrap(err, "commit")
	}
	s.log.Info("store.insert", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	return res, nil
}

// InsertOne 寫入單筆，回傳是否真的新增
func (s *Store) InsertOne(ctx context.Context, d draw.Draw) (bool, error) {
	r, err := s.Insert(ctx, []draw.Draw{d}, nil)
	if err != nil {
		return false, err
	}
	return r.Inserted == 1, nil
}

const selectCols = `SELECT id, period, draw_date, weekday, no1, no2, no3, no4, no5, COALESCE(remark, '') FROM lotto539`

// All 讀取全部開獎紀錄
func (s *Store) All(ctx context.Context, order Order) ([]draw.Draw, error) {
	return s.query(ctx, selectCols+orderBy(order))
}

// Range 讀取 [start, end] 區間（含端點）；零值表示不限制
func (s *Store) Range(ctx context.Context, start, end time.Time, order Order) ([]draw.Draw, error) {
	q := selectCols + ` WHERE 1=1`
	args := []any{}
	if !start.IsZero() {
		q += ` AND draw_date >= ?`
		args = append(args, start.Format(draw.DateLayout))
	}
	if !end.IsZero() {
		q += ` AND draw_date <= ?`
		args = append(args, end.Format(draw.DateLayout))
	}
	return s.query(ctx, q+orderBy(order), args...)
}

// Latest 最新 n 期（新到舊）
func (s *Store) Latest(ctx context.Context, n int) ([]draw.Draw, error) {
	if n <= 0 {
		return []draw.Draw{}, nil
	}
	return s.query(ctx, selectCols+orderBy(Desc)+` LIMIT ?`, n)
}

// Stats 資料庫概況
type Stats struct {
	Count int       `json:"count"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// Stats 回傳總期數與最早 / 最晚開獎日
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{}
	db, err := s.open(ctx, false)
	if err != nil {
		return st, err
	}
	defer db.Close()

	var first, last sql.NullString
	row := db.QueryRowContext(ctx, `SELECT COUNT(*), MIN(draw_date), MAX(draw_date) FROM lotto539`)
	if err := row.Scan(&st.Count, &first, &last); err != nil {
		return st, errs.Wrap(err, "query stats")
	}
	if first.Valid {
		st.First, _ = draw.ParseDate(first.String)
	}
	if last.Valid {
		st.Last, _ = draw.ParseDate(last.String)
	}
	return st, nil
}

func orderBy(o Order) string {
	if o == Desc {
		return ` ORDER BY draw_date DESC, period DESC`
	}
	return ` ORDER BY draw_date ASC, period ASC`
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]draw.Draw, error) {
	db, err := s.open(ctx, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Wrap(err, "query draws")
	}
	defer rows.Close()

	out := make([]draw.Draw, 0, 256)
	for rows.Next() {
		var (
			d       draw.Draw
			date    string
			weekday string
		)
		n := &d.Numbers
		if err := rows.Scan(&d.ID, &d.Period, &date, &weekday, &n[0], &n[1], &n[2], &n[3], &n[4], &d.Remark); err != nil {
			return nil, errs.Wrap(err, "scan draw")
		}
		t, err := draw.ParseDate(date)
		if err != nil {
			s.log.Warn("store.bad_date", slog.String("period", d.Period), slog.String("date", date))
			continue
		}
		d.Date = t
		if w, err := draw.ParseWeekday(weekday); err == nil {
			d.Weekday = w
		} else {
			d.Weekday = draw.WeekdayOf(t)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate draws")
	}
	return out, nil
}
