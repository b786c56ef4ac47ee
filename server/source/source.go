// Package source 提供 dashboard 的唯讀開獎資料來源。
//
// 每個請求都重新查 SQLite 太浪費；這裡用 go-cache 保存整份開獎資料 cache_ttl 時間，
// 過期後下一個請求再查一次。server 從不寫入資料庫。
package source

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/logger"
	"github.com/zintix-labs/lottolab/store"
)

const (
	keyDraws = "draws:desc"
	keyStats = "stats"
)

// Loader 資料讀取介面（*store.Store 實作）
type Loader interface {
	All(ctx context.Context, order store.Order) ([]draw.Draw, error)
	Latest(ctx context.Context, n int) ([]draw.Draw, error)
	Stats(ctx context.Context) (store.Stats, error)
	Runs(ctx context.Context, limit int) ([]store.Run, error)
}

// Source 帶快取的資料來源
type Source struct {
	ld    Loader
	cache *gocache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New ttl <= 0 時不快取
func New(ld Loader, ttl time.Duration, log *slog.Logger) *Source {
	cleanup := max(ttl*2, time.Minute)
	return &Source{
		ld:    ld,
		cache: gocache.New(ttl, cleanup),
		ttl:   ttl,
		log:   logger.OrDiscard(log),
	}
}

// Draws 全部開獎紀錄（新到舊）。回傳的 slice 為共享快取，呼叫端不可修改。
func (s *Source) Draws(ctx context.Context) ([]draw.Draw, error) {
	if v, ok := s.get(keyDraws); ok {
		return v.([]draw.Draw), nil
	}
	ds, err := s.ld.All(ctx, store.Desc)
	if err != nil {
		return nil, err
	}
	s.put(keyDraws, ds)
	s.log.Debug("source.load", slog.Int("draws", len(ds)))
	return ds, nil
}

// Latest 最新 n 筆
func (s *Source) Latest(ctx context.Context, n int) ([]draw.Draw, error) {
	if ds, ok := s.get(keyDraws); ok {
		all := ds.([]draw.Draw)
		return all[:min(n, len(all))], nil
	}
	return s.ld.Latest(ctx, n)
}

// Stats 筆數與日期範圍
func (s *Source) Stats(ctx context.Context) (store.Stats, error) {
	if v, ok := s.get(keyStats); ok {
		return v.(store.Stats), nil
	}
	st, err := s.ld.Stats(ctx)
	if err != nil {
		return store.Stats{}, err
	}
	s.put(keyStats, st)
	return st, nil
}

// Runs 匯入紀錄不快取
func (s *Source) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	return s.ld.Runs(ctx, limit)
}

// Flush 清空快取
func (s *Source) Flush() {
	s.cache.Flush()
}

func (s *Source) get(key string) (any, bool) {
	if s.ttl <= 0 {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Source) put(key string, v any) {
	if s.ttl <= 0 {
		return
	}
	s.cache.Set(key, v, gocache.DefaultExpiration)
}
