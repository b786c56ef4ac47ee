package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/server/source"
	"github.com/zintix-labs/lottolab/store"
)

type fakeLoader struct {
	draws []draw.Draw
	calls int
}

func (f *fakeLoader) All(ctx context.Context, order store.Order) ([]draw.Draw, error) {
	f.calls++
	return f.draws, nil
}

func (f *fakeLoader) Latest(ctx context.Context, n int) ([]draw.Draw, error) {
	f.calls++
	return f.draws[:min(n, len(f.draws))], nil
}

func (f *fakeLoader) Stats(ctx context.Context) (store.Stats, error) {
	f.calls++
	return store.Stats{Count: len(f.draws)}, nil
}

func (f *fakeLoader) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	return nil, nil
}

func loader() *fakeLoader {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeLoader{draws: []draw.Draw{
		draw.New("002", d.AddDate(0, 0, 1), draw.Numbers{1, 2, 3, 4, 5}),
		draw.New("001", d, draw.Numbers{6, 7, 8, 9, 10}),
	}}
}

func TestDrawsCached(t *testing.T) {
	ld := loader()
	src := source.New(ld, time.Minute, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ds, err := src.Draws(ctx)
		if err != nil || len(ds) != 2 {
			t.Fatalf("draws %v %v", ds, err)
		}
	}
	if ld.calls != 1 {
		t.Fatalf("loader called %d times", ld.calls)
	}
	latest, _ := src.Latest(ctx, 1)
	if len(latest) != 1 || latest[0].Period != "002" || ld.calls != 1 {
		t.Fatalf("latest %v calls %d", latest, ld.calls)
	}
	src.Flush()
	_, _ = src.Draws(ctx)
	if ld.calls != 2 {
		t.Fatalf("flush should force reload, calls %d", ld.calls)
	}
}

func TestNoCacheWhenTTLZero(t *testing.T) {
	ld := loader()
	src := source.New(ld, 0, nil)
	ctx := context.Background()
	_, _ = src.Draws(ctx)
	_, _ = src.Draws(ctx)
	_, _ = src.Stats(ctx)
	if ld.calls != 3 {
		t.Fatalf("calls %d", ld.calls)
	}
}
