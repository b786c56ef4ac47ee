package app_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/zintix-labs/lottolab/server/app"
)

type comp struct {
	runErr   error
	block    chan struct{}
	shutdown int
}

func (c *comp) Run() error {
	if c.block != nil {
		<-c.block
	}
	return c.runErr
}

func (c *comp) Shutdown(ctx context.Context) error {
	c.shutdown++
	if c.block != nil {
		close(c.block)
	}
	return nil
}

func TestRunReturnsComponentError(t *testing.T) {
	boom := errors.New("boom")
	c := &comp{runErr: boom}
	if err := app.New(nil, c).Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if c.shutdown != 1 {
		t.Fatalf("shutdown called %d times", c.shutdown)
	}
}

func TestRunServerClosedIsClean(t *testing.T) {
	c := &comp{runErr: http.ErrServerClosed}
	if err := app.New(nil, c).Run(context.Background()); err != nil {
		t.Fatalf("got %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	c := &comp{block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.New(nil, c).Run(ctx); err != nil {
		t.Fatalf("got %v", err)
	}
	if c.shutdown != 1 {
		t.Fatalf("shutdown called %d times", c.shutdown)
	}
}
