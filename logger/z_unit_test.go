package logger_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/zintix-labs/lottolab/logger"
)

func TestParseMode(t *testing.T) {
	cases := map[string]logger.LogMode{
		"":        logger.ModeDev,
		"DEV":     logger.ModeDev,
		"prod":    logger.ModeProd,
		"json":    logger.ModeProd,
		"silence": logger.ModeSilence,
	}
	for in, want := range cases {
		got, err := logger.ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) got %v err %v", in, got, err)
		}
	}
	if _, err := logger.ParseMode("verbose"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewToProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewTo(logger.ModeProd, &buf)
	l.Debug("hidden")
	l.Info("import.done", slog.Int("inserted", 3))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered in prod: %s", out)
	}
	if !strings.Contains(out, `"inserted":3`) {
		t.Fatalf("missing attr: %s", out)
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)
	buf := &syncBuffer{}
	ah := logger.NewAsyncHandler(slog.NewTextHandler(buf, nil), 64)
	l := slog.New(ah).With(slog.String("svc", "dashboard"))
	for i := 0; i < 10; i++ {
		l.Info("tick", slog.Int("i", i))
	}
	ah.Close()
	out := buf.String()
	if got := strings.Count(out, "msg=tick"); got+int(ah.Dropped()) != 10 {
		t.Fatalf("written %d + dropped %d != 10", got, ah.Dropped())
	}
	if !strings.Contains(out, "svc=dashboard") {
		t.Fatalf("WithAttrs lost: %s", out)
	}
	l.Info("after close")
	if strings.Contains(buf.String(), "after close") {
		t.Fatalf("record accepted after Close")
	}
}

func TestOrDiscard(t *testing.T) {
	if logger.OrDiscard(nil) == nil {
		t.Fatalf("nil logger not replaced")
	}
}
