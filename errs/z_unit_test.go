package errs_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/zintix-labs/lottolab/errs"
)

func TestWrapKeepsLevel(t *testing.T) {
	inner := errs.NewWarn("bad date")
	got := errs.Wrap(inner, "calendar")
	if got.ErrLv != errs.Warn {
		t.Fatalf("level got %s", errs.ErrLv(got.ErrLv))
	}
	if !errors.Is(got, inner) {
		t.Fatalf("cause lost")
	}
}

func TestWrapForeignIsFatal(t *testing.T) {
	_, cause := strconv.Atoi("x")
	if !errs.IsFatal(errs.Wrap(cause, "parse")) {
		t.Fatalf("foreign cause should be fatal")
	}
	if !errs.IsWarn(errs.WrapAs(errs.Warn, cause, "parse")) {
		t.Fatalf("WrapAs should override level")
	}
	if errs.Level(fmt.Errorf("plain")) != errs.Fatal || errs.Level(nil) != errs.None {
		t.Fatalf("Level mismatch")
	}
}

func TestMessageChain(t *testing.T) {
	err := errs.Wrap(errs.WrapWithExtra(errs.NewLog("bad number"), "row", "period=113000001"), "import")
	if got := errs.Message(err); got != "import: row: bad number" {
		t.Fatalf("got %q", got)
	}
	e, ok := errs.AsErr(fmt.Errorf("ctx: %w", err))
	if !ok || e.Message != "import" || e.ErrLv != errs.Log {
		t.Fatalf("AsErr got %+v", e)
	}
}
