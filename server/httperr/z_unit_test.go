package httperr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/server/httperr"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.NewWarn("bad"), http.StatusBadRequest},
		{errs.NewLog("row"), http.StatusBadRequest},
		{errs.NewFatal("database not found"), http.StatusInternalServerError},
		{errs.Wrap(context.DeadlineExceeded, "query"), http.StatusGatewayTimeout},
		{context.Canceled, http.StatusRequestTimeout},
	}
	for _, c := range cases {
		if got := httperr.StatusCode(c.err); got != c.want {
			t.Errorf("%v: got %d want %d", c.err, got, c.want)
		}
	}
}

func TestErrsWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httperr.Errs(rec, errs.NewWithExtra(errs.Warn, "number out of range", "n=40"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	var b httperr.Body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if b.Error != "number out of range" || b.Extra != "n=40" {
		t.Fatalf("body %+v", b)
	}
}
