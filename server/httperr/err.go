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

// Package httperr 把 errs 分級轉成 HTTP 回應；只屬於 HTTP 邊界層。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/lottolab/errs"
)

// StatusCode 錯誤 → status code
//   - ctx timeout/cancel → 504/408
//   - errs.Warn / errs.Log → 400（查詢參數或輸入資料問題）
//   - errs.Fatal（含資料庫不存在）→ 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	switch errs.Level(err) {
	case errs.Warn, errs.Log:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body 錯誤回應
type Body struct {
	Error string `json:"error"`
	Extra string `json:"extra,omitempty"`
}

// Errs 以 JSON 回寫錯誤
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	b := Body{Error: errs.Message(err)}
	if e, ok := errs.AsErr(err); ok {
		b.Extra = e.Extra
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(StatusCode(err))
	_ = json.NewEncoder(w).Encode(b)
}

// Log 4xx 以 Warn、5xx 以 Error 記錄；400 屬於使用者輸入，不記錄
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.String("err", errs.Message(err)))
	case status == http.StatusRequestTimeout:
		log.Warn(msg, slog.Int("status", status), slog.String("err", errs.Message(err)))
	}
}
