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

// Package errs 定義 lottolab 全域共用的分級錯誤。
//
// 三種等級對應三類錯誤來源：
//   - Warn  : 使用者或外部輸入格式錯誤（日期、號碼範圍、重複查詢值），回報後略過該筆。
//   - Fatal : 外部資源缺失（CSV 路徑、資料庫檔案）或下層依賴錯誤，操作提前中止。
//   - Log   : 單筆 CSV 列解析失敗，記錄期別後繼續匯入其餘列。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : 錯誤分級，讓最上層（CLI 選單 / HTTP 邊界）決定如何呈現
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為附加上下文（例如期別、檔案路徑）；Cause 為下層錯誤。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }
func NewWarn(msg string) *E  { return New(Warn, msg) }
func NewLog(msg string) *E   { return New(Log, msg) }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }
func Warnf(format string, a ...any) *E  { return NewWarn(fmt.Sprintf(format, a...)) }
func Logf(format string, a ...any) *E   { return NewLog(fmt.Sprintf(format, a...)) }

// NewWithExtra 與 New 相同，但附加上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 以 msg 包裝底層錯誤。
//
// ErrLevel 規則：
//   - cause 已經是 *E：沿用其 ErrLv。
//   - cause 來自標準庫或三方依賴（sql、net/http、csv...）：一律視為 Fatal。
//
// 可預期且可處理的情境（例如單筆 CSV 列錯誤）請直接 New 並指定等級，不要 Wrap。
func Wrap(cause error, msg string) *E {
	r := New(levelOf(cause), msg)
	r.Cause = cause
	return r
}

// WrapWithExtra 與 Wrap 相同，額外附加上下文。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := NewWithExtra(levelOf(cause), msg, extra)
	r.Cause = cause
	return r
}

// WrapAs 以指定等級包裝，用在「下層是三方錯誤，但這裡已知是輸入問題」的情境，
// 例如 strconv 解析號碼失敗應該是 Warn / Log 而不是 Fatal。
func WrapAs(errLv ErrLevel, cause error, msg string) *E {
	r := New(errLv, msg)
	r.Cause = cause
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// Level 回傳 err 的等級；非 *E 的錯誤視為 Fatal，nil 為 None。
func Level(err error) ErrLevel {
	if err == nil {
		return None
	}
	return levelOf(err)
}

func IsWarn(err error) bool  { return Level(err) == Warn }
func IsFatal(err error) bool { return Level(err) == Fatal }

func levelOf(cause error) ErrLevel {
	var e *E
	if errors.As(cause, &e) {
		return e.ErrLv
	}
	return Fatal
}

// Message 回傳不含等級標記的訊息鏈，例如 "bad number: strconv.Atoi: parsing \"x\": invalid syntax"。
// 給使用者看的輸出（CLI、dashboard 警告）使用。
func Message(err error) string {
	if err == nil {
		return ""
	}
	e, ok := AsErr(err)
	if !ok {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + Message(e.Cause)
	}
	return msg
}
