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

// Package logger 組裝 lottolab 使用的 *slog.Logger。
//
// 所有元件（store / importer / fetcher / server）都以參數接收 *slog.Logger，
// 不使用全域 logger。CLI 預設同步輸出；dashboard 以 AsyncHandler 包裝，避免寫 log 阻塞請求。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/lottolab/errs"
)

// LogMode 輸出模式
type LogMode uint8

const (
	ModeDev     LogMode = iota // text, stderr, debug
	ModeProd                   // json, stdout, info
	ModeSilence                // 全部丟棄（測試用）
)

func (m LogMode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	default:
		return "unknown"
	}
}

// ParseMode 解析設定檔中的 log_mode；空字串視為 dev
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev", "text":
		return ModeDev, nil
	case "prod", "json":
		return ModeProd, nil
	case "silence", "silent", "off":
		return ModeSilence, nil
	default:
		return ModeDev, errs.Warnf("unknown log mode: %q", s)
	}
}

// New 依模式建立同步 logger（CLI 使用）
func New(mode LogMode) *slog.Logger {
	return slog.New(handlerFor(mode, nil))
}

// NewTo 將 log 寫到指定 writer，格式依模式決定（測試 / 子命令重導輸出用）
func NewTo(mode LogMode, w io.Writer) *slog.Logger {
	return slog.New(handlerFor(mode, w))
}

// NewAsync 依模式建立非阻塞 logger，回傳的 *AsyncHandler 需在結束時 Close 以 drain 剩餘紀錄
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(handlerFor(mode, nil), buf)
	return slog.New(ah), ah
}

// Discard 靜默 logger
func Discard() *slog.Logger {
	return New(ModeSilence)
}

// OrDiscard nil 時回傳靜默 logger，讓元件不必到處判斷 nil
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

func handlerFor(mode LogMode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
