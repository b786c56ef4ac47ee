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

// Package svrcfg 集中 dashboard server 需要注入的依賴。
package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/lottolab/chart"
	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
	"github.com/zintix-labs/lottolab/pdfreport"
	"github.com/zintix-labs/lottolab/server/source"
	"github.com/zintix-labs/lottolab/store"
)

type SvrCfg struct {
	Log    *slog.Logger
	Cfg    *config.Config
	Store  *store.Store
	Source *source.Source    // 未提供時以 Store + Cfg.CacheTTL 建立
	Charts *chart.Renderer   // 未提供時以 Cfg.FontPath 建立
	PDF    *pdfreport.Writer // 同上
	Now    func() time.Time  // 測試用；預設 time.Now
}

// Valid 檢查必要依賴並補上預設元件
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Cfg == nil {
		return errs.NewFatal("config is required")
	}
	if sc.Store == nil {
		sc.Store = store.New(sc.Cfg.DBPath, sc.Log)
	}
	if sc.Source == nil {
		sc.Source = source.New(sc.Store, sc.Cfg.CacheTTL, sc.Log)
	}
	if sc.Charts == nil {
		// 字型讀取失敗只影響標籤語言，已在 chart.New 內記錄
		sc.Charts, _ = chart.New(sc.Cfg.FontPath, sc.Log)
	}
	if sc.PDF == nil {
		sc.PDF = pdfreport.New(sc.Cfg.FontPath, sc.Log)
	}
	if sc.Now == nil {
		sc.Now = time.Now
	}
	return nil
}
