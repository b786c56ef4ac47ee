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

// Package server 組裝並啟動唯讀 dashboard。
//
// 組裝順序：SvrCfg.Valid（補上 store / 快取 / 繪圖器）→ chi server →
// api.RegisterRoutes → app.App 管理啟停。
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/server/api"
	"github.com/zintix-labs/lottolab/server/app"
	"github.com/zintix-labs/lottolab/server/netsvr"
	"github.com/zintix-labs/lottolab/server/svrcfg"
)

// Build 組裝好路由的 server（尚未啟動）
func Build(sCfg *svrcfg.SvrCfg) (*netsvr.ChiAdapter, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(sCfg.Cfg.Addr, netsvr.DefaultTimeouts)
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, err
	}
	return svr, nil
}

// Handler 測試與嵌入用：只回傳 http.Handler
func Handler(sCfg *svrcfg.SvrCfg) (http.Handler, error) {
	svr, err := Build(sCfg)
	if err != nil {
		return nil, err
	}
	return svr.Handler(), nil
}

// Run 啟動 dashboard，阻塞到 ctx 取消、收到訊號或 server 結束
func Run(ctx context.Context, sCfg *svrcfg.SvrCfg) error {
	svr, err := Build(sCfg)
	if err != nil {
		return err
	}
	if !svr.Ready() {
		return errs.NewFatal("server is not ready")
	}
	if !sCfg.Store.Exists() {
		sCfg.Log.Warn("server.db.missing", slog.String("path", sCfg.Store.Path()))
	}
	sCfg.Log.Info("server.listen", slog.String("url", "http://localhost"+svr.Address()))
	if err := app.New(sCfg.Log, svr).Run(ctx); err != nil {
		sCfg.Log.Error("server.stop", slog.Any("err", err))
		return errs.Wrap(err, "dashboard server stopped")
	}
	return nil
}
