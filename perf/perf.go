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

// Package perf 為單次指令執行包上 pprof。
//
// 用法：
//
//	lotto report --pprof cpu
//	go tool pprof build/profiling/cpu.pprof
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/lottolab/errs"
)

// Dir 預設輸出目錄
const Dir = "build/profiling"

// Modes 支援的模式
var Modes = []string{"cpu", "heap", "allocs"}

// Stop 結束 profiling 並寫出檔案
type Stop func() error

func noop() error { return nil }

// Start 依 mode 開始 profiling；mode 為空字串時不做事。
//   - cpu    : 立即開始 CPU profile，Stop 時寫完
//   - heap   : Stop 時先 GC 再寫 in-use heap 快照
//   - allocs : Stop 時寫累積配置
func Start(mode, dir string) (Stop, error) {
	if mode == "" {
		return noop, nil
	}
	if dir == "" {
		dir = Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return noop, errs.Wrap(err, "create profiling dir")
	}
	path := filepath.Join(dir, mode+".pprof")
	switch mode {
	case "cpu":
		f, err := os.Create(path)
		if err != nil {
			return noop, errs.Wrap(err, "create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return noop, errs.Wrap(err, "start cpu profile")
		}
		return func() error {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				return errs.Wrap(err, "close cpu profile")
			}
			return nil
		}, nil
	case "heap":
		return func() error {
			// 快照貼近最新的 live objects
			runtime.GC()
			return write(path, func(f *os.File) error { return pprof.WriteHeapProfile(f) })
		}, nil
	case "allocs":
		return func() error {
			return write(path, func(f *os.File) error { return pprof.Lookup("allocs").WriteTo(f, 0) })
		}, nil
	default:
		return noop, errs.Warnf("unknown pprof mode: %q (cpu|heap|allocs)", mode)
	}
}

func write(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create profile")
	}
	if err := fn(f); err != nil {
		f.Close()
		return errs.Wrap(err, "write profile")
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "close profile")
	}
	return nil
}
