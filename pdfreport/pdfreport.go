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

// Package pdfreport 產出摘要 PDF 與星期號碼 PDF。
//
// PDF 內建字型（Helvetica）只支援 cp1252，因此未設定 font_path 時使用英文標籤；
// 設定 CJK TTF 後改用中文。
package pdfreport

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
)

const family = "cjk"

// Writer PDF 產生器
type Writer struct {
	font []byte // nil = 內建字型
	log  *slog.Logger
	now  func() time.Time
}

// New 讀取字型檔；失敗時記錄 Warn 並退回英文版面
func New(fontPath string, log *slog.Logger) *Writer {
	w := &Writer{log: logger.OrDiscard(log), now: time.Now}
	if fontPath == "" {
		return w
	}
	b, err := os.ReadFile(fontPath)
	if err != nil {
		w.log.Warn("pdf.font", slog.String("path", fontPath), slog.String("err", err.Error()))
		return w
	}
	w.font = b
	return w
}

// WithClock 測試用
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// CJK 是否使用中文字型
func (w *Writer) CJK() bool {
	return w.font != nil
}

// doc 包一層 fpdf，處理字型與文字轉碼
type doc struct {
	*fpdf.Fpdf
	cjk bool
	tr  func(string) string
}

func (w *Writer) newDoc(orientation, title string) *doc {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	t := w.now()
	pdf.SetCreationDate(t)
	pdf.SetModificationDate(t)
	d := &doc{Fpdf: pdf, cjk: w.font != nil}
	if d.cjk {
		pdf.AddUTF8FontFromBytes(family, "", w.font)
		pdf.AddUTF8FontFromBytes(family, "B", w.font)
		d.tr = func(s string) string { return s }
	} else {
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle(title, true)
	return d
}

func (d *doc) font(style string, size float64) {
	if d.cjk {
		d.SetFont(family, style, size)
		return
	}
	d.SetFont("Helvetica", style, size)
}

// pick 依字型選擇中文或英文
func (d *doc) pick(en, zh string) string {
	if d.cjk {
		return zh
	}
	return en
}

func (d *doc) output(out io.Writer) error {
	if d.Err() {
		return errs.Wrap(d.Error(), "build pdf")
	}
	if err := d.Output(out); err != nil {
		return errs.Wrap(err, "write pdf")
	}
	return nil
}

// writeFile 建立上層目錄後寫檔；失敗時刪除半成品
func writeFile(path string, fn func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(err, "create report dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create pdf file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errs.Wrap(cerr, "close pdf file")
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return fn(f)
}
