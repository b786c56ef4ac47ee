package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// 已經是壓縮格式的內容（PNG / PDF / XLSX）再壓一次只浪費 CPU
var precompressed = []string{
	"image/",
	"application/pdf",
	"application/zip",
	"application/vnd.openxmlformats",
}

func skipType(ct string) bool {
	ct = strings.ToLower(ct)
	for _, p := range precompressed {
		if strings.HasPrefix(ct, p) {
			return true
		}
	}
	return false
}

func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

var (
	gzipPool sync.Pool
	zstdPool sync.Pool
)

type encoder interface {
	io.Writer
	Flush() error
	Close() error
}

func acquire(enc string, w io.Writer) encoder {
	switch enc {
	case "zstd":
		if v := zstdPool.Get(); v != nil {
			zw := v.(*zstd.Encoder)
			zw.Reset(w)
			return zw
		}
		zw, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(DefaultCompressConfig.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	default:
		if v := gzipPool.Get(); v != nil {
			gw := v.(*gzip.Writer)
			gw.Reset(w)
			return gw
		}
		gw, _ := gzip.NewWriterLevel(w, DefaultCompressConfig.GzipLevel)
		return gw
	}
}

func release(e encoder) {
	_ = e.Close()
	switch v := e.(type) {
	case *zstd.Encoder:
		zstdPool.Put(v)
	case *gzip.Writer:
		gzipPool.Put(v)
	}
}

// compressWriter 在第一次 WriteHeader / Write 時才決定是否壓縮，
// 讓 handler 先設定的 Content-Type 有機會關閉壓縮。
type compressWriter struct {
	http.ResponseWriter
	encoding string
	enc      encoder
	decided  bool
}

func (cw *compressWriter) decide(code int, sniff []byte) {
	if cw.decided {
		return
	}
	cw.decided = true
	h := cw.Header()
	ct := h.Get("Content-Type")
	if ct == "" && sniff != nil {
		ct = http.DetectContentType(sniff)
		h.Set("Content-Type", ct)
	}
	if isNoBodyStatus(code) || skipType(ct) || h.Get("Content-Encoding") != "" {
		return
	}
	h.Del("Content-Length")
	h.Set("Content-Encoding", cw.encoding)
	h.Add("Vary", "Accept-Encoding")
	cw.enc = acquire(cw.encoding, cw.ResponseWriter)
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.decide(code, nil)
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if !cw.decided {
		cw.decide(http.StatusOK, b)
	}
	if cw.enc == nil {
		return cw.ResponseWriter.Write(b)
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) Flush() {
	if cw.enc != nil {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

func (cw *compressWriter) close() {
	if cw.enc != nil {
		release(cw.enc)
	}
}

func negotiate(r *http.Request) string {
	ae := r.Header.Get("Accept-Encoding")
	switch {
	case strings.Contains(ae, "zstd"):
		return "zstd"
	case strings.Contains(ae, "gzip"):
		return "gzip"
	default:
		return ""
	}
}

// Compression 依 Accept-Encoding 使用 zstd 或 gzip；HEAD 與已壓縮格式直接放行
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := negotiate(r)
		if enc == "" || r.Method == http.MethodHead || r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		cw := &compressWriter{ResponseWriter: w, encoding: enc}
		defer cw.close()
		next.ServeHTTP(cw, r)
	})
}
