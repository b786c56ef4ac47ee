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

// Package config 定義 lottolab 的執行設定。
//
// 設定來源優先序（高到低）：
//  1. CLI flags
//  2. 環境變數 LOTTO_*（例如 LOTTO_DB_PATH），含工作目錄 .env 內的設定
//  3. 設定檔 lotto.yaml
//  4. 內建預設值
//
// 所有元件都拿到明確的 *Config，不讀全域狀態。
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
)

const (
	EnvPrefix      = "LOTTO"
	FileName       = "lotto"
	FileType       = "yaml"
	DefaultCSVURL  = "https://biga.com.tw/HISTORYDATA/tw539.csv"
	LatestPointer  = ".latest_csv_path"
	DefaultAddress = ":8539"
	DotEnv         = ".env"
)

// Config 執行設定
type Config struct {
	DBPath        string        `yaml:"db_path" mapstructure:"db_path"`
	DataDir       string        `yaml:"data_dir" mapstructure:"data_dir"`
	ReportDir     string        `yaml:"report_dir" mapstructure:"report_dir"`
	ChartDir      string        `yaml:"chart_dir" mapstructure:"chart_dir"`
	CSVURL        string        `yaml:"csv_url" mapstructure:"csv_url"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	FontPath      string        `yaml:"font_path" mapstructure:"font_path"` // TTF 字型；空字串時 PDF 使用英文標籤
	Addr          string        `yaml:"addr" mapstructure:"addr"`
	LogMode       string        `yaml:"log_mode" mapstructure:"log_mode"`
	StrictNumbers bool          `yaml:"strict_numbers" mapstructure:"strict_numbers"`
	CacheTTL      time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// Default 內建預設值
func Default() *Config {
	return &Config{
		DBPath:        "lotto539.db",
		DataDir:       "data",
		ReportDir:     "reports",
		ChartDir:      filepath.Join("reports", "charts"),
		CSVURL:        DefaultCSVURL,
		FetchTimeout:  10 * time.Second,
		Addr:          DefaultAddress,
		LogMode:       "dev",
		StrictNumbers: true,
		CacheTTL:      time.Minute,
	}
}

// SetDefaults 將預設值寫入 viper，讓 env / file 只需覆寫部分欄位
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("report_dir", d.ReportDir)
	v.SetDefault("chart_dir", d.ChartDir)
	v.SetDefault("csv_url", d.CSVURL)
	v.SetDefault("fetch_timeout", d.FetchTimeout)
	v.SetDefault("font_path", d.FontPath)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log_mode", d.LogMode)
	v.SetDefault("strict_numbers", d.StrictNumbers)
	v.SetDefault("cache_ttl", d.CacheTTL)
}

// NewViper 建立已設定好 env prefix 與預設值的 viper。
// file 非空時指定設定檔；否則在工作目錄尋找 lotto.yaml。
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType(FileType)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load 讀取設定檔（不存在時略過）並套用 env，回傳驗證過的 Config
func Load(file string) (*Config, error) {
	return FromViper(NewViper(file), file != "")
}

// FromViper 從已綁定 flags 的 viper 讀出 Config。
// required=true 時，設定檔不存在視為錯誤（使用者明確指定了 --config）。
func FromViper(v *viper.Viper, required bool) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if required || !errors.As(err, &notFound) {
			return nil, errs.Wrap(err, "read config")
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.Wrap(err, "decode config")
	}
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv 工作目錄有 .env 時載入；已存在的環境變數不會被覆寫
func loadDotEnv() error {
	if _, err := os.Stat(DotEnv); err != nil {
		return nil
	}
	if err := godotenv.Load(DotEnv); err != nil {
		return errs.WrapAs(errs.Warn, err, "read "+DotEnv)
	}
	return nil
}

// Valid 檢查並修正設定值
func (c *Config) Valid() error {
	if c == nil {
		return errs.NewFatal("config is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errs.NewWarn("db_path is required")
	}
	if _, err := logger.ParseMode(c.LogMode); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
	if c.ChartDir == "" {
		c.ChartDir = filepath.Join(c.ReportDir, "charts")
	}
	if c.Addr == "" {
		c.Addr = DefaultAddress
	}
	if c.FontPath != "" {
		if _, err := os.Stat(c.FontPath); err != nil {
			return errs.Warnf("font_path not found: %s", c.FontPath)
		}
	}
	return nil
}

// Mode 解析後的 log 模式（Valid 已檢查過）
func (c *Config) Mode() logger.LogMode {
	m, _ := logger.ParseMode(c.LogMode)
	return m
}

// fileView 設定檔輸出格式：duration 以字串表示
type fileView struct {
	DBPath        string `yaml:"db_path"`
	DataDir       string `yaml:"data_dir"`
	ReportDir     string `yaml:"report_dir"`
	ChartDir      string `yaml:"chart_dir"`
	CSVURL        string `yaml:"csv_url"`
	FetchTimeout  string `yaml:"fetch_timeout"`
	FontPath      string `yaml:"font_path"`
	Addr          string `yaml:"addr"`
	LogMode       string `yaml:"log_mode"`
	StrictNumbers bool   `yaml:"strict_numbers"`
	CacheTTL      string `yaml:"cache_ttl"`
}

// YAML 以設定檔格式輸出
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(fileView{
		DBPath:        c.DBPath,
		DataDir:       c.DataDir,
		ReportDir:     c.ReportDir,
		ChartDir:      c.ChartDir,
		CSVURL:        c.CSVURL,
		FetchTimeout:  c.FetchTimeout.String(),
		FontPath:      c.FontPath,
		Addr:          c.Addr,
		LogMode:       c.LogMode,
		StrictNumbers: c.StrictNumbers,
		CacheTTL:      c.CacheTTL.String(),
	})
}

// WriteFile 寫出設定檔；檔案已存在時回傳 Warn，不覆寫
func (c *Config) WriteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errs.Warnf("config file already exists: %s", path)
	}
	b, err := c.YAML()
	if err != nil {
		return errs.Wrap(err, "marshal config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(err, "create config dir")
		}
	}
	head := []byte("# lottolab configuration\n# env override: LOTTO_<KEY>, e.g. LOTTO_DB_PATH\n\n")
	if err := os.WriteFile(path, append(head, b...), 0o644); err != nil {
		return errs.Wrap(err, "write config")
	}
	return nil
}
