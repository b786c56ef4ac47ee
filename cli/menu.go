package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

type menuItem struct {
	key   string
	label string
	run   func(ctx context.Context) error
}

func (a *App) menuItems() []menuItem {
	return []menuItem{
		{"1", "下載最新 CSV 資料", a.Fetch},
		{"2", "匯入 CSV 到資料庫", func(ctx context.Context) error { return a.Import(ctx, "") }},
		{"3", "執行統計摘要分析", func(ctx context.Context) error { return a.Summary(ctx, "table") }},
		{"4", "產出圖表", func(ctx context.Context) error { _, err := a.Charts(ctx); return err }},
		{"5", "產出 PDF 報告", a.Report},
		{"6", "啟動 Web 介面", a.Serve},
		{"7", "產出每週號碼統計 PDF 報表", a.Weekly},
	}
}

// Menu 互動選單。
// 錯誤只印出訊息後回到選單；輸入 0 或讀到 EOF 時結束。
func (a *App) Menu(ctx context.Context) error {
	items := a.menuItems()
	sc := bufio.NewScanner(a.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		a.printMenu(items)
		if !sc.Scan() {
			a.printf("\n")
			return sc.Err()
		}
		choice := strings.TrimSpace(sc.Text())
		if choice == "0" {
			a.printf("感謝使用，再見！\n")
			return nil
		}
		it, ok := pick(items, choice)
		if !ok {
			a.printf("無效選項，請重新輸入\n")
			continue
		}
		if err := it.run(ctx); err != nil {
			a.printf("%s失敗：%s\n", it.label, describe(err))
		}
	}
}

func (a *App) printMenu(items []menuItem) {
	var b strings.Builder
	b.WriteString("\n今彩539 分析系統 主選單\n")
	b.WriteString(strings.Repeat("=", 30) + "\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%s. %s\n", it.key, it.label)
	}
	b.WriteString("0. 離開\n")
	b.WriteString(strings.Repeat("=", 30) + "\n")
	b.WriteString("請輸入選項：")
	a.printf("%s", b.String())
}

func pick(items []menuItem, key string) (menuItem, bool) {
	for _, it := range items {
		if it.key == key {
			return it, true
		}
	}
	return menuItem{}, false
}
