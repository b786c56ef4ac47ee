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

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

func goCmd(args ...string) *exec.Cmd {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

func cleanTestCache() error {
	if err := goCmd("clean", "-testcache").Run(); err != nil {
		return fmt.Errorf("go clean -testcache: %w", err)
	}
	return nil
}

// runTest 只印出每個套件的 ok / FAIL 行
func runTest() error {
	info.Println("running tests")
	if err := cleanTestCache(); err != nil {
		return err
	}
	return filtered([]string{"test", "./...", "-cover", "-count=1"}, func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			pass.Println(line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
			fail.Println(line)
		}
	})
}

// runTestDetail verbose 測試，略過沒有測試檔的套件
func runTestDetail() error {
	info.Println("running tests (detail)")
	if err := cleanTestCache(); err != nil {
		return err
	}
	return filtered([]string{"test", "./...", "-v", "-count=1"}, func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"), strings.HasPrefix(line, "--- PASS"):
			pass.Println(line)
		case strings.HasPrefix(line, "FAIL"), strings.HasPrefix(line, "--- FAIL"):
			fail.Println(line)
		default:
			fmt.Println(line)
		}
	})
}

// runCover 產出 build/cover.out 與 HTML 報告
func runCover() error {
	info.Println("running tests with coverage profile")
	if err := os.MkdirAll("build", 0o755); err != nil {
		return err
	}
	out := filepath.Join("build", "cover.out")
	if err := goCmd("test", "./...", "-count=1", "-coverprofile="+out).Run(); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	html := filepath.Join("build", "cover.html")
	if err := goCmd("tool", "cover", "-html="+out, "-o", html).Run(); err != nil {
		return fmt.Errorf("go tool cover: %w", err)
	}
	pass.Printf("coverage report: %s\n", html)
	return nil
}

// runBuild 編譯 build/lotto，版本取 git describe，沒有 git 時用日期
func runBuild() error {
	version := time.Now().Format("20060102")
	if b, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output(); err == nil {
		version = strings.TrimSpace(string(b))
	}
	out := filepath.Join("build", "lotto")
	ldflags := "-s -w -X github.com/zintix-labs/lottolab/cli.Version=" + version
	info.Printf("building %s (%s)\n", out, version)
	if err := goCmd("build", "-trimpath", "-ldflags", ldflags, "-o", out, "./cmd/lotto").Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	pass.Println("done")
	return nil
}

// filtered 合併 stdout / stderr 後逐行交給 fn
func filtered(args []string, fn func(line string)) error {
	cmd := exec.Command("go", args...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start go %s: %w", args[0], err)
	}
	sc := bufio.NewScanner(pipe)
	for sc.Scan() {
		fn(sc.Text())
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("go %s finished with errors", args[0])
	}
	return sc.Err()
}
