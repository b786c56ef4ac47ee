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

import "github.com/fatih/color"

// 輸出配色；非 TTY（例如 CI log）時 color 會自動關閉
var (
	info = color.New(color.FgBlue)
	pass = color.New(color.FgGreen)
	warn = color.New(color.FgYellow)
	fail = color.New(color.FgRed, color.Bold)
)
