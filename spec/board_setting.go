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

package spec

import (
	"fmt"

	"github.com/zintix-labs/matchlab/errs"
)

// BoardSetting 描述盤面幾何的設定。
//
// Fields:
//   - GridSizes: 可抽選的盤面邊長清單；每次開新 board session 會從中均勻抽一個。
//   - ColumnLength: 每一行的輪帶（repeating strip）長度，週期性讀取。
//
// 衍生欄位（Init 後可用）：
//   - MaxGridSize / MinGridSize: 快取的邊長極值，供可行性檢查使用。
type BoardSetting struct {
	GridSizes    []int `yaml:"grid_sizes"     json:"grid_sizes"`
	ColumnLength int   `yaml:"column_length"  json:"column_length"`
	MaxGridSize  int   `yaml:"-"              json:"-"`
	MinGridSize  int   `yaml:"-"              json:"-"`
	initFlag     bool
}

// Init 檢查不合法的設定
func (bs *BoardSetting) Init() error {
	// 檢查初始化旗標
	if bs.initFlag {
		return nil
	}
	if len(bs.GridSizes) == 0 {
		return errs.NewFatal("empty grid_sizes")
	}
	bs.MaxGridSize = bs.GridSizes[0]
	bs.MinGridSize = bs.GridSizes[0]
	for _, n := range bs.GridSizes {
		if n < 3 {
			return errs.NewFatal(fmt.Sprintf("grid size must be >= 3, got %d", n))
		}
		if n > bs.MaxGridSize {
			bs.MaxGridSize = n
		}
		if n < bs.MinGridSize {
			bs.MinGridSize = n
		}
	}
	// 一整行可見列必須落在單一週期內，wrap 運算才會定義良好。
	if bs.ColumnLength < 2*bs.MaxGridSize {
		return errs.NewFatal(fmt.Sprintf("column_length %d < 2 x max grid size %d", bs.ColumnLength, bs.MaxGridSize))
	}
	bs.initFlag = true
	return nil
}
