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

// Package reel 生成每一行的重複輪帶（column sequence / reel strip）。
//
// 生成策略是「逐格決定、免回溯」：每一格先依規則剔除不可用的 tile，
// 再從剩餘候選中取用量最少者（同量以目錄順序決勝）。規則最多同時剔除
// 2 個候選，而設定層保證目錄至少 3 種 tile，因此永遠有候選可挑。
//
// 注意：行內規則只是降低下游 offset 驗證的拒絕率的啟發式——
// 它「不」保證任意 offset 組合免 match；免 match 不變量由 validate 包把關。
package reel

import (
	"fmt"

	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/spec"
)

// StripBuilder 為單一 board session 建生所有行的輪帶。
//
// 生成是決定性的：同一份 tile 目錄 + 同一個盤面邊長必得同一組輪帶。
// 亂數只存在於下游（offset pool 抽樣與 spin 的 reel stop 選擇）。
type StripBuilder struct {
	tiles        []spec.TileID
	gridSize     int
	columnLength int

	// per-column 重用 scratch
	counts []int  // 各 tile 在本行的用量
	banned []bool // 本格被剔除的 tile
}

// NewStripBuilder 建立輪帶生成器，並立即執行可行性檢查（fail fast）。
//
// 錯誤條件（全部為組裝期 Fatal，在任何生成工作開始前回報）：
//   - tile 目錄為空
//   - columnLength < 2 x gridSize
//   - len(tiles) x minPerType > gridSize^2（平衡不變量在數學上不可能滿足）
func NewStripBuilder(tiles []spec.TileID, gridSize, columnLength, minPerType int) (*StripBuilder, error) {
	if len(tiles) == 0 {
		return nil, errs.NewFatal("reel: empty tile catalog")
	}
	if columnLength < 2*gridSize {
		return nil, errs.Fatalf("reel: column length %d < 2 x grid size %d", columnLength, gridSize)
	}
	if len(tiles)*minPerType > gridSize*gridSize {
		return nil, errs.Fatalf("reel: %d tile types x min %d exceeds %dx%d board",
			len(tiles), minPerType, gridSize, gridSize)
	}
	return &StripBuilder{
		tiles:        tiles,
		gridSize:     gridSize,
		columnLength: columnLength,
		counts:       make([]int, len(tiles)),
		banned:       make([]bool, len(tiles)),
	}, nil
}

// BuildStrip 生成第 col 行的輪帶；prev 為已生成的左側各行（prev[i] 即第 i 行）。
//
// 每一格依序套用三條規則：
//  1. run-length：本行前兩格相等時，剔除該值（輪帶自身不得藏 3 連直）。
//  2. cross-column：僅前 gridSize 格（初始可見視窗）生效——左鄰行在
//     本列收尾處已有兩格相等時，剔除該值（避免在初始視窗種下必然的橫向 3 連）。
//  3. balance：剩餘候選取本行用量最少者，同量以目錄順序決勝。
func (b *StripBuilder) BuildStrip(col int, prev [][]int16) []int16 {
	strip := make([]int16, b.columnLength)
	for i := range b.counts {
		b.counts[i] = 0
	}

	for i := 0; i < b.columnLength; i++ {
		for t := range b.banned {
			b.banned[t] = false
		}

		// run-length rule
		if i >= 2 && strip[i-1] == strip[i-2] {
			b.ban(strip[i-1])
		}

		// cross-column rule：只看初始視窗與左鄰行
		if col > 0 && i >= 1 && i < b.gridSize {
			left := prev[col-1]
			if left[i] == left[i-1] {
				b.ban(left[i])
			}
		}

		// balance rule
		pick := -1
		for t := range b.tiles {
			if b.banned[t] {
				continue
			}
			if pick < 0 || b.counts[t] < b.counts[pick] {
				pick = t
			}
		}
		if pick < 0 {
			// 規則最多剔除 2 個候選且目錄 >= 3 種 tile，建構時已檢查過
			panic(fmt.Sprintf("reel: no candidate at col %d cell %d", col, i))
		}
		strip[i] = int16(b.tiles[pick])
		b.counts[pick]++
	}
	return strip
}

// BuildAll 依序生成 cols 行輪帶（左到右，讓 cross-column 規則可見左鄰行）。
func (b *StripBuilder) BuildAll(cols int) [][]int16 {
	strips := make([][]int16, 0, cols)
	for col := 0; col < cols; col++ {
		strips = append(strips, b.BuildStrip(col, strips))
	}
	return strips
}

func (b *StripBuilder) ban(v int16) {
	for t, tile := range b.tiles {
		if int16(tile) == v {
			b.banned[t] = true
			return
		}
	}
}
