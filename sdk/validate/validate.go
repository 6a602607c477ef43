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

// Package validate 驗證 stop-offset 組合並建置合法 offset 池。
//
// 驗證永遠直接對 (輪帶組, offset 向量) 計算——絕不對已具現化的盤面驗證，
// 那個盤面可能已經過期；合法性只取決於這一對輸入。
package validate

import (
	"github.com/zintix-labs/matchlab/spec"
)

// Validator 是純 predicate：IsValid 無任何副作用。
//
// 結構體只為了預處理（tile 索引表、scratch buffer），熱路徑零配置。
type Validator struct {
	strips   [][]int16
	gridSize int
	minPer   int

	tileIdx map[int16]int // tile id -> 目錄索引
	counts  []int         // 平衡統計 scratch
	norm    []int         // 正規化 offset scratch
}

// NewValidator 以一組輪帶與平衡參數建立驗證器。
func NewValidator(strips [][]int16, gridSize int, tiles []spec.TileID, minPerType int) *Validator {
	idx := make(map[int16]int, len(tiles))
	for i, t := range tiles {
		idx[int16(t)] = i
	}
	return &Validator{
		strips:   strips,
		gridSize: gridSize,
		minPer:   minPerType,
		tileIdx:  idx,
		counts:   make([]int, len(tiles)),
		norm:     make([]int, gridSize),
	}
}

// IsValid 回報 offset 向量是否同時通過免 match 檢查與類型平衡檢查。
func (v *Validator) IsValid(offsets []int) bool {
	v.normalize(offsets)
	return v.matchFree() && v.balanced()
}

// Normalize 把 offset 向量每分量正規化到 [0, len(strip))，寫入 dst。
// 兩個 offset 向量若逐分量模輪帶長度同餘，即視為等價。
func (v *Validator) Normalize(offsets []int, dst []int) {
	for col := 0; col < v.gridSize; col++ {
		n := len(v.strips[col])
		dst[col] = ((offsets[col] % n) + n) % n
	}
}

func (v *Validator) normalize(offsets []int) {
	v.Normalize(offsets, v.norm)
}

// cell 以 modulo 查表取得虛擬盤面的 (col,row)；前置條件：offsets 已正規化。
func (v *Validator) cell(col, row int) int16 {
	strip := v.strips[col]
	return strip[(v.norm[col]+row)%len(strip)]
}

// matchFree 掃描所有橫向與縱向相鄰三元組，任何一組三格同值即拒絕。
func (v *Validator) matchFree() bool {
	n := v.gridSize
	// 橫向三元組
	for row := 0; row < n; row++ {
		for col := 0; col+2 < n; col++ {
			a := v.cell(col, row)
			if a == v.cell(col+1, row) && a == v.cell(col+2, row) {
				return false
			}
		}
	}
	// 縱向三元組
	for col := 0; col < n; col++ {
		for row := 0; row+2 < n; row++ {
			a := v.cell(col, row)
			if a == v.cell(col, row+1) && a == v.cell(col, row+2) {
				return false
			}
		}
	}
	return true
}

// balanced 統計虛擬盤面上各 tile 的出現次數，任一類低於下限即拒絕。
func (v *Validator) balanced() bool {
	for i := range v.counts {
		v.counts[i] = 0
	}
	n := v.gridSize
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			if i, ok := v.tileIdx[v.cell(col, row)]; ok {
				v.counts[i]++
			}
		}
	}
	for _, c := range v.counts {
		if c < v.minPer {
			return false
		}
	}
	return true
}

// GridSize 回傳驗證器繫結的盤面邊長。
func (v *Validator) GridSize() int { return v.gridSize }

// StripLen 回傳第 col 行輪帶長度。
func (v *Validator) StripLen(col int) int { return len(v.strips[col]) }
