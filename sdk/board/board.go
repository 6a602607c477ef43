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

// Package board 提供盤面值型別與「輪帶 + offset -> 盤面」的具現化（materialize）。
//
// 盤面採 row-major 一維 []int16（idx = row*size + col），與整個 matchlab
// 熱路徑共用同一種佈局；具現化規則為：
//
//	tileAt(col, row) = strip[col][(offset[col] + row) % len(strip[col])]
//
// Materialize / TileAt 都是純函數：相同輸入必得相同輸出，無任何副作用。
package board

import (
	"fmt"

	"github.com/zintix-labs/matchlab/spec"
)

// Grid 一個已具現化的正方形盤面。
//
// 值語意：Grid 只是 (Size, Cells) 的薄包裝，Clone 之後兩個盤面完全獨立。
type Grid struct {
	Size  int
	Cells []int16
}

// New 建立全空（全 0）盤面。
func New(size int) Grid {
	return Grid{Size: size, Cells: make([]int16, size*size)}
}

// At 回傳 (col,row) 的 tile。
// 越界屬於合約違反（IndexError），直接 panic，不作為可恢復錯誤。
func (g Grid) At(col, row int) int16 {
	if col < 0 || col >= g.Size || row < 0 || row >= g.Size {
		panic(fmt.Sprintf("board: cell (%d,%d) out of range for %dx%d grid", col, row, g.Size, g.Size))
	}
	return g.Cells[row*g.Size+col]
}

// Set 寫入 (col,row)；越界同樣 panic。
func (g Grid) Set(col, row int, v int16) {
	if col < 0 || col >= g.Size || row < 0 || row >= g.Size {
		panic(fmt.Sprintf("board: cell (%d,%d) out of range for %dx%d grid", col, row, g.Size, g.Size))
	}
	g.Cells[row*g.Size+col] = v
}

// Clone 深拷貝盤面。solver 的狀態展開與 dto 輸出都依賴這個獨立性。
func (g Grid) Clone() Grid {
	c := make([]int16, len(g.Cells))
	copy(c, g.Cells)
	return Grid{Size: g.Size, Cells: c}
}

// Key 回傳盤面內容的 canonical 序列化（2 bytes/cell, little-endian）。
//
// 只編碼格子內容、不含步數；solver 的 visited set 用它去重，
// 同一個盤面不論經由哪條交換路徑到達都只展開一次。
func (g Grid) Key() string {
	b := make([]byte, 2*len(g.Cells))
	for i, v := range g.Cells {
		b[2*i] = byte(v)
		b[2*i+1] = byte(uint16(v) >> 8)
	}
	return string(b)
}

// HasRun 回報盤面是否含有任一條 3 連線（橫向或縱向）。
//
// 這同時是 solver 的 goal test 與 host 層 match 檢查的基礎掃描。
func (g Grid) HasRun() bool {
	n := g.Size
	s := g.Cells
	_ = s[n*n-1] // BCE hint

	// 橫向
	for row := 0; row < n; row++ {
		base := row * n
		for col := 0; col+2 < n; col++ {
			v := s[base+col]
			if v == s[base+col+1] && v == s[base+col+2] {
				return true
			}
		}
	}
	// 縱向
	for col := 0; col < n; col++ {
		for row := 0; row+2 < n; row++ {
			v := s[row*n+col]
			if v == s[(row+1)*n+col] && v == s[(row+2)*n+col] {
				return true
			}
		}
	}
	return false
}

// CountTiles 依目錄順序統計各 tile 出現次數，寫入重用的 dst（len(dst) == len(tiles)）。
func (g Grid) CountTiles(tiles []spec.TileID, dst []int) {
	for i := range dst {
		dst[i] = 0
	}
	for _, v := range g.Cells {
		for i, t := range tiles {
			if v == t {
				dst[i]++
				break
			}
		}
	}
}

// TileAt 單格查詢：不建整個盤面，直接以 modulo 讀取輪帶。
//
// 供仍在「捲動中」的行使用——動畫層只需要一個視窗的格子。
// 越界的 col/row 視為合約違反，panic；offset 任意整數皆合法（會正規化）。
func TileAt(strips [][]int16, offset int, col, row int) int16 {
	if col < 0 || col >= len(strips) {
		panic(fmt.Sprintf("board: column %d out of range [0,%d)", col, len(strips)))
	}
	strip := strips[col]
	n := len(strip)
	if row < 0 || row >= n {
		panic(fmt.Sprintf("board: row %d out of range [0,%d)", row, n))
	}
	idx := ((offset+row)%n + n) % n
	return strip[idx]
}

// Materialize 以 (輪帶組, offset 向量) 具現化一個 size x size 盤面。
//
// 純函數、決定性：offset 向量每分量對 len(strip) 取模後讀取。
func Materialize(strips [][]int16, offsets []int, size int) Grid {
	g := New(size)
	MaterializeInto(&g, strips, offsets)
	return g
}

// MaterializeInto 與 Materialize 相同，但寫入重用的盤面 buffer（熱路徑零配置）。
func MaterializeInto(dst *Grid, strips [][]int16, offsets []int) {
	size := dst.Size
	if len(strips) < size || len(offsets) < size {
		panic(fmt.Sprintf("board: %d strips / %d offsets for %dx%d grid", len(strips), len(offsets), size, size))
	}
	s := dst.Cells
	_ = s[size*size-1] // BCE hint

	for col := 0; col < size; col++ {
		strip := strips[col]
		length := len(strip)
		off := ((offsets[col] % length) + length) % length
		for row := 0; row < size; row++ {
			s[row*size+col] = strip[(off+row)%length]
		}
	}
}
