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

// Package solver 以 BFS 計算「離 match 最少幾步交換」。
//
// 狀態空間：盤面內容本身。一步 = 交換一對正交相鄰格。BFS 依步數
// 非遞減展開，第一個通過 goal test（含 3 連線）的出隊狀態即為最佳解。
//
// 去重以盤面內容的 canonical key 為準（與步數無關）：同一個盤面不論
// 經由哪條交換路徑到達都只展開一次，這讓搜尋是真正的 shortest-path BFS
// 而不是指數樹走訪。
//
// 每次 Solve 自備 queue 與 visited set，無共享狀態；
// 不同盤面的並行求解天生安全，不需要任何鎖。
package solver

import (
	"github.com/zintix-labs/matchlab/sdk/board"
)

// NoSolution 表示在界限內找不到能產生 match 的交換序列。
//
// 這不是錯誤：有些盤面真的離 match 很多步，或者上限設得保守。
// 呼叫端應把它當作「無法判定步數」的哨兵值呈現，而不是 crash。
const NoSolution = -1

// Result 單次求解的完整結果。
type Result struct {
	Moves    int  // 最少交換步數；找不到時為 NoSolution
	Found    bool // 是否在界限內找到解
	Dequeued int  // 實際出隊狀態數（觀測用）
	Capped   bool // 是否因觸頂而中止
}

// Solver 只攜帶搜尋上限；本身無狀態，可安全重用。
type Solver struct {
	maxDequeue int
}

// New 以出隊上限建立 Solver。maxDequeue <= 0 時視為不設上限。
func New(maxDequeue int) *Solver {
	return &Solver{maxDequeue: maxDequeue}
}

type state struct {
	cells []int16
	moves int
}

// Solve 回傳讓盤面出現至少一條 3 連線所需的最少相鄰交換數。
//
// 語意細節：
//   - 已含 match 的盤面回傳 0。
//   - 交換無方向性：(a,b) 與 (b,a) 是同一步，展開時只生成一次。
//   - 交換兩個同值格不改變盤面，直接跳過（去重也會擋，但提前跳過更便宜）。
//   - 輸入盤面不會被修改；所有展開都作用在快照上。
func (s *Solver) Solve(g board.Grid) Result {
	res := Result{Moves: NoSolution}

	start := g.Clone()
	visited := map[string]struct{}{start.Key(): {}}
	queue := []state{{cells: start.Cells, moves: 0}}

	n := g.Size
	scratch := board.Grid{Size: n}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		res.Dequeued++

		scratch.Cells = cur.cells
		if scratch.HasRun() {
			res.Moves = cur.moves
			res.Found = true
			return res
		}

		if s.maxDequeue > 0 && res.Dequeued >= s.maxDequeue {
			res.Capped = true
			return res
		}

		// 展開：所有橫向相鄰對與縱向相鄰對各一個子狀態
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				i := row*n + col
				if col+1 < n {
					queue = s.expand(queue, visited, cur, i, i+1)
				}
				if row+1 < n {
					queue = s.expand(queue, visited, cur, i, i+n)
				}
			}
		}
	}
	return res
}

// expand 生成一個「交換 (i,j) 後」的子狀態；同值交換與已訪盤面直接略過。
func (s *Solver) expand(queue []state, visited map[string]struct{}, cur state, i, j int) []state {
	if cur.cells[i] == cur.cells[j] {
		return queue
	}
	next := make([]int16, len(cur.cells))
	copy(next, cur.cells)
	next[i], next[j] = next[j], next[i]

	key := cellsKey(next)
	if _, seen := visited[key]; seen {
		return queue
	}
	visited[key] = struct{}{}
	return append(queue, state{cells: next, moves: cur.moves + 1})
}

func cellsKey(cells []int16) string {
	b := make([]byte, 2*len(cells))
	for i, v := range cells {
		b[2*i] = byte(v)
		b[2*i+1] = byte(uint16(v) >> 8)
	}
	return string(b)
}
