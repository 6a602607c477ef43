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

package matchlab

import (
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/board"
	"github.com/zintix-labs/matchlab/sdk/core"
	"github.com/zintix-labs/matchlab/sdk/reel"
	"github.com/zintix-labs/matchlab/sdk/solver"
	"github.com/zintix-labs/matchlab/sdk/validate"
	"github.com/zintix-labs/matchlab/spec"
)

// BoardSession 是「一個盤面尺寸」的完整可玩單位：
// 固定的輪帶組 + 驗證過的 stop-offset 池 + 求解器。
//
// 輪帶與池在建立時算好之後不再改變；Spin 只做抽樣與具現化，
// 所以同一個 session 可以被同一台 Machine 重複使用整個生命週期。
//
// 建立可能失敗的點都在這裡集中發生（fail-fast）：
// 設定不可行（ConfigurationError）直接回傳 Fatal，不會建出半個 session。
type BoardSession struct {
	gridSize int
	strips   [][]int16
	pool     *validate.Pool
	solv     *solver.Solver
}

// newBoardSession 依設定建立指定邊長的 session。
//
// 流程：
//  1. reel.StripBuilder 生成 gridSize 條輪帶（決定性，與 RNG 無關）。
//  2. validate.BuildPool 以 rejection sampling 收集合法 offset 向量（消耗 c 的隨機流）。
//  3. 掛上共用的 Solver。
//
// 池收不到任何向量時不是錯誤：session 照常建立，Degraded() 回報降級，
// 由呼叫端決定告警策略。
func newBoardSession(ps *spec.PuzzleSetting, gridSize int, c *core.Core, solv *solver.Solver) (*BoardSession, error) {
	b, err := reel.NewStripBuilder(
		ps.TileSetting.Tiles,
		gridSize,
		ps.BoardSetting.ColumnLength,
		ps.TileSetting.MinPerType,
	)
	if err != nil {
		return nil, errs.Wrap(err, "build strips failed")
	}
	strips := b.BuildAll(gridSize)

	v := validate.NewValidator(strips, gridSize, ps.TileSetting.Tiles, ps.TileSetting.MinPerType)
	pool := validate.BuildPool(v, c, ps.PoolSetting.PoolSize, ps.PoolSetting.MaxAttempts)

	return &BoardSession{
		gridSize: gridSize,
		strips:   strips,
		pool:     pool,
		solv:     solv,
	}, nil
}

// SampleOffsets 從池中有放回地抽一個合法 offset 向量。
// 回傳池內部切片，呼叫端不得修改。
func (s *BoardSession) SampleOffsets(c *core.Core) []int {
	return s.pool.Sample(c)
}

// Materialize 以 offset 向量具現化盤面到 dst（零配置熱路徑）。
func (s *BoardSession) Materialize(dst *board.Grid, offsets []int) {
	board.MaterializeInto(dst, s.strips, offsets)
}

// TileAt 單格 O(1) 查詢：不具現化盤面，直接以 modulo 取輪帶格。
// 座標或行數超界會 panic（index error 是呼叫端 bug，不是執行期錯誤）。
func (s *BoardSession) TileAt(offsets []int, col, row int) int16 {
	if col < 0 || col >= s.gridSize || row < 0 || row >= s.gridSize {
		panic("matchlab: cell out of range")
	}
	return board.TileAt(s.strips, offsets[col], col, row)
}

// Solve 計算盤面離 match 的最少交換步數。
func (s *BoardSession) Solve(g board.Grid) solver.Result {
	return s.solv.Solve(g)
}

// GridSize 回傳 session 的盤面邊長。
func (s *BoardSession) GridSize() int { return s.gridSize }

// Degraded 回報池是否退化為全零 fallback。
func (s *BoardSession) Degraded() bool { return s.pool.Degraded }

// PoolSize 回傳池內合法向量數（觀測用）。
func (s *BoardSession) PoolSize() int { return s.pool.Size() }

// Strips 回傳輪帶組；唯讀，供除錯與測試檢視。
func (s *BoardSession) Strips() [][]int16 { return s.strips }
