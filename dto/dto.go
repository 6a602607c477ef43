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

package dto

import (
	"github.com/zintix-labs/matchlab/corefmt"
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/buf"
	"github.com/zintix-labs/matchlab/spec"
)

// SpinResult 為對外輸出的 Spin 結果序列化結構。
//
// 與 buf.SpinResult 的差別：這裡的所有切片都是深拷貝。
// buf 層是機台的可重用緩衝，下一次 Spin 會覆寫內容；
// DTO 一旦產生就與機台脫鉤，可安全地跨 goroutine 序列化或暫存。
type SpinResult struct {
	GameName string   `json:"game"`   // 遊戲名稱
	GameID   spec.GID `json:"gameid"` // 遊戲編號
	Session  int      `json:"session"`

	GridSize int     `json:"size"`    // 盤面邊長
	Offsets  []int   `json:"offsets"` // 本次 stop-offset 向量
	Cells    []int16 `json:"cells"`   // 盤面 (row-major)

	Degraded bool `json:"degraded,omitempty"` // 盤面來自降級池

	Solve *SolveResult `json:"solve,omitempty"` // 求解結果（未求解時省略）

	IsGameEnd bool      `json:"isend"`      // 遊戲結束旗標
	State     SpinState `json:"spin_state"` // 遊戲狀態
}

// SolveResult 求解輸出。Found=false 時 Moves 為哨兵值 -1，
// 表示界限內無解，呼叫端不應把它當步數使用。
type SolveResult struct {
	Found    bool `json:"found"`
	Moves    int  `json:"moves"`
	Dequeued int  `json:"dequeued,omitempty"`
}

type SpinState struct {
	StartCoreSnapB64U string `json:"start_b64u"` // 必回
	AfterCoreSnapB64U string `json:"after_b64u"` // 必回
}

func NewSpinResultDTO(sr *buf.SpinResult) (SpinResult, error) {
	if sr == nil {
		return SpinResult{}, errs.NewWarn("spin result is nil")
	}

	dto := SpinResult{
		GameName:  sr.GameName,
		GameID:    sr.GameID,
		Session:   sr.Session,
		GridSize:  sr.GridSize,
		Offsets:   append([]int(nil), sr.Offsets...),
		Cells:     append([]int16(nil), sr.Cells...),
		Degraded:  sr.Degraded,
		IsGameEnd: sr.IsGameEnd,
		State: SpinState{
			StartCoreSnapB64U: corefmt.EncodeBase64URL(sr.State.StartCoreSnap),
			AfterCoreSnapB64U: corefmt.EncodeBase64URL(sr.State.AfterCoreSnap),
		},
	}

	if sr.Solved {
		dto.Solve = &SolveResult{
			Found:    sr.Found,
			Moves:    sr.Moves,
			Dequeued: sr.Dequeued,
		}
	}

	return dto, nil
}
