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

package validate

import (
	"github.com/zintix-labs/matchlab/sdk/core"
)

// Pool 是一個 board session 的合法 stop-offset 池。
//
// 池內每個向量都已通過 Validator（免 match + 平衡），且已去重
// （以正規化後的向量為準）。每次 spin 從池中「有放回」均勻抽一個。
type Pool struct {
	Offsets [][]int

	// Degraded 表示建池在 maxAttempts 內一個向量都收不到、
	// 退回全零 offset。品質降級但不致命；呼叫端可考慮放寬條件重建。
	Degraded bool

	// Attempts 紀錄實際抽樣次數（觀測用）。
	Attempts int
}

// BuildPool 以 rejection sampling 建池：
// 重複抽均勻隨機的 offset 向量（各分量獨立於 [0, len(strip))），
// 通過驗證且未重複者收入池中，直到收滿 target 或抽滿 maxAttempts。
//
// 選擇抽樣而非窮舉：組合數為 columnLength^gridSize，窮舉不可行；
// 合法組合實務上夠常見，抽樣收斂很快。
//
// 失敗策略：零命中時以全零向量墊底（degraded 盤面好過 crash），
// 並以 Degraded 旗標回報，由上層決定是否告警或重建。
func BuildPool(v *Validator, c *core.Core, target, maxAttempts int) *Pool {
	p := &Pool{Offsets: make([][]int, 0, target)}

	n := v.GridSize()
	draw := make([]int, n)
	seen := make(map[string]struct{}, target)

	for p.Attempts = 0; p.Attempts < maxAttempts && len(p.Offsets) < target; p.Attempts++ {
		for col := 0; col < n; col++ {
			draw[col] = c.IntN(v.StripLen(col))
		}
		if !v.IsValid(draw) {
			continue
		}
		key := offsetKey(draw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		p.Offsets = append(p.Offsets, append([]int(nil), draw...))
	}

	if len(p.Offsets) == 0 {
		p.Offsets = append(p.Offsets, make([]int, n))
		p.Degraded = true
	}
	return p
}

// Sample 有放回地均勻抽一個 offset 向量。
// 回傳池內部的 slice；呼叫端不得修改（materialize 會另行拷貝格子內容）。
func (p *Pool) Sample(c *core.Core) []int {
	return p.Offsets[c.IntN(len(p.Offsets))]
}

// Size 回傳池內向量數。
func (p *Pool) Size() int { return len(p.Offsets) }

// offsetKey 產生去重用的 canonical key；offsets 呼叫前已在 IsValid 正規化過，
// 這裡直接以分量序列編碼。
func offsetKey(offsets []int) string {
	b := make([]byte, 0, 2*len(offsets))
	for _, v := range offsets {
		b = append(b, byte(v), byte(v>>8))
	}
	return string(b)
}
