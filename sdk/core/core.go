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

// Package core 提供 matchlab 的亂數核心（PRNG 合約 + 預設實作 + 常用取樣工具）。
//
// 可重現性是本包的核心合約：offset pool 的抽樣、session 盤面邊長的抽選、
// 每次 spin 的 reel stop 選擇全部只透過 Core 取亂數；
// 同一個 seed + 同一份設定必須產生同一串盤面。
package core

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 要求實作同時提供 4 個方法（Uint64 / Float64 / UintN / IntN）而不是只要求 Uint64：
// bounded 生成（UintN/IntN）與浮點精度的取捨應由 PRNG 自己決定，
// 不同實作有不同的 fast path（32-bit 原生輸出、乘法高位拒絕採樣等）。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：在同一個實作與同一個版本下，New(seed) 必須是「決定性」的——
	// 相同的 seed 必須產生相同的初始內部狀態與輸出序列。
	//
	// seed 的生命週期由 Matchlab 統一管理：外部未提供時由 crypto/rand 產生並保存，
	// 後續的 Machine/Simulator 派生子 seed 都走固定算法，因此這裡永遠不需要
	// 「不帶 seed 的 New()」。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供常用取樣與工具方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
// 熱路徑中只使用哨兵值回傳
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	idx := c.IntN(len(src))
	return src[idx]
}

// FillOffsets 把 dst 的每個分量填入 [0,n) 的獨立均勻亂數。
//
// 這是 stop-offset pool 建池的熱路徑：一次抽一整個 offset 向量，
// 由呼叫端重用 dst 避免配置。
func (c *Core) FillOffsets(dst []int, n int) {
	for i := range dst {
		dst[i] = c.IntN(n)
	}
}

// ShuffleInts 使用 Fisher-Yates 演算法對 []int 進行就地隨機重排。
//
// 保證 N! 種排列機率嚴格相等；O(N) 時間、零配置。
func (c *Core) ShuffleInts(src []int) {
	if len(src) <= 1 {
		return
	}

	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}
