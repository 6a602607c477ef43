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

// Package ops 提供盤面的 cascade 輔助操作：消除、掉落、補盤。
//
// 這些操作服務「消除後續盤」的宿主端流程：玩家交換形成 3 連後，
// 宿主消除該 3 連（Clear）、讓上方 tile 下落（Gravity）、再從該行輪帶
// 續讀補滿空位（Refill）。引擎核心只負責出盤與求解；cascade 是宿主
// 選用的延伸，因此全部以「原地修改 + 呼叫端自備 buffer」的形式提供。
//
// 盤面佈局與 board.Grid 一致：row-major、cells[row*size+col]、0 = 空格。
package ops

// Clear 消除標記位置的 tile(改為0)
//
//   - cells: 盤面數據 (將被原地修改)
//   - hits: 消除位置 (row-major index；這些位置會被標記為 0)
func Clear(cells []int16, hits []int) {
	for _, v := range hits {
		if v >= 0 && v < len(cells) { // 簡單防禦
			cells[v] = 0
		}
	}
}
