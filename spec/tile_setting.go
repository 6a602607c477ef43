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

// TileSetting 描述 tile 目錄（catalog）與類型平衡下限。
//
// Fields:
//   - Tiles: 有序、相異、非零的 tile 類型清單；排列順序即為生成時的決勝順序。
//   - MinPerType: 每一種 tile 在合法盤面上至少要出現的次數。
type TileSetting struct {
	Tiles      []TileID `yaml:"tiles"         json:"tiles"`
	MinPerType int      `yaml:"min_per_type"  json:"min_per_type"`
	initFlag   bool
}

// Init 檢查不合法的設定
func (ts *TileSetting) Init() error {
	// 檢查初始化旗標
	if ts.initFlag {
		return nil
	}
	if len(ts.Tiles) == 0 {
		return errs.NewFatal("empty tile catalog")
	}
	// 生成規則（run-length + cross-column）最多同時排除 2 個候選，
	// 目錄至少要有 3 種 tile 才能保證免回溯。
	if len(ts.Tiles) < 3 {
		return errs.NewFatal(fmt.Sprintf("tile catalog needs >= 3 types, got %d", len(ts.Tiles)))
	}
	seen := make(map[TileID]struct{}, len(ts.Tiles))
	for _, t := range ts.Tiles {
		if t == 0 {
			return errs.NewFatal("tile id 0 is reserved for empty cells")
		}
		if _, ok := seen[t]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate tile id: %d", t))
		}
		seen[t] = struct{}{}
	}
	if ts.MinPerType < 0 {
		return errs.NewFatal("min_per_type must be >= 0")
	}
	ts.initFlag = true
	return nil
}
