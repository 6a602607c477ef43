package spec

import (
	"fmt"

	"github.com/zintix-labs/matchlab/errs"
)

// PuzzleSetting 包含啟動一個機台所需的所有高階設定。
type PuzzleSetting struct {
	GameName      string        `yaml:"game_name"       json:"game_name"`
	GameID        GID           `yaml:"game_id"         json:"game_id"`
	TileSetting   TileSetting   `yaml:"tile_setting"    json:"tile_setting"`
	BoardSetting  BoardSetting  `yaml:"board_setting"   json:"board_setting"`
	PoolSetting   PoolSetting   `yaml:"pool_setting"    json:"pool_setting"`
	SolverSetting SolverSetting `yaml:"solver_setting"  json:"solver_setting"`
}

// init
func (ps *PuzzleSetting) init() error {
	if err := ps.TileSetting.Init(); err != nil {
		return err
	}
	if err := ps.BoardSetting.Init(); err != nil {
		return err
	}
	if err := ps.PoolSetting.Init(); err != nil {
		return err
	}
	if err := ps.SolverSetting.Init(); err != nil {
		return err
	}
	return ps.valid()
}

// valid 執行跨子設定的可行性檢查；任何違反都是組裝期錯誤，
// 必須在任何生成工作開始前擋下。
func (ps *PuzzleSetting) valid() error {
	if ps.GameName == "" {
		return errs.NewFatal("game_name required")
	}

	// 類型平衡可行性：|tiles| x min_per_type 不能超過最小盤面的格子數，
	// 否則平衡不變量在數學上就不可能滿足。
	need := len(ps.TileSetting.Tiles) * ps.TileSetting.MinPerType
	cap := ps.BoardSetting.MinGridSize * ps.BoardSetting.MinGridSize
	if need > cap {
		return errs.NewFatal(fmt.Sprintf(
			"game_name: %s err: %d tile types x min_per_type %d exceeds %dx%d board",
			ps.GameName, len(ps.TileSetting.Tiles), ps.TileSetting.MinPerType,
			ps.BoardSetting.MinGridSize, ps.BoardSetting.MinGridSize))
	}

	return nil
}
