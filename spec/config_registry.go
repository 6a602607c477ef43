package spec

import (
	"encoding/json"

	"github.com/zintix-labs/matchlab/errs"
	"gopkg.in/yaml.v3"
)

// GetPuzzleSettingByYAML
// 會讀取 YAML 設定、初始化各子設定並執行基本檢查後回傳。
func GetPuzzleSettingByYAML(data []byte) (*PuzzleSetting, error) {
	ps := &PuzzleSetting{}
	if err := yaml.Unmarshal(data, ps); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}

	// 設定檔初始化
	if err := ps.init(); err != nil {
		return nil, errs.Wrap(err, "puzzle setting initialized err")
	}

	return ps, nil
}

// GetPuzzleSettingByJSON
// 會讀取 Json 設定、初始化各子設定並執行基本檢查後回傳
func GetPuzzleSettingByJSON(data []byte) (*PuzzleSetting, error) {
	ps := &PuzzleSetting{}
	if err := json.Unmarshal(data, ps); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}

	// 設定檔初始化
	if err := ps.init(); err != nil {
		return nil, errs.Wrap(err, "puzzle setting initialized err")
	}

	return ps, nil
}
