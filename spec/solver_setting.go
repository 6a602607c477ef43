package spec

import "github.com/zintix-labs/matchlab/errs"

const defaultMaxDequeue = 200_000

// SolverSetting 描述最小交換數搜尋的上限。
//
// Fields:
//   - MaxDequeue: BFS 取出狀態數的上限。實務上大多數盤面離 match 只有 1~3 步，
//     這個上限純粹防止對抗性輸入造成失控；觸頂回報「找不到解」而不是錯誤。
//
// 留 0 會套用預設值。
type SolverSetting struct {
	MaxDequeue int `yaml:"max_dequeue"  json:"max_dequeue"`
	initFlag   bool
}

// Init 檢查不合法的設定並套用預設值
func (ss *SolverSetting) Init() error {
	if ss.initFlag {
		return nil
	}
	if ss.MaxDequeue < 0 {
		return errs.NewFatal("max_dequeue must be >= 0")
	}
	if ss.MaxDequeue == 0 {
		ss.MaxDequeue = defaultMaxDequeue
	}
	ss.initFlag = true
	return nil
}
