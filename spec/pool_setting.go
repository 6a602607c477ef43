package spec

import "github.com/zintix-labs/matchlab/errs"

const (
	defaultPoolSize    = 64
	defaultMaxAttempts = 10_000
)

// PoolSetting 描述 stop-offset pool 的建池參數。
//
// 建池採 rejection sampling：窮舉 columnLength^gridSize 種組合不可行，
// 而合法組合在實務上夠常見，抽樣很快就會收斂。
//
// Fields:
//   - PoolSize: 目標池大小；收滿即停。
//   - MaxAttempts: 抽樣次數上限；抽完仍零命中時退回全零 offset（degraded pool）。
//
// 兩者留 0 會套用預設值。
type PoolSetting struct {
	PoolSize    int `yaml:"pool_size"     json:"pool_size"`
	MaxAttempts int `yaml:"max_attempts"  json:"max_attempts"`
	initFlag    bool
}

// Init 檢查不合法的設定並套用預設值
func (ps *PoolSetting) Init() error {
	if ps.initFlag {
		return nil
	}
	if ps.PoolSize < 0 || ps.MaxAttempts < 0 {
		return errs.NewFatal("pool_size / max_attempts must be >= 0")
	}
	if ps.PoolSize == 0 {
		ps.PoolSize = defaultPoolSize
	}
	if ps.MaxAttempts == 0 {
		ps.MaxAttempts = defaultMaxAttempts
	}
	if ps.MaxAttempts < ps.PoolSize {
		return errs.NewFatal("max_attempts must be >= pool_size")
	}
	ps.initFlag = true
	return nil
}
