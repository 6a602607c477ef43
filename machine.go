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
	"crypto/rand"
	"math"
	"math/big"
	"sync"

	"github.com/zintix-labs/matchlab/dto"
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/board"
	"github.com/zintix-labs/matchlab/sdk/buf"
	"github.com/zintix-labs/matchlab/sdk/core"
	"github.com/zintix-labs/matchlab/sdk/solver"
	"github.com/zintix-labs/matchlab/spec"
)

// Machine 封裝一台「可對外提供 Spin」的遊戲機台。
//
// 你可以把 Machine 視為盤面引擎的「外殼（shell）」：
//   - 對外：提供 Spin 入口（HTTP/模擬器通常只操作 Machine）。
//   - 對內：持有 RNG（Core）與每個盤面邊長各一個 BoardSession。
//
// 並發語意：
//   - Machine 不是 lock-free 結構；它內含可重用的 request/result buffer（熱路徑），
//     因此同一台 Machine 不應被多 goroutine 同時 Spin。
//   - 若要併發模擬，由更高層建立多台 Machine 分散到不同 worker 並管理其生命週期。
//
// Buffer 語意（非常重要，影響 DX 與正確性）：
//   - SpinRequest / SpinResult 會被重用（避免 GC），每次 Spin 會覆寫內容。
//   - 你若需要在 Spin 後保留結果，請在離開臨界區前轉成 DTO（或自行 copy 你需要的欄位）。
//
// initseed 用於記錄出生時的 seed（追溯/重現的基礎資訊）；完整審計仍以 Core 的 Snapshot/Restore 為準。
type Machine struct {
	gameName    string                // 遊戲名稱（來自 PuzzleSetting.GameName，主要用於觀測/日誌）
	gameId      spec.GID              // 遊戲 ID（Catalog 內唯一；用於路由與查表）
	core        *core.Core            // RNG 核心（PRNG + Snapshot/Restore 合約；熱路徑會頻繁取樣）
	ps          *spec.PuzzleSetting   // 已 Init 的遊戲設定
	sessions    map[int]*BoardSession // 盤面邊長 -> session（建機台時全建好）
	sizes       []int                 // 可抽的盤面邊長清單（設定順序）
	solv        *solver.Solver        // 共用求解器（無狀態）
	SpinRequest *buf.SpinRequest      // 可重用的請求 buffer（每次 Spin 會覆寫/填充）
	SpinResult  *buf.SpinResult       // 可重用的結果 buffer（熱路徑；每次 Spin 會覆寫）
	grid        board.Grid            // 可重用的具現化 buffer（容量 = 最大盤面）
	mu          sync.Mutex            // 防併發鎖：保護可重用 buffers 與核心狀態一致性
	initseed    int64                 // 出生 seed（便於追溯；完整重現請用 Snapshot/Restore）
}

// newMachine 以「隨機 seed」建立 Machine。
//
// 這裡使用 crypto/rand 產生 seed 是為了：
//   - 在對外服務情境避免可預測 RNG
//   - 同時保留可追溯性（seed 會被記錄在 Machine.initseed）
//
// seed 只保證了新建的 Machine 起點，如果需要在任意局後將機台"重設"到任意 Core 節點，
// 請利用 Snapshot / Restore 來操作
func newMachine(ps *spec.PuzzleSetting, cf core.PRNGFactory) (*Machine, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return newMachineWithSeed(ps, cf, seed.Int64())
}

// newMachineWithSeed 以指定 seed 建立 Machine。
//
// 這是最常用的「可重現」入口：同一份 PuzzleSetting + 同一個 seed，
// 應能得到一致的盤面序列（取決於 Core 實作）。
//
// 建立流程：
//  1. core.New(cf.New(seed)) 建出 RNG 核心
//  2. 為設定中的每個盤面邊長建一個 BoardSession（輪帶 + offset 池，建池會消耗隨機流）
//  3. 初始化 Machine 需要的 buffers（SpinRequest/SpinResult/盤面 scratch）
//
// 任何設定不可行（ConfigurationError）都在這裡以 Fatal 失敗，不會建出半台機器。
func newMachineWithSeed(ps *spec.PuzzleSetting, cf core.PRNGFactory, seed int64) (*Machine, error) {
	m := &Machine{
		gameName: ps.GameName,
		gameId:   ps.GameID,
		core:     core.New(cf.New(seed)),
		ps:       ps,
		solv:     solver.New(ps.SolverSetting.MaxDequeue),
		initseed: seed,
	}

	m.sizes = append([]int(nil), ps.BoardSetting.GridSizes...)
	m.sessions = make(map[int]*BoardSession, len(m.sizes))
	for _, size := range m.sizes {
		s, err := newBoardSession(ps, size, m.core, m.solv)
		if err != nil {
			return nil, err
		}
		m.sessions[size] = s
	}

	maxCells := ps.BoardSetting.MaxGridSize * ps.BoardSetting.MaxGridSize
	m.grid = board.Grid{Cells: make([]int16, maxCells)}
	m.SpinRequest = &buf.SpinRequest{}
	m.SpinResult = buf.NewSpinResult(ps)
	return m, nil
}

// Spin 為主要公開入口，會驗證請求，執行盤面生成（與可選的求解）並回傳 Spin 結果。
func (m *Machine) Spin(r *dto.SpinRequest) (dto.SpinResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 1. 校驗請求合法性
	if err := m.valid(r); err != nil {
		return dto.SpinResult{}, err
	}
	// 2. parse dto to inner spin request
	req, err := r.Parse()
	if err != nil {
		return dto.SpinResult{}, err
	}

	// 3. get start snapshot
	startsnap, err := m.SnapshotCore()
	if err != nil {
		return dto.SpinResult{}, errs.NewFatal("before snapshot error " + err.Error())
	}
	rem := startsnap
	if req.StartState != nil && len(req.StartState.StartCoreSnap) != 0 {
		startsnap = req.StartState.StartCoreSnap
		if err := m.RestoreCore(req.StartState.StartCoreSnap); err != nil {
			return dto.SpinResult{}, errs.NewWarn("restore core err " + err.Error())
		}
	}

	// 4. get inner spinResult
	sr, err := m.spin(req)
	if err != nil {
		if e := m.RestoreCore(rem); e != nil {
			return dto.SpinResult{}, errs.NewFatal("fall back err " + e.Error())
		}
		return dto.SpinResult{}, err
	}

	// 5. get after snapshot
	aftersnap, err := m.SnapshotCore()
	if err != nil {
		if e := m.RestoreCore(rem); e != nil {
			return dto.SpinResult{}, errs.NewFatal("fall back err " + e.Error())
		}
		return dto.SpinResult{}, errs.NewWarn("after snapshot error " + err.Error())
	}
	sr.State.StartCoreSnap = startsnap
	sr.State.AfterCoreSnap = aftersnap

	// 6. restore if needed
	if req.StartState != nil && len(req.StartState.StartCoreSnap) != 0 {
		if err := m.RestoreCore(rem); err != nil {
			return dto.SpinResult{}, errs.NewFatal("restore core back err " + err.Error())
		}
	}

	// 7. dto
	return dto.NewSpinResultDTO(sr)
}

// SpinInternal 直接取得內部 SpinResult；常用於模擬器或測試
//
// 請勿在正式環境使用
//
// 此行為跳過請求校驗，盤面邊長一律由機台隨機抽。
func (m *Machine) SpinInternal(solve bool) *buf.SpinResult {
	m.SpinRequest.Solve = solve
	m.SpinRequest.Size = nil
	sr, err := m.spin(m.SpinRequest)
	if err != nil {
		// spin 只會因 Size 不合法失敗；SpinInternal 不帶 Size
		panic("matchlab: internal spin failed: " + err.Error())
	}
	return sr
}

// spin 執行一次盤面生成（與可選求解），寫入可重用的 SpinResult。
func (m *Machine) spin(req *buf.SpinRequest) (*buf.SpinResult, error) {
	size, err := m.pickSize(req.Size)
	if err != nil {
		return nil, err
	}
	s := m.sessions[size]

	sr := m.SpinResult
	sr.Reset()
	sr.Session = req.Session

	offsets := s.SampleOffsets(m.core)

	m.grid.Size = size
	m.grid.Cells = m.grid.Cells[:size*size]
	s.Materialize(&m.grid, offsets)

	sr.SetBoard(size, offsets, m.grid.Cells, s.Degraded())

	if req.Solve {
		res := s.Solve(m.grid)
		sr.SetSolve(res.Found, res.Moves, res.Dequeued)
	}

	sr.End()
	return sr, nil
}

// pickSize 決定本次盤面邊長：呼叫端指定就驗證，沒指定就由 RNG 均勻抽。
func (m *Machine) pickSize(want *int) (int, error) {
	if want == nil {
		if len(m.sizes) == 1 {
			return m.sizes[0], nil
		}
		return m.core.Pick(m.sizes), nil
	}
	if _, ok := m.sessions[*want]; !ok {
		return 0, errs.NewWarn("grid size is not configured")
	}
	return *want, nil
}

func (m *Machine) valid(req *dto.SpinRequest) error {
	if m.gameId != req.GameId {
		return errs.NewWarn("game id is not matched")
	}
	if m.gameName != req.GameName {
		return errs.NewWarn("game name is not matched")
	}
	return nil
}

// Session 取得指定邊長的 BoardSession；不存在時回傳 false。
// 提供給需要直接操作 session（TileAt/Materialize/Solve）的呼叫端。
func (m *Machine) Session(gridSize int) (*BoardSession, bool) {
	s, ok := m.sessions[gridSize]
	return s, ok
}

// GridSizes 回傳機台可用的盤面邊長清單。
func (m *Machine) GridSizes() []int {
	return append([]int(nil), m.sizes...)
}

// SnapshotCore 取得Core狀態暫存 當前僅提供取得Core狀態
//
// 之後要實作斷手重連時候提供checkpoint加入必要恢復資訊時實作
// SnapShot() <- 保留語意
func (m *Machine) SnapshotCore() ([]byte, error) {
	return m.core.Snapshot()
}

// RestoreCore 恢復Core狀態暫存 當前僅提供恢復Core狀態
//
// 之後要實作斷手重連時候提供checkpoint加入必要恢復資訊時實作
// Restore() <- 保留語意
func (m *Machine) RestoreCore(src []byte) error {
	return m.core.Restore(src)
}
