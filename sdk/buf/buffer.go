package buf

import (
	"github.com/zintix-labs/matchlab/spec"
)

// SpinResult 保存一次完整 Spin 的結果。
//
// 內部切片（Offsets/Cells）為可重用緩衝：Reset 只截斷長度、保留容量，
// 讓高頻模擬時同一台機器的連續 Spin 不再配置記憶體。
type SpinResult struct {
	GameName string   // 遊戲名稱
	GameID   spec.GID // 遊戲Id
	Session  int      // 第幾段會話

	GridSize int     // 本次盤面邊長
	Offsets  []int   // 本次抽中的 stop-offset 向量
	Cells    []int16 // 具現化後的盤面 (row-major)

	Degraded bool // 本次盤面來自降級池

	Solved   bool // 是否執行過求解
	Found    bool // 求解是否在界限內找到解
	Moves    int  // 最少交換步數；Found=false 時為哨兵值
	Dequeued int  // 求解出隊狀態數（觀測用）

	IsGameEnd bool // 遊戲結束旗標

	State SpinState // RNG 快照（回放/續玩用）
}

// SpinState 承載本次 Spin 的引擎可恢復狀態。
//
// Start 為進入 Spin 前的 RNG 快照，After 為結束後的快照：
// 回放帶 Start 重現同一局；續玩拿 After 當下一段的 Start 延續流水。
type SpinState struct {
	StartCoreSnap []byte
	AfterCoreSnap []byte
}

// StartState 是由業務端帶入的可選起始狀態；nil 表示新局。
type StartState struct {
	StartCoreSnap []byte // RNG Core 起始快照；引擎從這裡 restore
}

// NewSpinResult 建立指定機台的 SpinResult 實體，並依最大盤面預先配置容量。
func NewSpinResult(ps *spec.PuzzleSetting) *SpinResult {
	maxCells := ps.BoardSetting.MaxGridSize * ps.BoardSetting.MaxGridSize
	return &SpinResult{
		GameName: ps.GameName,
		GameID:   ps.GameID,
		Offsets:  make([]int, 0, ps.BoardSetting.MaxGridSize),
		Cells:    make([]int16, 0, maxCells),
	}
}

// SetBoard 紀錄盤面資訊；offsets 與 cells 內容會被拷入內部緩衝。
func (s *SpinResult) SetBoard(gridSize int, offsets []int, cells []int16, degraded bool) {
	if s.IsGameEnd {
		panic("spin request is already end, but still send new result")
	}
	s.GridSize = gridSize
	s.Offsets = append(s.Offsets[:0], offsets...)
	s.Cells = append(s.Cells[:0], cells...)
	s.Degraded = degraded
}

// SetSolve 紀錄求解結果。
func (s *SpinResult) SetSolve(found bool, moves int, dequeued int) {
	if s.IsGameEnd {
		panic("spin request is already end, but still send new result")
	}
	s.Solved = true
	s.Found = found
	s.Moves = moves
	s.Dequeued = dequeued
}

// End : 結束Spin
func (s *SpinResult) End() {
	s.IsGameEnd = true
}

// Reset 重置累積資料，保留已配置的內部切片容量。
func (s *SpinResult) Reset() {
	s.Session = 0
	s.GridSize = 0
	s.Offsets = s.Offsets[:0]
	s.Cells = s.Cells[:0]
	s.Degraded = false
	s.Solved = false
	s.Found = false
	s.Moves = 0
	s.Dequeued = 0
	s.IsGameEnd = false
	s.State.StartCoreSnap = s.State.StartCoreSnap[:0]
	s.State.AfterCoreSnap = s.State.AfterCoreSnap[:0]
}
