package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/matchlab/recorder"
	"github.com/zintix-labs/matchlab/sdk/buf"
)

// DistStat 是「離線重算統計」的輸入：caller 把已經跑完的逐局結果
// （盤面邊長、求解步數、降級旗標）貼回來，由 server 端重建報表。
//
// 約定：
//   - Moves 每格代表一局「已求解」的結果；-1 = 界限內無解。
//   - Sizes 與 Moves 逐局對齊；Degraded 可短於局數（缺省視為 false）。
type DistStat struct {
	GameName  string `json:"game_name"`
	GridSizes []int  `json:"grid_sizes"`

	Sizes    []int  `json:"sizes"`
	Moves    []int  `json:"moves"`
	Degraded []bool `json:"degraded,omitempty"`
}

func Stat(w http.ResponseWriter, r *http.Request) {
	// Post方法限定
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// 嘗試解析
	dst := new(DistStat)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 對齊局數
	round := min(len(dst.Sizes), len(dst.Moves))
	if round < 1 {
		http.Error(w, "round must > 0", http.StatusBadRequest)
		return
	}

	rec, err := recorder.NewSpinRecorder(dst.GameName, 0, dst.GridSizes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 繞過 Machine，直接重放欄位到可重用的 SpinResult
	sr := &buf.SpinResult{GameName: dst.GameName}
	for i := 0; i < round; i++ {
		sr.GridSize = dst.Sizes[i]
		sr.Solved = true
		sr.Found = dst.Moves[i] >= 0
		sr.Moves = dst.Moves[i]
		sr.Dequeued = 0
		sr.Degraded = i < len(dst.Degraded) && dst.Degraded[i]
		rec.Record(sr)
	}
	st := rec.Done()
	st.Done()
	st.Summary.GameName = dst.GameName
	if err := json.NewEncoder(w).Encode(st); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
}
