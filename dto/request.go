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

package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/zintix-labs/matchlab/corefmt"
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/buf"
	"github.com/zintix-labs/matchlab/spec"
)

type SpinRequest struct {
	UID      string   `json:"uid"`            // 唯一識別碼
	GameName string   `json:"game"`           // 要玩的遊戲
	GameId   spec.GID `json:"gid"`            // 遊戲機台編號
	Session  int      `json:"session"`        // 第幾段會話
	Solve    bool     `json:"solve"`          // 是否同場計算最少交換步數
	Size     *int     `json:"size,omitempty"` // 指定盤面邊長（省略時由機台隨機抽）

	StartState *StartState `json:"start_state,omitempty"` // 可選：由業務端帶入的引擎狀態（nil=新局；帶 start_b64u=回放/續玩）。
}

// DecodeSpinRequest 會把 HTTP 請求解碼成 SpinRequest。
//
// 支援：
//   - GET：從 query string 讀取參數（uid/game/gid/session/solve/size）。
//     注意：GET 建議僅用於「新局」或簡單測試；巢狀狀態（start_state）建議使用 POST。
//   - POST：從 JSON body 反序列化（支援 start_state）。
//
// StartState（start_state）語意：
//   - start_state 缺省 / 為 null / 為空物件：視為「新局」。
//   - start_state.start_b64u 有值：視為「回放（replay）/ 續玩（resume/continue）」：
//   - 回放：帶入當初記錄的 start_b64u，可在相同輸入條件下重現該局結果。
//   - 續玩：帶入上一段回傳的 after_b64u 作為新的 start_b64u，以延續 RNG 流水。
//   - 引擎的輸入只接受 start_b64u（Start）；after_b64u 只會出現在回應（SpinState），請求端不得自行填寫 after。
//
// 注意：
//   - 這裡只負責「解碼（decode）」與基本型別轉換，不做任何遊戲合法性校驗；
//     合法性（例如該 GID 是否存在、size 是否在設定清單內）應由上層（Machine/Runtime）決定。
//   - 為避免過大 body 影響服務，POST 會對 body 做大小限制（預設 1MiB）。
//   - POST 會開啟 DisallowUnknownFields()，對未知欄位採用嚴格拒絕，以避免靜默丟資料。
func DecodeSpinRequest(r *http.Request) (*SpinRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(SpinRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.UID = q.Get("uid")
		req.GameName = q.Get("game")

		if s := q.Get("gid"); s != "" {
			u, err := strconv.ParseUint(s, 10, 0)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid gid: %v", err))
			}
			req.GameId = spec.GID(u)
		}

		if s := q.Get("session"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid session: %v", err))
			}
			req.Session = v
		}

		if s := q.Get("solve"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid solve: %v", err))
			}
			req.Solve = v
		}

		if s := q.Get("size"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid size: %v", err))
			}
			req.Size = &v
		}

		return req, nil

	case http.MethodPost:
		// 防止 body 過大（預設 1MiB）
		const maxBody = 1 << 20
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return req, nil

	default:
		return nil, fmt.Errorf("method not allowed")
	}
}

// StartState 是由業務端帶入的「引擎可恢復狀態」（可選）。
//
// 設計目標：
//   - 讓引擎維持純計算器（stateless / deterministic），而「可回放/可續玩」所需的狀態由業務端保存與回送。
//   - 新局：start_state 缺省即可；引擎會自行產生本局的 RNG 內部狀態並在回應中回傳 Start/After。
//   - 回放（Replay）：業務端帶入當初記錄的 start_b64u，即可重現該局結果。
//   - 續玩（Resume/Continue，多段流程）：業務端把上一段回應的 after_b64u 當作下一段的 start_b64u 送入。
//
// 重要約束：
//   - Request 只允許提供 Start（start_b64u）；After（after_b64u）只會由引擎在 Response 回傳。
type StartState struct {
	// StartCoreSnapB64U：RNG Core 的「起始快照」Base64URL（URL-safe base64）字串。
	//   - 缺省：視為新局（引擎自行起始 RNG）。
	//   - 有值：視為回放/續玩（引擎從該快照 restore RNG）。
	StartCoreSnapB64U string `json:"start_b64u,omitempty"`
}

func (ss *StartState) HasPayload() bool {
	if ss == nil {
		return false
	}
	return ss.StartCoreSnapB64U != ""
}

// Parse 把對外請求轉成引擎層的 buf.SpinRequest，並解碼 start_b64u 快照。
func (sr *SpinRequest) Parse() (*buf.SpinRequest, error) {
	var state *buf.StartState
	start := sr.StartState
	if start.HasPayload() {
		snap, err := corefmt.DecodeBase64URL(start.StartCoreSnapB64U)
		if err != nil {
			return nil, errs.NewWarn("core snap decode failed " + err.Error())
		}
		state = &buf.StartState{StartCoreSnap: snap}
	}

	req := &buf.SpinRequest{
		UID:        sr.UID,
		GameName:   sr.GameName,
		GameId:     sr.GameId,
		Session:    sr.Session,
		Solve:      sr.Solve,
		Size:       sr.Size,
		StartState: state,
	}
	return req, nil
}
