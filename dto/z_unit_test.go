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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/matchlab/corefmt"
	"github.com/zintix-labs/matchlab/sdk/buf"
)

func testSpinResult() *buf.SpinResult {
	sr := &buf.SpinResult{
		GameName: "demo",
		GameID:   7,
		Session:  1,
	}
	sr.SetBoard(3, []int{1, 2, 3}, []int16{1, 2, 3, 4, 5, 6, 7, 1, 2}, false)
	sr.SetSolve(true, 2, 40)
	sr.State.StartCoreSnap = []byte{1, 2, 3}
	sr.State.AfterCoreSnap = []byte{4, 5, 6}
	sr.End()
	return sr
}

func TestNewSpinResultDTODeepCopies(t *testing.T) {
	sr := testSpinResult()
	dto, err := NewSpinResultDTO(sr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.GameName != "demo" || dto.GameID != 7 || dto.GridSize != 3 || !dto.IsGameEnd {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Solve == nil || !dto.Solve.Found || dto.Solve.Moves != 2 {
		t.Fatalf("solve not carried: %+v", dto.Solve)
	}

	// 機台緩衝被下一次 Spin 覆寫時，DTO 內容必須不受影響
	sr.Reset()
	sr.SetBoard(3, []int{9, 9, 9}, []int16{9, 9, 9, 9, 9, 9, 9, 9, 9}, true)
	if dto.Cells[0] != 1 || dto.Offsets[0] != 1 {
		t.Fatalf("dto shares memory with the machine buffer: %+v", dto)
	}
}

func TestSpinStateRoundTrip(t *testing.T) {
	sr := testSpinResult()
	dto, err := NewSpinResultDTO(sr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, err := corefmt.DecodeBase64URL(dto.State.StartCoreSnapB64U)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !bytes.Equal(snap, []byte{1, 2, 3}) {
		t.Fatalf("start snap round trip failed: %v", snap)
	}
}

func TestSolveOmittedWhenNotRequested(t *testing.T) {
	sr := &buf.SpinResult{GameName: "demo", GameID: 7}
	sr.SetBoard(3, []int{0, 0, 0}, make([]int16, 9), false)
	dto, err := NewSpinResultDTO(sr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := json.Marshal(dto)
	if bytes.Contains(raw, []byte(`"solve"`)) {
		t.Fatalf("solve must be omitted when the solver did not run: %s", raw)
	}
}

func TestParseReplayState(t *testing.T) {
	snap := []byte{7, 7, 7, 7}
	req := &SpinRequest{
		GameId: 7,
		Solve:  true,
		StartState: &StartState{
			StartCoreSnapB64U: corefmt.EncodeBase64URL(snap),
		},
	}
	breq, err := req.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breq.StartState == nil || !bytes.Equal(breq.StartState.StartCoreSnap, snap) {
		t.Fatalf("start state not decoded: %+v", breq.StartState)
	}
}

func TestParseNewGame(t *testing.T) {
	req := &SpinRequest{GameName: "demo"}
	breq, err := req.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breq.StartState != nil {
		t.Fatalf("new game must carry no start state")
	}
}

func TestDecodeSpinRequestPOSTWithState(t *testing.T) {
	payload := map[string]any{
		"uid":   "u1",
		"game":  "demo",
		"gid":   7,
		"solve": true,
		"start_state": map[string]any{
			"start_b64u": corefmt.EncodeBase64URL([]byte{1, 2}),
		},
	}
	data, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, "/spin", bytes.NewReader(data))
	req, err := DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.StartState.HasPayload() {
		t.Fatalf("start state lost in decode: %+v", req)
	}
}
