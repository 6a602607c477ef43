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

package buf

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/matchlab/spec"
)

func testPuzzleSetting(t *testing.T) *spec.PuzzleSetting {
	t.Helper()
	raw := []byte(`
game_name: demo
game_id: 7
tile_setting:
  tiles: [1, 2, 3, 4, 5, 6, 7]
  min_per_type: 3
board_setting:
  grid_sizes: [5]
  column_length: 32
`)
	ps, err := spec.GetPuzzleSettingByYAML(raw)
	if err != nil {
		t.Fatalf("setting parse error: %v", err)
	}
	return ps
}

func TestSpinResultSetReset(t *testing.T) {
	ps := testPuzzleSetting(t)
	sr := NewSpinResult(ps)
	if sr.GameName != "demo" || sr.GameID != 7 {
		t.Fatalf("unexpected spin result metadata: %+v", sr)
	}

	sr.SetBoard(5, []int{1, 2, 3, 4, 5}, make([]int16, 25), true)
	sr.SetSolve(true, 2, 40)

	if sr.GridSize != 5 || len(sr.Cells) != 25 || !sr.Degraded {
		t.Fatalf("board not recorded: %+v", sr)
	}
	if !sr.Solved || !sr.Found || sr.Moves != 2 {
		t.Fatalf("solve not recorded: %+v", sr)
	}

	sr.End()
	if !sr.IsGameEnd {
		t.Fatalf("expected game end flag")
	}

	sr.Reset()
	if sr.GridSize != 0 || len(sr.Offsets) != 0 || len(sr.Cells) != 0 || sr.Solved || sr.Degraded || sr.IsGameEnd {
		t.Fatalf("spin result not reset: %+v", sr)
	}
}

func TestSpinResultSetAfterEndPanics(t *testing.T) {
	sr := NewSpinResult(testPuzzleSetting(t))
	sr.End()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic when recording after End")
		}
	}()
	sr.SetBoard(5, []int{0, 0, 0, 0, 0}, make([]int16, 25), false)
}

func TestSpinResultBufferReuse(t *testing.T) {
	sr := NewSpinResult(testPuzzleSetting(t))
	sr.SetBoard(5, []int{1, 2, 3, 4, 5}, make([]int16, 25), false)
	cells := &sr.Cells[0]
	sr.Reset()
	sr.SetBoard(5, []int{5, 4, 3, 2, 1}, make([]int16, 25), false)
	if &sr.Cells[0] != cells {
		t.Fatalf("cells buffer was reallocated across Reset")
	}
}

func TestDecodeSpinRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/spin?uid=u1&game=demo&gid=7&session=3&solve=true&size=5", nil)
	req, err := DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.UID != "u1" || req.GameName != "demo" || req.GameId != 7 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Session != 3 || !req.Solve {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Size == nil || *req.Size != 5 {
		t.Fatalf("unexpected size: %+v", req.Size)
	}
}

func TestDecodeSpinRequestPOST(t *testing.T) {
	payload := map[string]any{
		"uid":     "u2",
		"game":    "demo",
		"gid":     9,
		"session": 2,
		"solve":   true,
	}
	data, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, "/spin", bytes.NewReader(data))
	req, err := DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.GameId != 9 || req.Session != 2 || !req.Solve {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Size != nil {
		t.Fatalf("size should stay nil when omitted")
	}
}

func TestDecodeSpinRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"gid":1,"game":"demo","solve":false,"unknown":true}`)
	r := httptest.NewRequest(http.MethodPost, "/spin", bytes.NewReader(data))
	if _, err := DecodeSpinRequest(r); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
