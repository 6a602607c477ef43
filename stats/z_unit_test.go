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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func testReport() *StatReport {
	return &StatReport{
		Summary: &SummaryReport{
			GameName:   "demo",
			GameId:     7,
			GridSizes:  []int{5, 7},
			Rounds:     100,
			Solved:     100,
			Found:      90,
			NoSolution: 10,
			Degraded:   0,
		},
		Moves: &MovesReport{
			MovesSum:   180, // 平均 2 步
			MovesSqSum: 450,
		},
		Dist: &DistReport{
			MoveBucket:  Buckets.MoveBucketStr(),
			MoveCollect: []int{10, 30, 30, 15, 5, 0, 0, 10},
			GridSizes:   []int{5, 7},
			SizeCollect: []int{60, 40},
		},
	}
}

func TestMoveBucketIndex(t *testing.T) {
	cases := []struct {
		found bool
		moves int
		want  int
	}{
		{true, 0, 0},
		{true, 1, 1},
		{true, 4, 4},
		{true, 5, 5},
		{true, 7, 5},
		{true, 8, 6},
		{true, 100, 6},
		{false, -1, 7},
	}
	for _, c := range cases {
		if got := Buckets.Index(c.found, c.moves); got != c.want {
			t.Fatalf("Index(%v,%d) = %d, want %d", c.found, c.moves, got, c.want)
		}
	}
	if len(Buckets.MoveBucketStr()) != 8 {
		t.Fatalf("bucket labels out of sync: %v", Buckets.MoveBucketStr())
	}
}

func TestDoneComputesRates(t *testing.T) {
	r := testReport()
	r.Done()

	if math.Abs(r.Summary.FoundRate-0.9) > 1e-9 {
		t.Fatalf("found rate = %v, want 0.9", r.Summary.FoundRate)
	}
	if math.Abs(r.Summary.AvgMoves-2.0) > 1e-9 {
		t.Fatalf("avg moves = %v, want 2", r.Summary.AvgMoves)
	}
	ci := r.Summary.FoundCI
	if !(ci.Lo < 0.9 && 0.9 < ci.Hi) {
		t.Fatalf("found CI %v must cover the point estimate", ci)
	}
	if ci.Lo < 0 || ci.Hi > 1 {
		t.Fatalf("CI out of [0,1]: %v", ci)
	}
}

func TestCIBoundaries(t *testing.T) {
	if ci := clopperPearson(0, 100, 0.05); ci.Lo != 0 {
		t.Fatalf("k=0 must pin Lo to 0, got %v", ci)
	}
	if ci := clopperPearson(100, 100, 0.05); ci.Hi != 1 {
		t.Fatalf("k=n must pin Hi to 1, got %v", ci)
	}
	if ci := clopperPearson(5, 0, 0.05); ci.Lo != 0 || ci.Hi != 0 {
		t.Fatalf("n=0 must return zero CI, got %v", ci)
	}
}

func TestJSONRender(t *testing.T) {
	r := testReport()
	var b bytes.Buffer
	if err := r.WriteWith(&b, &JsonStatReportRender{}); err != nil {
		t.Fatalf("json render err: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b.Bytes(), &back); err != nil {
		t.Fatalf("render is not valid json: %v", err)
	}
	if _, ok := back["Summary"]; !ok {
		t.Fatalf("summary missing in render: %s", b.String())
	}
}

func TestYAMLRenderFlowStyle(t *testing.T) {
	r := testReport()
	var b bytes.Buffer
	if err := r.WriteWith(&b, &YAMLStatReportRender{}); err != nil {
		t.Fatalf("yaml render err: %v", err)
	}
	// 一維陣列必須被壓成 flow style
	if !strings.Contains(b.String(), "[60, 40]") {
		t.Fatalf("inner sequences must render in flow style:\n%s", b.String())
	}
}
