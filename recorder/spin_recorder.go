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

package recorder

import (
	"fmt"

	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/buf"
	"github.com/zintix-labs/matchlab/spec"
	"github.com/zintix-labs/matchlab/stats"
)

// SpinRecorder 遊戲紀錄員
//
// SpinRecorder 負責紀錄遊戲結果，並透過Done輸出統計報表
type SpinRecorder struct {
	GameName  string
	GameId    spec.GID
	GridSizes []int
	Basic     *BasicRecord
	Dist      *DistRecord
}

// BasicRecord 基本遊戲資料紀錄
type BasicRecord struct {
	Rounds     int
	Solved     int // 執行過求解的局數
	Found      int // 求解有解的局數
	NoSolution int // 界限內無解的局數
	Degraded   int // 來自降級池的局數
	MovesSum   int // 有解局步數和
	MovesSqSum int // 平方和
	Dequeued   int // BFS 出隊狀態總數
}

// DistRecord 落點統計
//
// 紀錄時紀錄int資訊
type DistRecord struct {
	Bucket      *stats.MoveBuckets
	MoveCollect []int
	sizeIdx     map[int]int // 盤面邊長 -> SizeCollect 位置
	SizeCollect []int
}

func NewSpinRecorder(name string, id spec.GID, gridSizes []int) (*SpinRecorder, error) {
	s := new(SpinRecorder)

	if len(gridSizes) == 0 {
		return s, errs.NewFatal(fmt.Sprintf("grid sizes err %v", gridSizes))
	}
	for _, v := range gridSizes {
		if v < 3 {
			return s, errs.NewFatal(fmt.Sprintf("grid sizes err %v", gridSizes))
		}
	}

	// 通過valid
	s.GameName = name
	s.GameId = id
	s.GridSizes = gridSizes
	s.Basic = new(BasicRecord)
	s.Dist = newDistRecord(gridSizes)

	return s, nil
}

func MergeSpinRecorder(r []*SpinRecorder) (*SpinRecorder, error) {
	r0 := r[0]
	s, err := NewSpinRecorder(r0.GameName, r0.GameId, r0.GridSizes)
	if err != nil {
		return s, err
	}
	for _, v := range r {
		if v.GameName != r0.GameName {
			return s, errs.NewFatal("merge spin record err : different game name")
		}
		for i, g := range v.GridSizes {
			if g != r0.GridSizes[i] {
				return s, errs.NewFatal("merge spin record err : different grid sizes")
			}
		}
		s.Basic.Rounds += v.Basic.Rounds
		s.Basic.Solved += v.Basic.Solved
		s.Basic.Found += v.Basic.Found
		s.Basic.NoSolution += v.Basic.NoSolution
		s.Basic.Degraded += v.Basic.Degraded
		s.Basic.MovesSum += v.Basic.MovesSum
		s.Basic.MovesSqSum += v.Basic.MovesSqSum
		s.Basic.Dequeued += v.Basic.Dequeued

		// 整合Dist
		for i := range v.Dist.MoveCollect {
			s.Dist.MoveCollect[i] += v.Dist.MoveCollect[i]
		}
		for i := range v.Dist.SizeCollect {
			s.Dist.SizeCollect[i] += v.Dist.SizeCollect[i]
		}
	}
	return s, nil
}

// Record 以單次 SpinResult 更新統計
func (s *SpinRecorder) Record(sr *buf.SpinResult) {
	s.recordBasic(sr)
	s.recordDist(sr)
}

func (s *SpinRecorder) Done() *stats.StatReport {
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			GameName:   s.GameName,
			GameId:     s.GameId,
			GridSizes:  s.GridSizes,
			Rounds:     s.Basic.Rounds,
			Solved:     s.Basic.Solved,
			Found:      s.Basic.Found,
			NoSolution: s.Basic.NoSolution,
			Degraded:   s.Basic.Degraded,
		},
		Moves: &stats.MovesReport{
			MovesSum:   s.Basic.MovesSum,
			MovesSqSum: s.Basic.MovesSqSum,
			Dequeued:   s.Basic.Dequeued,
		},
		Dist: &stats.DistReport{
			MoveBucket:  stats.Buckets.MoveBucketStr(),
			MoveCollect: s.Dist.MoveCollect,
			GridSizes:   s.GridSizes,
			SizeCollect: s.Dist.SizeCollect,
			MoveDist:    nil,
			SizeDist:    nil,
		},
	}

	rf := float64(report.Summary.Rounds)
	if rf > 0 {
		moveF := make([]float64, len(report.Dist.MoveCollect))
		for i := range moveF {
			moveF[i] = float64(report.Dist.MoveCollect[i]) / rf
		}
		sizeF := make([]float64, len(report.Dist.SizeCollect))
		for i := range sizeF {
			sizeF[i] = float64(report.Dist.SizeCollect[i]) / rf
		}
		report.Dist.MoveDist = moveF
		report.Dist.SizeDist = sizeF
	}

	return report
}

func (s *SpinRecorder) recordBasic(res *buf.SpinResult) {
	s.Basic.Rounds++
	if res.Degraded {
		s.Basic.Degraded++
	}
	if !res.Solved {
		return
	}
	s.Basic.Solved++
	s.Basic.Dequeued += res.Dequeued
	if res.Found {
		s.Basic.Found++
		s.Basic.MovesSum += res.Moves
		s.Basic.MovesSqSum += res.Moves * res.Moves
	} else {
		s.Basic.NoSolution++
	}
}

func (s *SpinRecorder) recordDist(res *buf.SpinResult) {
	d := s.Dist
	if res.Solved {
		d.MoveCollect[d.Bucket.Index(res.Found, res.Moves)]++
	}
	if i, ok := d.sizeIdx[res.GridSize]; ok {
		d.SizeCollect[i]++
	}
}

func newDistRecord(gridSizes []int) *DistRecord {
	d := new(DistRecord)
	d.Bucket = stats.Buckets
	d.MoveCollect = make([]int, len(stats.Buckets.MoveBucketStr()))
	d.sizeIdx = make(map[int]int, len(gridSizes))
	for i, g := range gridSizes {
		d.sizeIdx[g] = i
	}
	d.SizeCollect = make([]int, len(gridSizes))
	return d
}
