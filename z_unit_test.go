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
	"context"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/matchlab/dto"
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/board"
	"github.com/zintix-labs/matchlab/sdk/core"
)

const alphaYAML = `game_name: alpha
game_id: 1

tile_setting:
  tiles: [1, 2, 3, 4, 5]
  min_per_type: 2

board_setting:
  grid_sizes: [5]
  column_length: 32

pool_setting:
  pool_size: 16
  max_attempts: 5000

solver_setting:
  max_dequeue: 100000
`

const betaYAML = `game_name: beta
game_id: 2

tile_setting:
  tiles: [1, 2, 3]
  min_per_type: 2

board_setting:
  grid_sizes: [3, 5]
  column_length: 24

pool_setting:
  pool_size: 8
  max_attempts: 5000

solver_setting:
  max_dequeue: 100000
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"alpha.yaml": {Data: []byte(alphaYAML)},
		"beta.yaml":  {Data: []byte(betaYAML)},
	}
}

func testLab(t *testing.T) *Matchlab {
	t.Helper()
	lab, err := NewAuto(core.Default(), Configs(testFS()))
	if err != nil {
		t.Fatalf("NewAuto: %v", err)
	}
	return lab
}

func TestNewRequiresFactoryAndConfigs(t *testing.T) {
	if _, err := New(nil, Configs(testFS())); !errs.IsFatal(err) {
		t.Fatalf("nil factory must be fatal, got %v", err)
	}
	if _, err := New(core.Default(), nil); !errs.IsFatal(err) {
		t.Fatalf("empty configs must be fatal, got %v", err)
	}
}

func TestNewAutoRegistersCatalog(t *testing.T) {
	lab := testLab(t)

	ids := lab.IDs()
	if len(ids) != 2 {
		t.Fatalf("want 2 games, got %v", ids)
	}
	if _, ok := lab.EntryByName("alpha"); !ok {
		t.Fatal("alpha not registered")
	}

	sum, err := lab.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(sum) != 2 {
		t.Fatalf("want 2 summaries, got %d", len(sum))
	}
	for _, s := range sum {
		if s.Name == "beta" {
			if len(s.GridSizes) != 2 || len(s.Tiles) != 3 {
				t.Fatalf("beta summary wrong: %+v", s)
			}
		}
	}
}

func TestRegisterAllRejectsDuplicateID(t *testing.T) {
	mfs := testFS()
	dup := `game_name: gamma
game_id: 1

tile_setting:
  tiles: [1, 2, 3]
  min_per_type: 2

board_setting:
  grid_sizes: [3]
  column_length: 24

pool_setting:
  pool_size: 8
  max_attempts: 5000

solver_setting:
  max_dequeue: 100000
`
	mfs["gamma.yaml"] = &fstest.MapFile{Data: []byte(dup)}

	if _, err := NewAuto(core.Default(), Configs(mfs)); !errs.IsFatal(err) {
		t.Fatalf("duplicate game id must be fatal, got %v", err)
	}
}

func TestMachineSeedDeterminism(t *testing.T) {
	lab := testLab(t)

	m1, err := lab.NewMachineWithSeed(2, 42)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}
	m2, err := lab.NewMachineWithSeed(2, 42)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}

	for i := 0; i < 50; i++ {
		a := m1.SpinInternal(false)
		b := m2.SpinInternal(false)
		if a.GridSize != b.GridSize {
			t.Fatalf("spin %d: size %d != %d", i, a.GridSize, b.GridSize)
		}
		for j := range a.Offsets {
			if a.Offsets[j] != b.Offsets[j] {
				t.Fatalf("spin %d: offsets diverge at %d", i, j)
			}
		}
		for j := range a.Cells {
			if a.Cells[j] != b.Cells[j] {
				t.Fatalf("spin %d: cells diverge at %d", i, j)
			}
		}
	}
}

func TestSpinBoardInvariants(t *testing.T) {
	lab := testLab(t)

	m, err := lab.NewMachineWithSeed(1, 7)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}
	ps, err := lab.PuzzleSettingById(1)
	if err != nil {
		t.Fatalf("PuzzleSettingById: %v", err)
	}

	tiles := ps.TileSetting.Tiles
	counts := make([]int, len(tiles))

	for i := 0; i < 200; i++ {
		sr := m.SpinInternal(false)

		g := board.Grid{Size: sr.GridSize, Cells: sr.Cells}
		if g.HasRun() {
			t.Fatalf("spin %d: board contains a run: %v", i, sr.Cells)
		}

		g.CountTiles(tiles, counts)
		for ti, c := range counts {
			if c < ps.TileSetting.MinPerType {
				t.Fatalf("spin %d: tile %d appears %d times, min %d",
					i, tiles[ti], c, ps.TileSetting.MinPerType)
			}
		}

		for _, off := range sr.Offsets {
			if off < 0 || off >= ps.BoardSetting.ColumnLength {
				t.Fatalf("spin %d: offset %d out of strip range", i, off)
			}
		}
	}
}

func TestSpinRejectsUnknownSize(t *testing.T) {
	lab := testLab(t)

	m, err := lab.NewMachineWithSeed(1, 7)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}

	bad := 4
	_, err = m.Spin(&dto.SpinRequest{GameName: "alpha", GameId: 1, Size: &bad})
	if !errs.IsWarn(err) {
		t.Fatalf("unconfigured size must be warn, got %v", err)
	}
}

func TestSpinRejectsMismatchedGame(t *testing.T) {
	lab := testLab(t)

	m, err := lab.NewMachineWithSeed(1, 7)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}
	if _, err := m.Spin(&dto.SpinRequest{GameName: "alpha", GameId: 2}); err == nil {
		t.Fatal("mismatched gid must fail")
	}
	if _, err := m.Spin(&dto.SpinRequest{GameName: "beta", GameId: 1}); err == nil {
		t.Fatal("mismatched game name must fail")
	}
}

// 回放：帶入前一局的 start_b64u，必須重現同一盤面，
// 且回放不得污染機台當下的 RNG 流水。
func TestSpinReplayReproducesBoard(t *testing.T) {
	lab := testLab(t)

	m, err := lab.NewMachineWithSeed(1, 99)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}

	req := &dto.SpinRequest{GameName: "alpha", GameId: 1, Solve: true}
	first, err := m.Spin(req)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if first.State.StartCoreSnapB64U == "" || first.State.AfterCoreSnapB64U == "" {
		t.Fatalf("spin state must carry both snapshots: %+v", first.State)
	}

	// 先讓機台往前走幾局，再回放第一局
	for i := 0; i < 5; i++ {
		m.SpinInternal(false)
	}
	live, err := m.SnapshotCore()
	if err != nil {
		t.Fatalf("SnapshotCore: %v", err)
	}

	replayReq := &dto.SpinRequest{
		GameName:   "alpha",
		GameId:     1,
		Solve:      true,
		StartState: &dto.StartState{StartCoreSnapB64U: first.State.StartCoreSnapB64U},
	}
	replay, err := m.Spin(replayReq)
	if err != nil {
		t.Fatalf("replay Spin: %v", err)
	}

	if replay.GridSize != first.GridSize {
		t.Fatalf("replay size %d != %d", replay.GridSize, first.GridSize)
	}
	for i := range first.Cells {
		if replay.Cells[i] != first.Cells[i] {
			t.Fatalf("replay cells diverge at %d", i)
		}
	}
	if replay.State.AfterCoreSnapB64U != first.State.AfterCoreSnapB64U {
		t.Fatal("replay after snapshot differs")
	}
	if first.Solve == nil || replay.Solve == nil || replay.Solve.Moves != first.Solve.Moves {
		t.Fatalf("replay solve differs: %+v vs %+v", replay.Solve, first.Solve)
	}

	// 回放後機台必須回到回放前的 RNG 狀態
	after, err := m.SnapshotCore()
	if err != nil {
		t.Fatalf("SnapshotCore: %v", err)
	}
	if string(after) != string(live) {
		t.Fatal("replay leaked RNG state into the machine")
	}
}

// 續玩：把上一段的 after_b64u 當作下一段的 start_b64u，
// 結果必須與不中斷連打的第二局一致。
func TestSpinResumeContinuesStream(t *testing.T) {
	lab := testLab(t)

	m1, err := lab.NewMachineWithSeed(1, 123)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}
	req := &dto.SpinRequest{GameName: "alpha", GameId: 1}
	r1, err := m1.Spin(req)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	r2, err := m1.Spin(req)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	m2, err := lab.NewMachineWithSeed(1, 123)
	if err != nil {
		t.Fatalf("NewMachineWithSeed: %v", err)
	}
	if _, err := m2.Spin(req); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	resume, err := m2.Spin(&dto.SpinRequest{
		GameName:   "alpha",
		GameId:     1,
		StartState: &dto.StartState{StartCoreSnapB64U: r1.State.AfterCoreSnapB64U},
	})
	if err != nil {
		t.Fatalf("resume Spin: %v", err)
	}
	for i := range r2.Cells {
		if resume.Cells[i] != r2.Cells[i] {
			t.Fatalf("resume cells diverge at %d", i)
		}
	}
}

func TestNewMachineByYAMLValidatesAgainstCatalog(t *testing.T) {
	lab := testLab(t)

	// 與 catalog 相符：放行
	if _, err := lab.NewMachineByYAML([]byte(alphaYAML), 1); err != nil {
		t.Fatalf("NewMachineByYAML: %v", err)
	}

	// 未註冊的 gid：Warn
	unknown := `game_name: alpha
game_id: 77

tile_setting:
  tiles: [1, 2, 3]
  min_per_type: 2

board_setting:
  grid_sizes: [3]
  column_length: 24

pool_setting:
  pool_size: 8
  max_attempts: 5000

solver_setting:
  max_dequeue: 100000
`
	if _, err := lab.NewMachineByYAML([]byte(unknown), 1); !errs.IsWarn(err) {
		t.Fatalf("unknown gid must be warn, got %v", err)
	}
}

func TestSimulatorSmallRun(t *testing.T) {
	lab := testLab(t)

	sim, err := lab.NewSimulatorWithSeed(2, 5)
	if err != nil {
		t.Fatalf("NewSimulatorWithSeed: %v", err)
	}
	st, _, err := sim.Sim(true, 100, false)
	if err != nil {
		t.Fatalf("Sim: %v", err)
	}
	if st.Summary.Rounds != 100 {
		t.Fatalf("rounds = %d, want 100", st.Summary.Rounds)
	}
	if st.Summary.Solved != 100 {
		t.Fatalf("solved = %d, want 100", st.Summary.Solved)
	}
	if st.Summary.Found+st.Summary.NoSolution != st.Summary.Solved {
		t.Fatalf("found %d + nosolution %d != solved %d",
			st.Summary.Found, st.Summary.NoSolution, st.Summary.Solved)
	}
}

func TestSimulatorDeterministicWithSeed(t *testing.T) {
	lab := testLab(t)

	s1, err := lab.NewSimulatorWithSeed(1, 31)
	if err != nil {
		t.Fatalf("NewSimulatorWithSeed: %v", err)
	}
	s2, err := lab.NewSimulatorWithSeed(1, 31)
	if err != nil {
		t.Fatalf("NewSimulatorWithSeed: %v", err)
	}

	r1, _, err := s1.Sim(true, 200, false)
	if err != nil {
		t.Fatalf("Sim: %v", err)
	}
	r2, _, err := s2.Sim(true, 200, false)
	if err != nil {
		t.Fatalf("Sim: %v", err)
	}
	if r1.Summary.Found != r2.Summary.Found ||
		r1.Moves.MovesSum != r2.Moves.MovesSum ||
		r1.Moves.Dequeued != r2.Moves.Dequeued {
		t.Fatalf("same seed must give identical stats: %+v vs %+v", r1.Summary, r2.Summary)
	}
}

func TestRuntimeSpinRoutesByGID(t *testing.T) {
	lab := testLab(t)

	rt, err := lab.BuildRuntime(2)
	if err != nil {
		t.Fatalf("BuildRuntime: %v", err)
	}
	defer rt.Close()

	ctx := context.Background()
	res, err := rt.Spin(ctx, &dto.SpinRequest{GameName: "beta", GameId: 2, Solve: true})
	if err != nil {
		t.Fatalf("runtime Spin: %v", err)
	}
	if res.GameID != 2 || res.GameName != "beta" {
		t.Fatalf("routed to wrong game: %+v", res)
	}
	if res.GridSize != 3 && res.GridSize != 5 {
		t.Fatalf("unexpected grid size %d", res.GridSize)
	}
	if len(res.Cells) != res.GridSize*res.GridSize {
		t.Fatalf("cells length %d for size %d", len(res.Cells), res.GridSize)
	}

	if _, err := rt.Spin(ctx, &dto.SpinRequest{GameName: "nope", GameId: 404}); err == nil {
		t.Fatal("unknown gid must fail")
	}
}
