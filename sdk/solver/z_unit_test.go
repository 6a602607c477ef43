package solver

import (
	"testing"

	"github.com/zintix-labs/matchlab/sdk/board"
)

func grid3(cells ...int16) board.Grid {
	return board.Grid{Size: 3, Cells: cells}
}

func TestAlreadyMatched(t *testing.T) {
	g := grid3(
		1, 1, 1,
		2, 3, 2,
		3, 2, 3,
	)
	res := New(0).Solve(g)
	if !res.Found || res.Moves != 0 {
		t.Fatalf("matched board must solve in 0 moves, got %+v", res)
	}
}

func TestOneSwap(t *testing.T) {
	// 交換 (col2,row0) 與 (col2,row1) 後第 0 列成為 1,1,1
	g := grid3(
		1, 1, 2,
		2, 2, 1,
		3, 1, 3,
	)
	res := New(0).Solve(g)
	if !res.Found || res.Moves != 1 {
		t.Fatalf("want exactly 1 move, got %+v", res)
	}
}

func TestTwoSwapsOptimal(t *testing.T) {
	// 三個值各自佔一條對角線：任何值的三枚棋子列座標與行座標皆互異，
	// 單次交換最多讓其中一枚移動一步，不可能湊齊一條線 -> 下界為 2。
	// 而把 (0,0) 的 1 右移、(2,2) 的 1 左移即可在 col 1 成縱向三連 -> 上界為 2。
	g := grid3(
		1, 3, 2,
		2, 1, 3,
		3, 2, 1,
	)
	res := New(0).Solve(g)
	if !res.Found || res.Moves != 2 {
		t.Fatalf("want exactly 2 moves, got %+v", res)
	}
}

func TestDequeueCeiling(t *testing.T) {
	g := grid3(
		1, 3, 2,
		2, 1, 3,
		3, 2, 1,
	)
	res := New(1).Solve(g)
	if res.Found || !res.Capped || res.Moves != NoSolution {
		t.Fatalf("ceiling of 1 must cap the search, got %+v", res)
	}
}

func TestExhaustionReturnsNoSolution(t *testing.T) {
	// 2x2 盤面四值互異：任何交換序列都湊不出 3 連線，
	// 狀態空間有限，BFS 應自然耗盡而非觸頂。
	g := board.Grid{Size: 2, Cells: []int16{1, 2, 3, 4}}
	res := New(0).Solve(g)
	if res.Found || res.Capped || res.Moves != NoSolution {
		t.Fatalf("exhausted search must report NoSolution, got %+v", res)
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	g := grid3(
		1, 3, 2,
		2, 1, 3,
		3, 2, 1,
	)
	want := append([]int16(nil), g.Cells...)
	New(0).Solve(g)
	for i := range want {
		if g.Cells[i] != want[i] {
			t.Fatal("Solve must not mutate the input grid")
		}
	}
}
