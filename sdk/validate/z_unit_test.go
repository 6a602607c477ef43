package validate

import (
	"testing"

	"github.com/zintix-labs/matchlab/sdk/board"
	"github.com/zintix-labs/matchlab/sdk/core"
	"github.com/zintix-labs/matchlab/sdk/reel"
	"github.com/zintix-labs/matchlab/spec"
)

var testTiles = []spec.TileID{1, 2, 3, 4, 5, 6, 7}

func testStrips(t *testing.T, gridSize, columnLength int) [][]int16 {
	t.Helper()
	b, err := reel.NewStripBuilder(testTiles, gridSize, columnLength, 0)
	if err != nil {
		t.Fatalf("strip builder err: %v", err)
	}
	return b.BuildAll(gridSize)
}

func TestMatchFreeRejection(t *testing.T) {
	// 行 0 的輪帶開頭藏著 1,1 與行 1 行 2 同列同值 -> offset 全零時橫向 3 連
	strips := [][]int16{
		{9, 2, 3, 1, 2, 3},
		{9, 3, 1, 2, 3, 1},
		{9, 1, 2, 3, 1, 2},
	}
	v := NewValidator(strips, 3, []spec.TileID{1, 2, 3, 9}, 0)
	if v.IsValid([]int{0, 0, 0}) {
		t.Fatal("row of three 9s must be rejected")
	}
}

func TestBalanceRejection(t *testing.T) {
	strips := testStrips(t, 5, 32)
	// minPer 拉到不可能的高度，所有向量都該被平衡檢查拒絕
	v := NewValidator(strips, 5, testTiles, 10)
	c := core.New(core.Default().New(11))
	p := BuildPool(v, c, 8, 500)
	if !p.Degraded {
		t.Fatal("impossible balance must degrade the pool")
	}
	if p.Size() != 1 {
		t.Fatalf("degraded pool must hold exactly the fallback vector, got %d", p.Size())
	}
	for _, off := range p.Offsets[0] {
		if off != 0 {
			t.Fatal("fallback must be the all-zero vector")
		}
	}
}

func TestPoolEntriesSatisfyInvariants(t *testing.T) {
	strips := testStrips(t, 5, 32)
	v := NewValidator(strips, 5, testTiles, 3)
	c := core.New(core.Default().New(99))
	p := BuildPool(v, c, 16, 10_000)

	if p.Degraded {
		t.Fatal("reference parameters must not degrade (gridSize=5, 7 tiles, min 3, columnLength=32)")
	}
	if p.Size() == 0 {
		t.Fatal("pool must not be empty")
	}

	counts := make([]int, len(testTiles))
	for _, offs := range p.Offsets {
		g := board.Materialize(strips, offs, 5)
		if g.HasRun() {
			t.Fatalf("pool entry %v materializes a run", offs)
		}
		g.CountTiles(testTiles, counts)
		for i, n := range counts {
			if n < 3 {
				t.Fatalf("pool entry %v: tile %d count %d < 3", offs, testTiles[i], n)
			}
		}
	}
}

func TestPoolDedup(t *testing.T) {
	strips := testStrips(t, 5, 32)
	v := NewValidator(strips, 5, testTiles, 0)
	c := core.New(core.Default().New(5))
	p := BuildPool(v, c, 32, 10_000)

	seen := map[string]struct{}{}
	for _, offs := range p.Offsets {
		k := offsetKey(offs)
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate vector in pool: %v", offs)
		}
		seen[k] = struct{}{}
	}
}

func TestSampleWithReplacement(t *testing.T) {
	strips := testStrips(t, 5, 32)
	v := NewValidator(strips, 5, testTiles, 3)
	c := core.New(core.Default().New(21))
	p := BuildPool(v, c, 8, 10_000)
	for i := 0; i < 100; i++ {
		offs := p.Sample(c)
		if len(offs) != 5 {
			t.Fatalf("sampled vector has wrong arity: %v", offs)
		}
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	strips := testStrips(t, 3, 9)
	v := NewValidator(strips, 3, testTiles, 0)
	a := make([]int, 3)
	b := make([]int, 3)
	v.Normalize([]int{2, 5, 8}, a)
	v.Normalize([]int{11, -4, 26}, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("normalization must identify vectors modulo strip length")
		}
	}
}
