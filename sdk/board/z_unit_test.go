package board

import (
	"testing"

	"github.com/zintix-labs/matchlab/spec"
)

func testStrips(cols, length int) [][]int16 {
	strips := make([][]int16, cols)
	for c := range strips {
		strip := make([]int16, length)
		for i := range strip {
			// 1,2,3 循環，行與行之間錯開避免初始 match
			strip[i] = int16((i+c)%3 + 1)
		}
		strips[c] = strip
	}
	return strips
}

func TestMaterializeDeterminism(t *testing.T) {
	strips := testStrips(5, 12)
	offsets := []int{0, 3, 7, 1, 11}
	a := Materialize(strips, offsets, 5)
	b := Materialize(strips, offsets, 5)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("materialize not deterministic at cell %d", i)
		}
	}
}

func TestTileAtRoundTrip(t *testing.T) {
	strips := testStrips(5, 12)
	offsets := []int{0, 3, 7, 1, 11}
	g := Materialize(strips, offsets, 5)
	for col := 0; col < 5; col++ {
		for row := 0; row < 5; row++ {
			if got, want := TileAt(strips, offsets[col], col, row), g.At(col, row); got != want {
				t.Fatalf("cell (%d,%d): TileAt=%d materialize=%d", col, row, got, want)
			}
		}
	}
}

func TestOffsetWrapEquivalence(t *testing.T) {
	strips := testStrips(3, 9)
	a := Materialize(strips, []int{2, 5, 8}, 3)
	b := Materialize(strips, []int{2 + 9, 5 - 9, 8 + 18}, 3)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatal("offsets are not equivalent modulo strip length")
		}
	}
}

func TestHasRun(t *testing.T) {
	g := New(4)
	copy(g.Cells, []int16{
		1, 2, 3, 1,
		2, 3, 1, 2,
		3, 1, 2, 3,
		1, 2, 3, 1,
	})
	if g.HasRun() {
		t.Fatal("no run expected")
	}
	g.Set(0, 1, 9)
	g.Set(1, 1, 9)
	g.Set(2, 1, 9)
	if !g.HasRun() {
		t.Fatal("horizontal run not detected")
	}

	v := New(4)
	copy(v.Cells, []int16{
		1, 2, 3, 1,
		5, 3, 1, 2,
		5, 1, 2, 3,
		5, 2, 3, 1,
	})
	if !v.HasRun() {
		t.Fatal("vertical run not detected")
	}
}

func TestCloneIndependence(t *testing.T) {
	g := New(3)
	g.Set(0, 0, 7)
	c := g.Clone()
	c.Set(0, 0, 8)
	if g.At(0, 0) != 7 {
		t.Fatal("clone is not independent")
	}
	if g.Key() == c.Key() {
		t.Fatal("key must differ for different contents")
	}
}

func TestCountTiles(t *testing.T) {
	g := New(3)
	copy(g.Cells, []int16{1, 1, 2, 2, 3, 3, 1, 2, 3})
	tiles := []spec.TileID{1, 2, 3}
	counts := make([]int, 3)
	g.CountTiles(tiles, counts)
	for i, want := range []int{3, 3, 3} {
		if counts[i] != want {
			t.Fatalf("tile %d count = %d, want %d", tiles[i], counts[i], want)
		}
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range access")
		}
	}()
	g := New(3)
	_ = g.At(3, 0)
}
