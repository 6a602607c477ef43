package reel

import (
	"testing"

	"github.com/zintix-labs/matchlab/spec"
)

var testTiles = []spec.TileID{1, 2, 3, 4, 5, 6, 7}

func TestBuildStripLength(t *testing.T) {
	b, err := NewStripBuilder(testTiles, 5, 32, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	strips := b.BuildAll(5)
	if len(strips) != 5 {
		t.Fatalf("want 5 strips, got %d", len(strips))
	}
	for col, s := range strips {
		if len(s) != 32 {
			t.Fatalf("strip %d length = %d, want 32", col, len(s))
		}
	}
}

func TestNoTripleInStrip(t *testing.T) {
	b, _ := NewStripBuilder(testTiles, 5, 32, 3)
	for _, s := range b.BuildAll(5) {
		for i := 2; i < len(s); i++ {
			if s[i] == s[i-1] && s[i] == s[i-2] {
				t.Fatalf("strip contains a vertical triple at %d: %v", i, s[:i+1])
			}
		}
	}
}

func TestCrossColumnRuleInWindow(t *testing.T) {
	b, _ := NewStripBuilder(testTiles, 5, 32, 3)
	strips := b.BuildAll(5)
	// 初始視窗內：左鄰行 (i-1,i) 相等時，本行第 i 格不得取同值
	for col := 1; col < len(strips); col++ {
		left := strips[col-1]
		cur := strips[col]
		for i := 1; i < 5; i++ {
			if left[i] == left[i-1] && cur[i] == left[i] {
				t.Fatalf("cross-column rule violated at col %d row %d", col, i)
			}
		}
	}
}

func TestBalanceSpread(t *testing.T) {
	b, _ := NewStripBuilder(testTiles, 5, 35, 3)
	s := b.BuildStrip(0, nil)
	counts := map[int16]int{}
	for _, v := range s {
		counts[v]++
	}
	// 35 格 / 7 類：least-used 策略下各類用量必然貼近 5
	for _, tile := range testTiles {
		c := counts[int16(tile)]
		if c < 3 || c > 7 {
			t.Fatalf("tile %d count %d is badly unbalanced", tile, c)
		}
	}
}

func TestBuildDeterminism(t *testing.T) {
	a, _ := NewStripBuilder(testTiles, 5, 32, 3)
	b, _ := NewStripBuilder(testTiles, 5, 32, 3)
	sa := a.BuildAll(5)
	sb := b.BuildAll(5)
	for col := range sa {
		for i := range sa[col] {
			if sa[col][i] != sb[col][i] {
				t.Fatalf("strip generation not deterministic at col %d cell %d", col, i)
			}
		}
	}
}

func TestConstructionFailFast(t *testing.T) {
	if _, err := NewStripBuilder(nil, 5, 32, 3); err == nil {
		t.Fatal("empty catalog must be rejected")
	}
	if _, err := NewStripBuilder(testTiles, 5, 9, 3); err == nil {
		t.Fatal("short column length must be rejected")
	}
	if _, err := NewStripBuilder(testTiles, 5, 32, 4); err == nil {
		t.Fatal("infeasible min_per_type must be rejected")
	}
}
