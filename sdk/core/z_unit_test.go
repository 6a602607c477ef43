package core

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(Default().New(42))
	b := New(Default().New(42))
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("sequence diverged at %d", i)
		}
	}
}

func TestDifferentSeedDiverges(t *testing.T) {
	a := New(Default().New(1))
	b := New(Default().New(2))
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 100 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestIntNBounds(t *testing.T) {
	c := New(Default().New(7))
	if c.IntN(0) != -1 || c.IntN(-5) != -1 {
		t.Fatal("IntN sentinel broken")
	}
	for i := 0; i < 10_000; i++ {
		v := c.IntN(32)
		if v < 0 || v >= 32 {
			t.Fatalf("IntN out of range: %d", v)
		}
	}
	if c.UintN(0) != 0 {
		t.Fatal("UintN(0) must be 0")
	}
}

func TestFloat64Range(t *testing.T) {
	c := New(Default().New(9))
	for i := 0; i < 10_000; i++ {
		f := c.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := New(Default().New(1234))
	for i := 0; i < 10; i++ {
		c.Uint64()
	}
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot err: %v", err)
	}
	want := make([]uint64, 20)
	for i := range want {
		want[i] = c.Uint64()
	}
	if err := c.Restore(snap); err != nil {
		t.Fatalf("restore err: %v", err)
	}
	for i := range want {
		if got := c.Uint64(); got != want[i] {
			t.Fatalf("restored sequence diverged at %d", i)
		}
	}
}

func TestFillOffsets(t *testing.T) {
	c := New(Default().New(5))
	dst := make([]int, 8)
	c.FillOffsets(dst, 32)
	for _, v := range dst {
		if v < 0 || v >= 32 {
			t.Fatalf("offset out of range: %d", v)
		}
	}
}

func TestPick(t *testing.T) {
	c := New(Default().New(3))
	if c.Pick(nil) != -1 {
		t.Fatal("empty pick must return -1")
	}
	src := []int{5, 6, 7}
	for i := 0; i < 100; i++ {
		v := c.Pick(src)
		if v < 5 || v > 7 {
			t.Fatalf("picked value not in src: %d", v)
		}
	}
}
