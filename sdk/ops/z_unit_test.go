package ops

import "testing"

// 3x3 盤面, row-major
func TestClear(t *testing.T) {
	cells := []int16{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	Clear(cells, []int{0, 4, 8, 99, -1})
	want := []int16{
		0, 2, 3,
		4, 0, 6,
		7, 8, 0,
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, cells[i], want[i])
		}
	}
}

func TestGravityCompactsColumns(t *testing.T) {
	cells := []int16{
		1, 0, 3,
		0, 5, 0,
		7, 0, 9,
	}
	fill := make([]int, 3)
	Gravity(cells, 3, fill)
	want := []int16{
		0, 0, 0,
		1, 0, 3,
		7, 5, 9,
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, cells[i], want[i])
		}
	}
	// 每行最深空位：col0 -> idx 0, col1 -> idx 4, col2 -> idx 2
	if fill[0] != 0 || fill[1] != 4 || fill[2] != 2 {
		t.Fatalf("fill idx wrong: %v", fill)
	}
}

func TestRefillReadsStripBackward(t *testing.T) {
	size := 3
	cells := []int16{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
	}
	// 每行輪帶長 6；具現化視窗從 offset 3 開始 -> 新 tile 取 2,1,0 倒讀
	strips := [][]int16{
		{10, 11, 12, 13, 14, 15},
		{20, 21, 22, 23, 24, 25},
		{30, 31, 32, 33, 34, 35},
	}
	fill := []int{0, 1, 2}
	pos := []int{3, 3, 3}

	Refill(cells, size, strips, fill, pos)

	if cells[0] != 12 || cells[1] != 22 || cells[2] != 32 {
		t.Fatalf("top row wrong: %v", cells[:3])
	}
	if pos[0] != 2 || pos[1] != 2 || pos[2] != 2 {
		t.Fatalf("strip pos wrong: %v", pos)
	}
}

func TestRefillWrapsAround(t *testing.T) {
	size := 2
	cells := []int16{
		0, 1,
		2, 3,
	}
	strips := [][]int16{
		{10, 11, 12, 13},
		{20, 21, 22, 23},
	}
	fill := []int{0, -1}
	pos := []int{0, 0}

	Refill(cells, size, strips, fill, pos)

	// col0 從 offset 0 倒讀一格 -> 迴繞到輪帶尾
	if cells[0] != 13 {
		t.Fatalf("wrap read wrong: %d", cells[0])
	}
	if pos[0] != 3 || pos[1] != 0 {
		t.Fatalf("strip pos wrong: %v", pos)
	}
}

func TestRefillByHole(t *testing.T) {
	size := 2
	cells := []int16{
		0, 1,
		2, 0,
	}
	strips := [][]int16{
		{10, 11, 12, 13},
		{20, 21, 22, 23},
	}
	pos := []int{1, 1}

	RefillByHole(cells, size, strips, pos)

	if cells[0] != 10 || cells[3] != 20 {
		t.Fatalf("holes not refilled: %v", cells)
	}
	if pos[0] != 0 || pos[1] != 0 {
		t.Fatalf("strip pos wrong: %v", pos)
	}
}

func TestGravityFullColumnUntouched(t *testing.T) {
	cells := []int16{
		1, 2,
		3, 4,
	}
	fill := make([]int, 2)
	Gravity(cells, 2, fill)
	want := []int16{1, 2, 3, 4}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, cells[i], want[i])
		}
	}
	// 滿行：wp 走到負值，Refill 必須跳過
	if fill[0] >= 0 || fill[1] >= 0 {
		t.Fatalf("full column fill idx must be negative: %v", fill)
	}
}
