package ops

// Refill 堆疊補盤：配合 Gravity 使用，從 fillIdxBuf 開始往上補
//
// 補進來的 tile 由該行輪帶「往回」續讀：具現化時第 c 行的可見視窗是
// strip[(off+r) mod n]，因此從頂端進場的新 tile 依序取 off-1、off-2…（迴繞）。
//
//   - cells: 盤面 (原地修改；row-major、邊長 size)
//   - strips: 各行輪帶（board session 的 strips）
//   - fillIdxBuf: 每行開始補的位置 (通常由 Gravity 回傳)
//   - stripPos: 每行目前輪帶讀取到的位置 (Stateful，會被修改)
func Refill(cells []int16, size int, strips [][]int16, fillIdxBuf []int, stripPos []int) {
	for c, startRowPtr := range fillIdxBuf {
		// 如果該行滿了 (startRowPtr < 0)，就跳過
		if startRowPtr < 0 {
			continue
		}

		pos := stripPos[c]
		strip := strips[c]
		stripLen := len(strip)

		// 從起始點往上補到頂 (0)
		for w := startRowPtr; w >= 0; w -= size {
			pos-- // 先--
			// 處理輪帶回捲
			if pos < 0 {
				pos = stripLen - 1
			}
			// 填值
			cells[w] = strip[pos]
		}
		// 更新狀態回 caller
		stripPos[c] = pos
	}
}

// RefillByHole 穿透補盤：掃描全盤，見縫插針
//
// 相較 Refill 少了 fillIdxBuf，直接掃描全盤補足，性能差一點，但更為萬用
//   - cells: 盤面 (原地修改)
//   - strips: 各行輪帶
//   - stripPos: 每行目前輪帶讀取到的位置 (Stateful，會被修改)
//   - size: 盤面邊長
func RefillByHole(cells []int16, size int, strips [][]int16, stripPos []int) {
	for c := 0; c < size; c++ {
		pos := stripPos[c]
		strip := strips[c]
		stripLen := len(strip)

		// 自底向上掃描
		for r := size - 1; r >= 0; r-- {
			idx := r*size + c
			// 只有是空位 (0) 才補
			if cells[idx] == 0 {
				pos-- // 先--
				if pos < 0 {
					pos = stripLen - 1
				}
				cells[idx] = strip[pos]
			}
		}
		stripPos[c] = pos
	}
}
