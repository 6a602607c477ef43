package ops

// Gravity 執行標準的單格 tile 下落邏輯 (Column-wise compact)
//
//   - cells: 盤面數據 (將被原地修改；row-major、邊長 size)
//   - size: 盤面邊長
//   - fillIdxBuf: (選用) 用於回傳每行需要補 tile 的最深空位，若為 nil 則內部不紀錄；
//     該行無空位時回傳 -size+c（往上步進一格即越界，Refill 會跳過）
func Gravity(cells []int16, size int, fillIdxBuf []int) {
	for c := 0; c < size; c++ {
		wp := (size-1)*size + c // Write Pointer (寫入位置，從底開始)

		// 自底向上掃描
		for r := size - 1; r >= 0; r-- {
			rp := r*size + c // Read Pointer
			if cells[rp] != 0 {
				if rp != wp {
					cells[wp] = cells[rp]
				}
				wp -= size
			}
		}

		// 紀錄補圖起始點 (如果調用者需要)
		if fillIdxBuf != nil && c < len(fillIdxBuf) {
			fillIdxBuf[c] = wp
		}

		// 上方剩餘空間補 0
		for w := wp; w >= 0; w -= size {
			cells[w] = 0
		}
	}
}
