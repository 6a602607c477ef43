package stats

// MoveBuckets
//
// 用來快速定位求解步數 -> DistRecord 位置 O(1)
//
// 請勿修改預設值
//   - 步數區間: [0], [1], [2], [3], [4], [5,8), [8,+inf)，外加 unsolved（界限內無解）
type MoveBuckets struct {
	moveBucketStr []string
	unsolvedIdx   int
	overIdx       int
	farIdx        int
}

// Buckets
//
// 用來快速定位求解步數 -> DistRecord 位置 O(1)
//
// 請勿修改預設值
var Buckets *MoveBuckets = &MoveBuckets{
	moveBucketStr: []string{"[0]", "[1]", "[2]", "[3]", "[4]", "[5,8)", "[8,+inf)", "unsolved"},
	unsolvedIdx:   7,
	overIdx:       5,
	farIdx:        6,
}

func (b *MoveBuckets) MoveBucketStr() []string {
	return b.moveBucketStr
}

// Index 以 (found, moves) 定位桶位；found=false 一律落在 unsolved。
func (b *MoveBuckets) Index(found bool, moves int) int {
	if !found {
		return b.unsolvedIdx
	}
	if moves < 5 {
		return moves
	}
	if moves < 8 {
		return b.overIdx
	}
	return b.farIdx
}
