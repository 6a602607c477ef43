package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/matchlab/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// StatReport 遊戲統計報告
type StatReport struct {
	Summary *SummaryReport `json:"Summary"`
	Moves   *MovesReport   `json:"Moves"`
	Dist    *DistReport    `json:"Dist"`
	isDone  bool
}

type SummaryReport struct {
	GameName     string   `json:"GameName"`
	GameId       spec.GID `json:"GameId"`
	GridSizes    []int    `json:"GridSizes"`
	Rounds       int      `json:"Rounds"`
	Solved       int      `json:"Solved"`       // 執行過求解的局數
	Found        int      `json:"Found"`        // 求解有解的局數
	NoSolution   int      `json:"NoSolution"`   // 界限內無解的局數
	Degraded     int      `json:"Degraded"`     // 來自降級池的局數
	FoundRate    float64  `json:"FoundRate"`    // Found / Solved
	FoundCI      CI       `json:"FoundCI"`      // 95% Clopper-Pearson
	DegradedRate float64  `json:"DegradedRate"` // Degraded / Rounds
	DegradedCI   CI       `json:"DegradedCI"`   // 95% Clopper-Pearson
	AvgMoves     float64  `json:"AvgMoves"`     // 有解局的平均步數
	Std          float64  `json:"Std"`          // 有解局步數標準差
	Cv           float64  `json:"Cv"`
}

// MovesReport 求解步數統計
//
// 紀錄時不紀錄，避免轉型成本。紀錄完成後Done()會將結果整理填入
type MovesReport struct {
	MovesSum   int `json:"MovesSum"`   // 有解局步數和
	MovesSqSum int `json:"MovesSqSum"` // 平方和
	Dequeued   int `json:"Dequeued"`   // BFS 出隊狀態總數（成本觀測）
}

// DistReport 落點統計
type DistReport struct {
	MoveBucket  []string  `json:"MoveBucket"`
	MoveCollect []int     `json:"MoveCollect"`
	MoveDist    []float64 `json:"MoveDist"`
	GridSizes   []int     `json:"GridSizes"`
	SizeCollect []int     `json:"SizeCollect"`
	SizeDist    []float64 `json:"SizeDist"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 所有遊戲統計過程因為性能原因只處理int的紀錄，所以統計完成後
//
// 請使用 Done 來通知報表統計已經完成，可以一次性計算統計結果
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.FoundRate = s.FoundRate()
	s.Summary.FoundCI = clopperPearson(s.Summary.Found, s.Summary.Solved, 0.05)
	s.Summary.DegradedRate = s.DegradedRate()
	s.Summary.DegradedCI = clopperPearson(s.Summary.Degraded, s.Summary.Rounds, 0.05)
	s.Summary.AvgMoves = s.AvgMoves()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()

	s.isDone = true
}

// FoundRate 回傳求解有解比例（有解局 / 求解局）
func (s *StatReport) FoundRate() float64 {
	if s.Summary.Solved == 0 {
		return 0
	}
	return float64(s.Summary.Found) / float64(s.Summary.Solved)
}

// DegradedRate 回傳降級盤面比例
func (s *StatReport) DegradedRate() float64 {
	if s.Summary.Rounds == 0 {
		return 0
	}
	return float64(s.Summary.Degraded) / float64(s.Summary.Rounds)
}

// AvgMoves 回傳有解局的平均最少交換步數
func (s *StatReport) AvgMoves() float64 {
	if s.Summary.Found == 0 {
		return 0
	}
	return float64(s.Moves.MovesSum) / float64(s.Summary.Found)
}

// Std 回傳有解局步數的標準差
func (s *StatReport) Std() float64 {
	n := s.Summary.Found
	if n < 2 {
		return 0
	}
	nf := float64(n)
	sum := float64(s.Moves.MovesSum)
	variance := (float64(s.Moves.MovesSqSum) - sum*sum/nf) / (nf - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳有解局步數的變異係數
func (s *StatReport) Cv() float64 {
	avg := s.AvgMoves()
	std := s.Std()
	if avg <= 0 {
		return 0
	}
	return (std / avg)
}

// clopperPearson 以 Beta PPF 映射計算二項比例的精確信賴區間；處理 k=0 / k=n 邊界。
func clopperPearson(k, n int, alpha float64) CI {
	if n == 0 {
		return CI{}
	}
	ci := CI{}
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return ci
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

func (s *StatReport) StdOut(ut time.Duration) {
	formatDuration(ut, s.Summary.Rounds)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.GameName, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, spins int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(spins) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsps : %d spins/sec\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		s = s % 60
		p.Printf("used: %dm %ds\nsps : %d spins/sec\n", m, s, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsps : %d spins/sec\n", h, m, s, sps)
}

// StdOut

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Game Name":     p.Sprintf("%s", s.Summary.GameName),
		"Game ID":       fmt.Sprintf("%d", s.Summary.GameId),
		"Total Rounds":  p.Sprintf("%d", s.Summary.Rounds),
		"Solved Rounds": p.Sprintf("%d", s.Summary.Solved),
		"Found Rate":    p.Sprintf("%.2f %%", 100.0*s.Summary.FoundRate),
		"Found 95% CI":  p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.FoundCI.Lo, 100.0*s.Summary.FoundCI.Hi),
		"No Solution":   p.Sprintf("%d", s.Summary.NoSolution),
		"Degraded":      p.Sprintf("%d", s.Summary.Degraded),
		"Avg Moves":     p.Sprintf("%.3f", s.Summary.AvgMoves),
		"STD":           p.Sprintf("%.3f", s.Summary.Std),
		"CV":            p.Sprintf("%.3f", s.Summary.Cv),
	}
	keys := []string{"Game Name", "Game ID", "Total Rounds", "Solved Rounds", "Found Rate", "Found 95% CI", "No Solution", "Degraded", "Avg Moves", "STD", "CV"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
