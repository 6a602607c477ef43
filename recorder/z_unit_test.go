package recorder

import (
	"testing"

	"github.com/zintix-labs/matchlab/sdk/buf"
)

func spinOf(size int, solved, found bool, moves int, degraded bool) *buf.SpinResult {
	sr := &buf.SpinResult{GameName: "demo", GameID: 7}
	sr.SetBoard(size, make([]int, size), make([]int16, size*size), degraded)
	if solved {
		sr.SetSolve(found, moves, 10)
	}
	sr.End()
	return sr
}

func TestRecorderCounts(t *testing.T) {
	r, err := NewSpinRecorder("demo", 7, []int{5, 7})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	r.Record(spinOf(5, true, true, 2, false))
	r.Record(spinOf(5, true, true, 0, false))
	r.Record(spinOf(7, true, false, -1, false))
	r.Record(spinOf(7, false, false, 0, true))

	if r.Basic.Rounds != 4 || r.Basic.Solved != 3 || r.Basic.Found != 2 {
		t.Fatalf("basic counts wrong: %+v", r.Basic)
	}
	if r.Basic.NoSolution != 1 || r.Basic.Degraded != 1 {
		t.Fatalf("basic counts wrong: %+v", r.Basic)
	}
	if r.Basic.MovesSum != 2 || r.Basic.MovesSqSum != 4 {
		t.Fatalf("moves accumulation wrong: %+v", r.Basic)
	}

	// Dist: 0步x1, 2步x1, unsolved x1；未求解局不入 move 桶
	if r.Dist.MoveCollect[0] != 1 || r.Dist.MoveCollect[2] != 1 || r.Dist.MoveCollect[7] != 1 {
		t.Fatalf("move dist wrong: %v", r.Dist.MoveCollect)
	}
	if r.Dist.SizeCollect[0] != 2 || r.Dist.SizeCollect[1] != 2 {
		t.Fatalf("size dist wrong: %v", r.Dist.SizeCollect)
	}
}

func TestRecorderDone(t *testing.T) {
	r, _ := NewSpinRecorder("demo", 7, []int{5})
	for i := 0; i < 10; i++ {
		r.Record(spinOf(5, true, true, 1, false))
	}
	report := r.Done()
	report.Done()

	if report.Summary.Rounds != 10 || report.Summary.Found != 10 {
		t.Fatalf("report summary wrong: %+v", report.Summary)
	}
	if report.Summary.AvgMoves != 1.0 {
		t.Fatalf("avg moves = %v, want 1", report.Summary.AvgMoves)
	}
	if report.Dist.MoveDist[1] != 1.0 {
		t.Fatalf("move dist wrong: %v", report.Dist.MoveDist)
	}
}

func TestMergeSpinRecorder(t *testing.T) {
	a, _ := NewSpinRecorder("demo", 7, []int{5})
	b, _ := NewSpinRecorder("demo", 7, []int{5})
	a.Record(spinOf(5, true, true, 1, false))
	b.Record(spinOf(5, true, true, 3, true))

	m, err := MergeSpinRecorder([]*SpinRecorder{a, b})
	if err != nil {
		t.Fatalf("merge err: %v", err)
	}
	if m.Basic.Rounds != 2 || m.Basic.MovesSum != 4 || m.Basic.Degraded != 1 {
		t.Fatalf("merge wrong: %+v", m.Basic)
	}
}

func TestMergeRejectsMismatch(t *testing.T) {
	a, _ := NewSpinRecorder("demo", 7, []int{5})
	b, _ := NewSpinRecorder("other", 8, []int{5})
	if _, err := MergeSpinRecorder([]*SpinRecorder{a, b}); err == nil {
		t.Fatal("merging different games must fail")
	}
}

func TestNewSpinRecorderValidation(t *testing.T) {
	if _, err := NewSpinRecorder("demo", 7, nil); err == nil {
		t.Fatal("empty grid sizes must be rejected")
	}
	if _, err := NewSpinRecorder("demo", 7, []int{2}); err == nil {
		t.Fatal("grid size below 3 must be rejected")
	}
}
