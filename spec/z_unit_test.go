package spec

import (
	"strings"
	"testing"

	"github.com/zintix-labs/matchlab/errs"
)

const validYAML = `
game_name: classic
game_id: 1001
tile_setting:
  tiles: [1, 2, 3, 4, 5, 6, 7]
  min_per_type: 3
board_setting:
  grid_sizes: [5]
  column_length: 32
pool_setting:
  pool_size: 16
  max_attempts: 2000
solver_setting:
  max_dequeue: 50000
`

func TestGetPuzzleSettingByYAML(t *testing.T) {
	ps, err := GetPuzzleSettingByYAML([]byte(validYAML))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ps.GameName != "classic" || ps.GameID != 1001 {
		t.Fatalf("header parse failed: %+v", ps)
	}
	if len(ps.TileSetting.Tiles) != 7 || ps.TileSetting.MinPerType != 3 {
		t.Fatalf("tile setting parse failed: %+v", ps.TileSetting)
	}
	if ps.BoardSetting.MaxGridSize != 5 || ps.BoardSetting.MinGridSize != 5 {
		t.Fatalf("board setting derive failed: %+v", ps.BoardSetting)
	}
}

func TestPoolSolverDefaults(t *testing.T) {
	yml := strings.Replace(validYAML, "pool_size: 16", "pool_size: 0", 1)
	yml = strings.Replace(yml, "max_dequeue: 50000", "max_dequeue: 0", 1)
	ps, err := GetPuzzleSettingByYAML([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ps.PoolSetting.PoolSize != defaultPoolSize {
		t.Fatalf("pool default not applied: %d", ps.PoolSetting.PoolSize)
	}
	if ps.SolverSetting.MaxDequeue != defaultMaxDequeue {
		t.Fatalf("solver default not applied: %d", ps.SolverSetting.MaxDequeue)
	}
}

func TestInfeasibleMinPerType(t *testing.T) {
	// 7 types x 4 = 28 > 25 cells
	yml := strings.Replace(validYAML, "min_per_type: 3", "min_per_type: 4", 1)
	_, err := GetPuzzleSettingByYAML([]byte(yml))
	if err == nil {
		t.Fatal("expected feasibility rejection")
	}
	if !errs.IsFatal(err) {
		t.Fatalf("feasibility violation must be fatal, got %v", err)
	}
}

func TestShortColumnLength(t *testing.T) {
	yml := strings.Replace(validYAML, "column_length: 32", "column_length: 9", 1)
	if _, err := GetPuzzleSettingByYAML([]byte(yml)); err == nil {
		t.Fatal("expected column_length rejection")
	}
}

func TestTileCatalogRules(t *testing.T) {
	cases := []struct {
		name  string
		tiles string
	}{
		{"empty", "[]"},
		{"too few", "[1, 2]"},
		{"reserved zero", "[0, 1, 2, 3]"},
		{"duplicate", "[1, 2, 2, 3]"},
	}
	for _, tc := range cases {
		yml := strings.Replace(validYAML, "[1, 2, 3, 4, 5, 6, 7]", tc.tiles, 1)
		yml = strings.Replace(yml, "min_per_type: 3", "min_per_type: 0", 1)
		if _, err := GetPuzzleSettingByYAML([]byte(yml)); err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}
