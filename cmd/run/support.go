package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math"
	"math/big"
	"strconv"

	"github.com/zintix-labs/matchlab"
	"github.com/zintix-labs/matchlab/demo/demo_configs"
	"github.com/zintix-labs/matchlab/sdk/core"
	"github.com/zintix-labs/matchlab/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	name      string
	id        spec.GID
	worker    int
	spins     int
	solve     bool
	seed      int64
	pprofmode string
}

type gidFlag struct{ p *spec.GID }

func (f gidFlag) String() string { return fmt.Sprint(uint(*f.p)) }
func (f gidFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return err
	}
	*f.p = spec.GID(uint(u))
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.Var(gidFlag{&cfg.id}, "game", "target game id")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.spins, "spins", 1000000, "spins per worker")
	flag.BoolVar(&cfg.solve, "solve", true, "run the minimum-swap solver every spin")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

// 這裡解析並分支要執行的模擬器
func executeSimulator() {
	cfg.valid() // 基本檢查

	lab, err := matchlab.NewAuto(
		core.Default(),
		matchlab.Configs(demo_configs.FS),
	)
	if err != nil {
		log.Fatal(err)
	}
	s, err := lab.NewSimulatorWithSeed(cfg.id, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	ent, _ := lab.EntryById(cfg.id)
	cfg.name = ent.Name
	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	if cfg.worker == 1 { // 單線程
		p.Printf("%s[GAME:%s] [SOLVE:%t] [SPINS:%d]%s\n", green, cfg.name, cfg.solve, cfg.spins, reset)
		st, used, _ := s.Sim(cfg.solve, cfg.spins, true)
		st.StdOut(used)
	} else {
		p.Printf("%s[WORKERS:%d] [GAME:%s] [SOLVE:%t] [SPINS:%d]%s\n", green, cfg.worker, cfg.name, cfg.solve, cfg.worker*cfg.spins, reset)
		st, used, _ := s.SimMP(cfg.solve, cfg.spins, cfg.worker, true) // 併發
		st.StdOut(used)
	}
}

func (cfg *config) valid() {
	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}

	// 轉數檢查
	if cfg.spins < 1 {
		log.Fatal("value err : spins must > 0")
	}
}
