package v1

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"math"
	"math/big"
	"net/http"
	"strconv"

	"github.com/zintix-labs/matchlab"
	"github.com/zintix-labs/matchlab/errs"
	"github.com/zintix-labs/matchlab/sdk/board"
	"github.com/zintix-labs/matchlab/sdk/solver"
	"github.com/zintix-labs/matchlab/server/httperr"
	"github.com/zintix-labs/matchlab/spec"
)

// BoardHandler 聚合「不走機台池」的盤面查詢類 endpoints：
//   - Catalog：遊戲清單（gid/name/grid sizes/tiles）。
//   - Session：以指定（或隨機）seed 建一台機台，回報每個盤面邊長的 session 概況。
//   - Solve：對 caller 提供的盤面跑最少交換步數求解。
type BoardHandler struct {
	pb  *matchlab.Matchlab
	log *slog.Logger
}

func NewBoardHandler(pb *matchlab.Matchlab, log *slog.Logger) *BoardHandler {
	return &BoardHandler{pb: pb, log: log}
}

// Catalog 回傳 catalog summary（JSON array）。
func (bh *BoardHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, err := bh.pb.Summary()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sum)
}

// Session 建立一台（可指定 seed 的）機台並回報各盤面邊長的 session 概況。
//
// Query：
//   - gid（必填）
//   - seed（選填，int64；缺省時由 crypto/rand 產生）
//
// 注意：此 endpoint 會即時建池（每個邊長一個 offset 池），屬於驗證/除錯用途，
// 不建議打在高頻路徑上；線上 spin 請走 /v1/spin（機台池路徑）。
func (bh *BoardHandler) Session(w http.ResponseWriter, r *http.Request) {
	type sessionInfo struct {
		GridSize int  `json:"grid_size"`
		PoolSize int  `json:"pool_size"`
		Degraded bool `json:"degraded"`
	}
	type sessionResponse struct {
		GameName string        `json:"game"`
		GameId   spec.GID      `json:"gid"`
		Seed     int64         `json:"seed"`
		Sessions []sessionInfo `json:"sessions"`
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gidStr := r.URL.Query().Get("gid")
	if gidStr == "" {
		httperr.Errs(w, errs.NewWarn("gid is required"))
		return
	}
	u, err := strconv.ParseUint(gidStr, 10, 64)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("gid must be non-negative integer"))
		return
	}
	gid := spec.GID(u)

	var seed int64
	if s := r.URL.Query().Get("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			httperr.Errs(w, errs.NewWarn("seed must be int64"))
			return
		}
		seed = v
	} else {
		rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			httperr.Errs(w, errs.NewWarn("seed generate failed"))
			return
		}
		seed = rnd.Int64()
	}

	ent, ok := bh.pb.EntryById(gid)
	if !ok {
		httperr.Errs(w, errs.NewWarn("gid not found"))
		return
	}

	m, err := bh.pb.NewMachineWithSeed(gid, seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	resp := sessionResponse{
		GameName: ent.Name,
		GameId:   gid,
		Seed:     seed,
	}
	for _, size := range m.GridSizes() {
		s, ok := m.Session(size)
		if !ok {
			continue
		}
		if s.Degraded() {
			httperr.Log(bh.log, "degraded offset pool", errs.NewWarn(ent.Name))
		}
		resp.Sessions = append(resp.Sessions, sessionInfo{
			GridSize: s.GridSize(),
			PoolSize: s.PoolSize(),
			Degraded: s.Degraded(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Solve 對 caller 提供的盤面跑 BFS 最少交換步數求解。
//
// Body（POST JSON）：{"gid": ..., "size": ..., "cells": [...]}
//
// 合約：
//   - cells 長度必須等於 size*size（row-major）。
//   - 界限內無解不是 error：回 {"found":false,"moves":-1}。
func (bh *BoardHandler) Solve(w http.ResponseWriter, r *http.Request) {
	type solveRequest struct {
		GID   spec.GID `json:"gid"`
		Size  int      `json:"size"`
		Cells []int16  `json:"cells"`
	}
	type solveResponse struct {
		Found    bool `json:"found"`
		Moves    int  `json:"moves"`
		Dequeued int  `json:"dequeued"`
		Capped   bool `json:"capped,omitempty"`
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := new(solveRequest)
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
		return
	}

	ps, err := bh.pb.PuzzleSettingById(req.GID)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("gid not found"))
		return
	}
	if req.Size < 3 {
		httperr.Errs(w, errs.NewWarn("size must be >= 3"))
		return
	}
	if len(req.Cells) != req.Size*req.Size {
		httperr.Errs(w, errs.NewWarn("cells length must be size*size"))
		return
	}
	known := make(map[spec.TileID]struct{}, len(ps.TileSetting.Tiles))
	for _, t := range ps.TileSetting.Tiles {
		known[t] = struct{}{}
	}
	for _, c := range req.Cells {
		if _, ok := known[c]; !ok {
			httperr.Errs(w, errs.NewWarn("cells contain unknown tile id"))
			return
		}
	}

	g := board.Grid{Size: req.Size, Cells: req.Cells}
	res := solver.New(ps.SolverSetting.MaxDequeue).Solve(g)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(solveResponse{
		Found:    res.Found,
		Moves:    res.Moves,
		Dequeued: res.Dequeued,
		Capped:   res.Capped,
	})
}
