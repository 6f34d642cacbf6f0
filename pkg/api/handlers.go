package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/svaldes/structhealth/pkg/chessmetrics"
	"github.com/svaldes/structhealth/pkg/scenario"
	"github.com/svaldes/structhealth/pkg/validation"
)

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.NetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateNetworkRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(req.Seed))
	nw, m, err := s.guard.BuildNetwork(callerID(r), req.Size, rng)
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}

	// A fresh build has no observed decay yet.
	state, err := scenario.SnapshotState(m.HEff, 0, s.thresholds)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, NetworkResponse{
		Network: nw,
		Metrics: m,
		State:   state,
		Time:    time.Since(start).String(),
	})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateGameRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := chessmetrics.GameOptions{
		MaxMoves: req.MaxMoves,
		Moves:    req.Moves,
	}
	if req.Seed != nil {
		opts.Rand = rand.New(rand.NewSource(*req.Seed))
	}

	start := time.Now()
	trajectory, err := s.guard.RunGame(r.Context(), callerID(r), opts)
	if err != nil {
		s.respondGameError(w, r, err, trajectory)
		return
	}

	s.respondJSON(w, http.StatusOK, GameResponse{
		Trajectory: trajectory,
		Final:      trajectory.Final(),
		Time:       time.Since(start).String(),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateCompareRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scenarios := make([]scenario.Scenario, 0, len(req.Scenarios))
	for _, sr := range req.Scenarios {
		scenarios = append(scenarios, scenario.Scenario{
			Name:      sr.Name,
			HEff0:     sr.HEff0,
			DecayRate: sr.DecayRate,
			Steps:     sr.Steps,
		})
	}

	start := time.Now()
	results, err := s.guard.CompareScenarios(r.Context(), callerID(r), scenarios, s.requestThresholds(req.Thresholds))
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, CompareResponse{
		Results: results,
		Count:   len(results),
		Time:    time.Since(start).String(),
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateClassifyRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	th := s.requestThresholds(req.Thresholds)
	tier, err := scenario.Classify(req.HEff, req.Decay, th)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := scenario.SnapshotState(req.HEff, req.Decay, th)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, ClassifyResponse{
		Tier:  tier,
		State: state,
	})
}

// requestThresholds resolves per-request thresholds over the server
// defaults.
func (s *Server) requestThresholds(spec *validation.ThresholdsSpec) scenario.Thresholds {
	if spec == nil {
		return s.thresholds
	}
	return scenario.Thresholds{
		AlphaHMin:     spec.AlphaHMin,
		AlphaDecayMax: spec.AlphaDecayMax,
		BetaHMin:      spec.BetaHMin,
		BetaDecayMax:  spec.BetaDecayMax,
	}
}
