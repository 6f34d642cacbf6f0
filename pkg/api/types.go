package api

import (
	"time"

	"github.com/svaldes/structhealth/pkg/capacity"
	"github.com/svaldes/structhealth/pkg/chessmetrics"
	"github.com/svaldes/structhealth/pkg/scenario"
)

// API Request/Response Types

// HealthResponse reports liveness and build information
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// NetworkResponse carries a freshly built network, its health triple
// and the snapshot state of the fresh build (decay 0 by definition).
type NetworkResponse struct {
	Network *capacity.Network `json:"network"`
	Metrics capacity.Metrics  `json:"metrics"`
	State   scenario.State    `json:"state"`
	Time    string            `json:"time"`
}

// GameResponse carries a simulated game's metric trajectory
type GameResponse struct {
	Trajectory chessmetrics.Trajectory      `json:"trajectory"`
	Final      chessmetrics.TrajectoryPoint `json:"final"`
	Time       string                       `json:"time"`
}

// CompareResponse carries a ranked scenario batch
type CompareResponse struct {
	Results []scenario.Result `json:"results"`
	Count   int               `json:"count"`
	Time    string            `json:"time"`
}

// ClassifyResponse carries the tier and state of one measurement
type ClassifyResponse struct {
	Tier  scenario.Tier  `json:"tier"`
	State scenario.State `json:"state"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// GameErrorResponse is the error envelope for aborted game runs. An
// illegal replayed move or an exhausted wall-clock budget still leaves
// a valid prefix trajectory, which is returned alongside the error.
type GameErrorResponse struct {
	Error      string                  `json:"error"`
	Message    string                  `json:"message"`
	Code       int                     `json:"code"`
	Trajectory chessmetrics.Trajectory `json:"trajectory,omitempty"`
}
