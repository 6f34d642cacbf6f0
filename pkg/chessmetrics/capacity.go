// Package chessmetrics evaluates the structural health pair (H, HEff)
// on chess positions and simulates games move-by-move to record the
// metric trajectory. Chess is used as a controlled environment for the
// metrics, not as a playing engine: moves are random or replayed from
// a supplied list, never searched.
package chessmetrics

import "github.com/notnil/chess"

// PieceCapacity maps each piece kind to its structural capacity. The
// king carries no capacity: it is excluded from capacity accounting
// but still counts as an attacker.
var PieceCapacity = map[chess.PieceType]float64{
	chess.Queen:  9,
	chess.Rook:   5,
	chess.Bishop: 3,
	chess.Knight: 3,
	chess.Pawn:   1,
}

const (
	// AccessWeight scales the legal-move contribution to HEff.
	AccessWeight = 0.3

	// typicalMobility normalizes the side-to-move legal move count;
	// 35 is roughly the average branching factor of a middlegame.
	typicalMobility = 35.0

	// pressureUnit converts an attacker's value into pressure on the
	// attacked piece.
	pressureUnit = 0.1

	// kingAttackerValue is the king's weight when it is the attacker.
	kingAttackerValue = 10
)

// attackerValue returns the pressure weight of an attacking piece.
func attackerValue(pt chess.PieceType) float64 {
	if pt == chess.King {
		return kingAttackerValue
	}
	return PieceCapacity[pt]
}
