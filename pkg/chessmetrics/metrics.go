package chessmetrics

import "github.com/notnil/chess"

// ComputeHolisticMetrics reduces one board position to (H, HEff).
//
// H sums capacity-minus-pressure over every capacity-bearing piece on
// both sides, where pressure is the value-weighted count of enemy
// attackers bearing on the piece's square. More or stronger attackers
// strictly reduce a piece's contribution.
//
// HEff scales H by the accessibility of the side to move:
//
//	HEff = H × min(1, legalMoves/35) × AccessWeight   when H > 0
//	HEff = H                                          when H <= 0
//
// so HEff <= H always holds and a side with no legal moves contributes
// zero accessibility. An empty board yields (0, 0).
func ComputeHolisticMetrics(pos *chess.Position) (h, hEff float64) {
	if pos == nil {
		return 0, 0
	}

	occ := occupancy(pos.Board().SquareMap())
	for sq, piece := range occ {
		capacity, ok := PieceCapacity[piece.Type()]
		if !ok {
			continue // king
		}
		pressure := pressureOn(occ, sq, piece.Color().Other())
		h += capacity - pressure
	}

	if h <= 0 {
		return h, h
	}

	mobility := float64(len(pos.ValidMoves()))
	accessibility := mobility / typicalMobility
	if accessibility > 1 {
		accessibility = 1
	}
	return h, h * accessibility * AccessWeight
}
