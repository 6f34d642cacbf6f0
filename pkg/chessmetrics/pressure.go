package chessmetrics

import "github.com/notnil/chess"

// The attack routines answer one question: does the piece on `from`
// attack `target` given the current occupancy? They generate
// pseudo-legal attacks (pins and checks are ignored), which matches
// how pressure is meant to behave: a pinned rook still presses the
// square it bears on.

type occupancy map[chess.Square]chess.Piece

func squareFile(sq chess.Square) int { return int(sq) % 8 }
func squareRank(sq chess.Square) int { return int(sq) / 8 }

// pressureOn sums the weighted pressure exerted on target by all
// pieces of the attacking color.
func pressureOn(occ occupancy, target chess.Square, by chess.Color) float64 {
	var pressure float64
	for from, piece := range occ {
		if piece.Color() != by || from == target {
			continue
		}
		if attacks(occ, from, piece, target) {
			pressure += attackerValue(piece.Type()) * pressureUnit
		}
	}
	return pressure
}

func attacks(occ occupancy, from chess.Square, piece chess.Piece, target chess.Square) bool {
	df := squareFile(target) - squareFile(from)
	dr := squareRank(target) - squareRank(from)

	switch piece.Type() {
	case chess.Pawn:
		dir := 1
		if piece.Color() == chess.Black {
			dir = -1
		}
		return dr == dir && (df == 1 || df == -1)
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.King:
		return abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0)
	case chess.Bishop:
		if abs(df) != abs(dr) || df == 0 {
			return false
		}
		return rayClear(occ, from, target, sign(df), sign(dr))
	case chess.Rook:
		if df != 0 && dr != 0 {
			return false
		}
		return rayClear(occ, from, target, sign(df), sign(dr))
	case chess.Queen:
		if df != 0 && dr != 0 && abs(df) != abs(dr) {
			return false
		}
		return rayClear(occ, from, target, sign(df), sign(dr))
	default:
		return false
	}
}

// rayClear walks from `from` toward `target` one step at a time and
// reports whether no piece blocks the ray before the target square.
func rayClear(occ occupancy, from, target chess.Square, stepFile, stepRank int) bool {
	f := squareFile(from) + stepFile
	r := squareRank(from) + stepRank
	for f != squareFile(target) || r != squareRank(target) {
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return false
		}
		if _, occupied := occ[chess.Square(r*8+f)]; occupied {
			return false
		}
		f += stepFile
		r += stepRank
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
