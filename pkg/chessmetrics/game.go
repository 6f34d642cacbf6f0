package chessmetrics

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/notnil/chess"
)

// Move-count bounds for a single game run.
const (
	MinMoves = 0
	MaxMoves = 500
)

// Common errors returned by the game simulator
var (
	ErrInvalidMoveCount  = errors.New("invalid move count")
	ErrMissingMoveSource = errors.New("either a random source or a move list must be provided")
	ErrIllegalMove       = errors.New("illegal move")
)

// TrajectoryPoint is the metric state after one move. Move 0 is the
// initial position and carries no SAN.
type TrajectoryPoint struct {
	Move int     `json:"move"`
	SAN  string  `json:"san,omitempty"`
	H    float64 `json:"h"`
	HEff float64 `json:"h_eff"`
}

// Trajectory is the metric history of one simulated game.
type Trajectory []TrajectoryPoint

// Final returns the last recorded point.
func (t Trajectory) Final() TrajectoryPoint {
	return t[len(t)-1]
}

// GameOptions selects how moves are chosen. When Moves is non-empty
// the list is replayed in order (SAN); otherwise moves are drawn
// uniformly at random from the legal moves using the caller-owned
// Rand. There is no hidden global randomness.
type GameOptions struct {
	MaxMoves int
	Rand     *rand.Rand
	Moves    []string
}

// RunGame plays from the standard starting position, recording
// (H, HEff) before any move and after each applied move, until a
// terminal condition holds: decided outcome (checkmate, stalemate,
// insufficient material, draw rules), MaxMoves reached, or the
// supplied move list exhausted.
//
// MaxMoves outside [MinMoves, MaxMoves] is refused before any work;
// MaxMoves == 0 returns the initial position's metrics alone.
//
// An illegal or unparsable supplied move ends the replay early: the
// trajectory up to that point is returned together with a wrapped
// ErrIllegalMove. This is the one partial-success path; every other
// error refuses the run outright.
//
// Context cancellation is checked between moves, so a deadline aborts
// a long run without losing the prefix already simulated.
func RunGame(ctx context.Context, opts GameOptions) (Trajectory, error) {
	if opts.MaxMoves < MinMoves || opts.MaxMoves > MaxMoves {
		return nil, fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidMoveCount, opts.MaxMoves, MinMoves, MaxMoves)
	}
	if len(opts.Moves) == 0 && opts.Rand == nil {
		return nil, ErrMissingMoveSource
	}
	if ctx == nil {
		ctx = context.Background()
	}

	game := chess.NewGame()
	h, hEff := ComputeHolisticMetrics(game.Position())
	trajectory := Trajectory{{Move: 0, H: h, HEff: hEff}}

	for moveCount := 0; moveCount < opts.MaxMoves; moveCount++ {
		if err := ctx.Err(); err != nil {
			return trajectory, err
		}
		if game.Outcome() != chess.NoOutcome {
			break
		}

		var san string
		if len(opts.Moves) > 0 {
			if moveCount >= len(opts.Moves) {
				break
			}
			san = opts.Moves[moveCount]
			if err := game.MoveStr(san); err != nil {
				return trajectory, fmt.Errorf("%w: %q at move %d: %v", ErrIllegalMove, san, moveCount+1, err)
			}
		} else {
			legal := game.ValidMoves()
			if len(legal) == 0 {
				break
			}
			move := legal[opts.Rand.Intn(len(legal))]
			san = chess.AlgebraicNotation{}.Encode(game.Position(), move)
			if err := game.Move(move); err != nil {
				return trajectory, fmt.Errorf("applying move %s: %w", san, err)
			}
		}

		h, hEff = ComputeHolisticMetrics(game.Position())
		trajectory = append(trajectory, TrajectoryPoint{
			Move: moveCount + 1,
			SAN:  san,
			H:    h,
			HEff: hEff,
		})
	}

	return trajectory, nil
}
