package chessmetrics

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// TestRunGame_InvalidMoveCount tests move-count bounds
func TestRunGame_InvalidMoveCount(t *testing.T) {
	for _, n := range []int{-1, 501, 9999} {
		_, err := RunGame(context.Background(), GameOptions{MaxMoves: n, Rand: rand.New(rand.NewSource(1))})
		if !errors.Is(err, ErrInvalidMoveCount) {
			t.Errorf("RunGame(max=%d) error = %v, want ErrInvalidMoveCount", n, err)
		}
	}
}

// TestRunGame_MissingMoveSource tests that randomness must be explicit
func TestRunGame_MissingMoveSource(t *testing.T) {
	_, err := RunGame(context.Background(), GameOptions{MaxMoves: 10})
	if !errors.Is(err, ErrMissingMoveSource) {
		t.Errorf("error = %v, want ErrMissingMoveSource", err)
	}
}

// TestRunGame_ZeroMoves tests that max 0 returns only the initial metrics
func TestRunGame_ZeroMoves(t *testing.T) {
	trajectory, err := RunGame(context.Background(), GameOptions{MaxMoves: 0, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	if len(trajectory) != 1 {
		t.Fatalf("trajectory length = %d, want 1", len(trajectory))
	}
	if trajectory[0].Move != 0 || trajectory[0].SAN != "" {
		t.Errorf("initial point = %+v, want move 0 with no SAN", trajectory[0])
	}
	if trajectory[0].HEff <= 0 {
		t.Errorf("initial HEff = %f, want > 0", trajectory[0].HEff)
	}
}

// TestRunGame_ReplayList tests supplied-move replay
func TestRunGame_ReplayList(t *testing.T) {
	moves := []string{"e4", "e5", "Nf3"}
	trajectory, err := RunGame(context.Background(), GameOptions{MaxMoves: 50, Moves: moves})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}

	// Initial point plus one per replayed move; the list exhausts
	// before MaxMoves.
	if len(trajectory) != len(moves)+1 {
		t.Fatalf("trajectory length = %d, want %d", len(trajectory), len(moves)+1)
	}
	for i, san := range moves {
		if trajectory[i+1].SAN != san {
			t.Errorf("point %d SAN = %q, want %q", i+1, trajectory[i+1].SAN, san)
		}
	}
	for i := 1; i < len(trajectory); i++ {
		if trajectory[i].HEff > trajectory[i].H {
			t.Errorf("point %d: HEff %f exceeds H %f", i, trajectory[i].HEff, trajectory[i].H)
		}
	}
}

// TestRunGame_IllegalMove tests the partial-success path
func TestRunGame_IllegalMove(t *testing.T) {
	trajectory, err := RunGame(context.Background(), GameOptions{
		MaxMoves: 50,
		Moves:    []string{"e4", "e4"}, // second move illegal
	})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("error = %v, want ErrIllegalMove", err)
	}

	// The prefix before the illegal move survives.
	if len(trajectory) != 2 {
		t.Errorf("partial trajectory length = %d, want 2", len(trajectory))
	}
}

// TestRunGame_StopsAtCheckmate tests the decided-outcome terminal condition
func TestRunGame_StopsAtCheckmate(t *testing.T) {
	// Fool's mate, with trailing moves that must never be consumed.
	moves := []string{"f3", "e5", "g4", "Qh4#", "d4", "d5"}
	trajectory, err := RunGame(context.Background(), GameOptions{MaxMoves: 100, Moves: moves})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	if len(trajectory) != 5 {
		t.Fatalf("trajectory length = %d, want 5 (initial + 4 moves)", len(trajectory))
	}
	if trajectory.Final().SAN != "Qh4#" {
		t.Errorf("final SAN = %q, want Qh4#", trajectory.Final().SAN)
	}
}

// TestRunGame_RandomReproducible tests seed determinism of random games
func TestRunGame_RandomReproducible(t *testing.T) {
	a, err := RunGame(context.Background(), GameOptions{MaxMoves: 40, Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	b, err := RunGame(context.Background(), GameOptions{MaxMoves: 40, Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identically seeded games diverged")
	}

	c, err := RunGame(context.Background(), GameOptions{MaxMoves: 40, Rand: rand.New(rand.NewSource(43))})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("differently seeded games should (almost surely) differ")
	}
}

// TestRunGame_ContextCanceled tests the abort path
func TestRunGame_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trajectory, err := RunGame(ctx, GameOptions{MaxMoves: 50, Rand: rand.New(rand.NewSource(1))})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	// The initial metrics are still reported.
	if len(trajectory) != 1 {
		t.Errorf("trajectory length = %d, want 1", len(trajectory))
	}
}

// TestRunGame_TrajectoryMovesAreSequential tests move numbering
func TestRunGame_TrajectoryMovesAreSequential(t *testing.T) {
	trajectory, err := RunGame(context.Background(), GameOptions{MaxMoves: 20, Rand: rand.New(rand.NewSource(7))})
	if err != nil {
		t.Fatalf("RunGame failed: %v", err)
	}
	for i, p := range trajectory {
		if p.Move != i {
			t.Errorf("point %d has move number %d", i, p.Move)
		}
	}
}

func benchmarkRunGame(b *testing.B, maxMoves int) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng := rand.New(rand.NewSource(42))
		if _, err := RunGame(context.Background(), GameOptions{MaxMoves: maxMoves, Rand: rng}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunGame10(b *testing.B)  { benchmarkRunGame(b, 10) }
func BenchmarkRunGame50(b *testing.B)  { benchmarkRunGame(b, 50) }
func BenchmarkRunGame100(b *testing.B) { benchmarkRunGame(b, 100) }
