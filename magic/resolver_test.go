package magic

import (
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/magichess/game"
)

func registry(t *testing.T, tele, repl [2]chess.Square, band Band) *Registry {
	t.Helper()
	r, err := NewRegistry(tele, repl, band)
	require.NoError(t, err)
	return r
}

func position(t *testing.T, fen string) *game.Chess {
	t.Helper()
	g, err := game.FromFEN(fen)
	require.NoError(t, err)
	return g
}

func play(t *testing.T, r *Resolver, g game.State, uci string) (Effect, func()) {
	t.Helper()
	m, err := game.ParseUCI(g, uci)
	require.NoError(t, err)
	e, undo, err := r.Play(g, m)
	require.NoError(t, err)
	return e, undo
}

func count(g game.State, p chess.Piece) int {
	var n int
	for _, q := range g.Board().SquareMap() {
		if q == p {
			n++
		}
	}
	return n
}

var wide = Band{Low: chess.Rank2, High: chess.Rank7}

func TestReplicate(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H6}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))

	g := position(t, "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	before := g.FEN()
	e, undo := play(t, r, g, "e3e4")
	assert.Equal(t, Effect{Kind: Replicate, From: chess.E4, To: chess.E5, Piece: chess.WhitePawn}, e)
	assert.Equal(t, chess.WhitePawn, g.PieceAt(chess.E4))
	assert.Equal(t, chess.WhitePawn, g.PieceAt(chess.E5))
	assert.Equal(t, 2, count(g, chess.WhitePawn))
	assert.Equal(t, chess.Black, g.Turn())

	undo()
	assert.Equal(t, before, g.FEN())
	assert.Equal(t, 1, count(g, chess.WhitePawn))
}

func TestReplicateBlack(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H6}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))

	g := position(t, "4k3/8/3p4/8/8/8/8/4K3 b - - 0 1")
	e, _ := play(t, r, g, "d6d5")
	assert.Equal(t, Replicate, e.Kind)
	assert.Equal(t, chess.D4, e.To)
	assert.Equal(t, chess.BlackPawn, g.PieceAt(chess.D5))
	assert.Equal(t, chess.BlackPawn, g.PieceAt(chess.D4))
	assert.Equal(t, chess.White, g.Turn())
}

func TestReplicateSkipped(t *testing.T) {
	cases := []struct {
		name string
		repl [2]chess.Square
		fen  string
		move string
	}{
		{"forward square occupied", [2]chess.Square{chess.E4, chess.D5}, "4k3/8/8/4n3/8/4P3/8/4K3 w - - 0 1", "e3e4"},
		{"not a pawn", [2]chess.Square{chess.E4, chess.D5}, "4k3/8/8/8/8/8/P7/4KN2 w - - 0 1", "f1e3"},
		{"knight onto replicator", [2]chess.Square{chess.E3, chess.D5}, "4k3/8/8/8/8/8/P7/4KN2 w - - 0 1", "f1e3"},
		{"white promotion rank", [2]chess.Square{chess.E7, chess.D5}, "k7/8/4P3/8/8/8/8/4K3 w - - 0 1", "e6e7"},
		{"black promotion rank", [2]chess.Square{chess.D2, chess.E5}, "4k3/8/8/8/8/3p4/8/K7 b - - 0 1", "d3d2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewResolver(registry(t, [2]chess.Square{chess.A4, chess.H5}, c.repl, wide))
			g := position(t, c.fen)
			e, undo := play(t, r, g, c.move)
			assert.Equal(t, None, e.Kind)
			undo()
		})
	}
}

func TestTeleportAlongLegalPath(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H3}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))

	g := position(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	before := g.FEN()
	e, undo := play(t, r, g, "a1a3")
	assert.Equal(t, Effect{Kind: TeleportMove, From: chess.A3, To: chess.H3, Piece: chess.WhiteRook, Displaced: chess.NoPiece}, e)
	assert.Equal(t, chess.NoPiece, g.PieceAt(chess.A3))
	assert.Equal(t, chess.WhiteRook, g.PieceAt(chess.H3))
	assert.Equal(t, chess.Black, g.Turn(), "teleporting never consumes a turn")
	assert.Equal(t, 1, g.MoveNumber())

	undo()
	assert.Equal(t, before, g.FEN())
}

func TestTeleportForced(t *testing.T) {
	cases := []struct {
		name      string
		tele      [2]chess.Square
		fen       string
		move      string
		to        chess.Square
		piece     chess.Piece
		displaced chess.Piece
	}{
		{"onto an enemy piece", [2]chess.Square{chess.C3, chess.H5}, "4k3/8/8/7q/8/8/P7/1N2K3 w - - 0 1", "b1c3", chess.H5, chess.WhiteKnight, chess.BlackQueen},
		{"path blocked", [2]chess.Square{chess.A3, chess.H3}, "4k3/8/8/8/8/3P4/8/R3K3 w - - 0 1", "a1a3", chess.H3, chess.WhiteRook, chess.NoPiece},
		{"onto an own piece", [2]chess.Square{chess.A3, chess.H3}, "4k3/8/8/8/8/7N/8/R3K3 w - - 0 1", "a1a3", chess.H3, chess.WhiteRook, chess.WhiteKnight},
		{"pawn", [2]chess.Square{chess.E4, chess.B5}, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "e2e4", chess.B5, chess.WhitePawn, chess.NoPiece},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewResolver(registry(t, c.tele, [2]chess.Square{chess.A6, chess.G6}, DefaultBand()))
			g := position(t, c.fen)
			before := g.FEN()
			e, undo := play(t, r, g, c.move)
			assert.Equal(t, TeleportForced, e.Kind)
			assert.Equal(t, c.to, e.To)
			assert.Equal(t, c.piece, e.Piece)
			assert.Equal(t, c.displaced, e.Displaced)
			assert.Equal(t, chess.NoPiece, g.PieceAt(e.From))
			assert.Equal(t, c.piece, g.PieceAt(c.to))
			assert.Equal(t, "-", strings.Fields(g.FEN())[3])
			ended, _ := g.Ended()
			assert.False(t, ended)

			undo()
			assert.Equal(t, before, g.FEN())
		})
	}
}

func TestTeleportCaptureLeavingBareKnightIsDrawn(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.C3, chess.H5}, [2]chess.Square{chess.A6, chess.G6}, DefaultBand()))

	g := position(t, "4k3/8/8/7q/8/8/8/1N2K3 w - - 0 1")
	e, undo := play(t, r, g, "b1c3")
	assert.Equal(t, TeleportForced, e.Kind)
	assert.Equal(t, chess.BlackQueen, e.Displaced)
	ended, winner := g.Ended()
	assert.True(t, ended, "king and knight against king")
	assert.Equal(t, chess.NoColor, winner)

	undo()
	ended, _ = g.Ended()
	assert.False(t, ended)
}

func TestTeleportOntoKingWins(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H3}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))

	g := position(t, "8/8/8/8/8/7k/8/R3K3 w - - 0 1")
	e, undo := play(t, r, g, "a1a3")
	assert.Equal(t, TeleportForced, e.Kind)
	assert.Equal(t, chess.BlackKing, e.Displaced)
	ended, winner := g.Ended()
	assert.True(t, ended)
	assert.Equal(t, chess.White, winner)
	assert.Empty(t, g.LegalMoves())

	undo()
	ended, _ = g.Ended()
	assert.False(t, ended)
}

func TestResolveWithoutMagic(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H3}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))
	g := game.NewChess()
	assert.Equal(t, Effect{}, r.Resolve(g, nil))

	e, _ := play(t, r, g, "g1f3")
	assert.Equal(t, None, e.Kind)
	assert.Equal(t, "None", e.String())
}

func TestPlayIllegal(t *testing.T) {
	r := NewResolver(registry(t, [2]chess.Square{chess.A3, chess.H3}, [2]chess.Square{chess.E4, chess.D5}, DefaultBand()))
	g := game.NewChess()
	_, undo, err := r.Play(g, nil)
	assert.Error(t, err)
	require.NotNil(t, undo)
	undo()
	assert.Equal(t, 0, g.MoveNumber())
}

// Random games with random magic squares. Every effect has to follow the rules of its kind,
// and undoing every ply in reverse has to get back to the start.
func TestEffectsOverRandomGames(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		reg := Sample(seed, DefaultBand())
		r := NewResolver(reg)
		g := game.NewChess()
		start := g.FEN()

		var undos []func()
		for ply := 0; ply < 80; ply++ {
			if ended, _ := g.Ended(); ended {
				break
			}
			moves := g.LegalMoves()
			m := moves[rnd.Intn(len(moves))]
			mover := g.PieceAt(m.S1())

			e, undo, err := r.Play(g, m)
			require.NoError(t, err)
			undos = append(undos, undo)

			switch e.Kind {
			case TeleportMove, TeleportForced:
				partner, _ := reg.TeleportPartner(m.S2())
				assert.Equal(t, partner, e.To)
				assert.Equal(t, chess.NoPiece, g.PieceAt(m.S2()))
				assert.Equal(t, e.Piece, g.PieceAt(partner))
				assert.Equal(t, g.Turn(), mover.Color().Other())
			case Replicate:
				assert.True(t, reg.IsReplicator(m.S2()))
				assert.Equal(t, chess.Pawn, mover.Type())
				assert.Equal(t, mover, g.PieceAt(e.From))
				assert.Equal(t, mover, g.PieceAt(e.To))
				assert.NotEqual(t, chess.Rank1, e.To.Rank())
				assert.NotEqual(t, chess.Rank8, e.To.Rank())
			case None:
				// a piece that lands on a teleporter always moves on
				assert.False(t, reg.IsTeleporter(m.S2()), "seed %d ply %d %v", seed, ply, m)
			}
		}
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
		assert.Equal(t, start, g.FEN(), "seed %d", seed)
	}
}
