package magic

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/magichess/game"
)

// Kind is the magic effect a move triggered.
type Kind uint8

const (
	None Kind = iota
	// TeleportMove relocates along a legal path.
	TeleportMove
	// TeleportForced relocates by direct placement.
	TeleportForced
	Replicate
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case TeleportMove:
		return "TeleportMove"
	case TeleportForced:
		return "TeleportForced"
	case Replicate:
		return "Replicate"
	}
	return "UNKNOWN EFFECT"
}

// Effect describes what the resolver did after a base move.
// For teleports From/To are the teleporter squares; for replication From is the replicator and To the new pawn.
type Effect struct {
	Kind      Kind
	From, To  chess.Square
	Piece     chess.Piece // the teleported piece or the new pawn
	Displaced chess.Piece // whatever stood on To before a teleport
}

func (e Effect) String() string {
	if e.Kind == None {
		return "None"
	}
	return fmt.Sprintf("%v %v %v->%v", e.Kind, e.Piece, e.From, e.To)
}

// Resolver applies the magic-square effects on top of the standard rules.
type Resolver struct {
	*Registry
}

func NewResolver(r *Registry) *Resolver { return &Resolver{Registry: r} }

// Resolve runs on the position right after m was applied as a base move.
// The teleport is resolved first, then replication is checked on m's destination.
// At most one effect fires since the two kinds of squares never overlap. Resolve never fails.
func (r *Resolver) Resolve(s game.State, m *chess.Move) Effect {
	if m == nil {
		return Effect{}
	}
	dest := m.S2()
	if e := r.teleport(s, dest); e.Kind != None {
		return e
	}
	return r.replicate(s, dest)
}

// Play applies m and resolves its effect. The returned func undoes both and must be called exactly once.
func (r *Resolver) Play(s game.State, m *chess.Move) (Effect, func(), error) {
	if err := s.Apply(m); err != nil {
		return Effect{}, func() {}, err
	}
	return r.Resolve(s, m), s.UndoLastMove, nil
}

func (r *Resolver) teleport(s game.State, dest chess.Square) Effect {
	partner, ok := r.TeleportPartner(dest)
	if !ok {
		return Effect{}
	}
	piece := s.PieceAt(dest)
	if piece == chess.NoPiece {
		return Effect{}
	}

	kind := TeleportForced
	if s.CanMove(dest, partner) {
		kind = TeleportMove
	}
	displaced := s.PieceAt(partner)
	s.Place(game.Edit{Square: dest, Piece: chess.NoPiece}, game.Edit{Square: partner, Piece: piece})
	return Effect{Kind: kind, From: dest, To: partner, Piece: piece, Displaced: displaced}
}

func (r *Resolver) replicate(s game.State, dest chess.Square) Effect {
	if !r.IsReplicator(dest) {
		return Effect{}
	}
	pawn := s.PieceAt(dest)
	if pawn.Type() != chess.Pawn {
		return Effect{}
	}

	rank, promo := int(dest.Rank())+1, chess.Rank8
	if pawn.Color() == chess.Black {
		rank, promo = int(dest.Rank())-1, chess.Rank1
	}
	if rank < int(chess.Rank1) || rank > int(chess.Rank8) || chess.Rank(rank) == promo {
		return Effect{}
	}
	forward := game.SquareOf(dest.File(), chess.Rank(rank))
	if s.PieceAt(forward) != chess.NoPiece {
		return Effect{}
	}
	s.Place(game.Edit{Square: forward, Piece: pawn})
	return Effect{Kind: Replicate, From: dest, To: forward, Piece: pawn}
}
