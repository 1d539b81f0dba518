package search

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/magichess/game"
	"github.com/magichess/magic"
)

// Stats counts what the last search did.
type Stats struct {
	Nodes   int // positions visited, root included
	Leaves  int // positions evaluated
	Cutoffs int // sibling loops stopped by alpha-beta
	Effects [magic.Replicate + 1]int
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes %d leaves %d cutoffs %d teleports %d/%d replications %d",
		s.Nodes, s.Leaves, s.Cutoffs,
		s.Effects[magic.TeleportMove], s.Effects[magic.TeleportForced], s.Effects[magic.Replicate])
}

// Engine is a depth-bounded minimax search with alpha-beta pruning over the augmented rules.
// An Engine is not safe for concurrent use: a search owns the state it is given until it returns.
type Engine struct {
	Config
	resolver *magic.Resolver

	stats  Stats
	tracer *tracer

	*lumberjack
}

func New(conf Config, r *magic.Resolver) *Engine {
	return &Engine{
		Config:     conf,
		resolver:   r,
		lumberjack: newLumberjack(),
	}
}

// ChooseMove searches depth plies from the current position of s. The maximizing side
// looks for the highest score, the other for the lowest.
// The move is nil when depth is 0 or when the position has no legal moves.
// s is left exactly as it was found.
func (e *Engine) ChooseMove(s game.State, depth int, maximizing bool) (score float32, best *chess.Move) {
	e.stats = Stats{}
	e.tracer = nil
	if e.Trace {
		e.tracer = newTracer(e.MaxTraceNodes)
	}

	root := e.tracer.reserve()
	score, best = e.minimax(s, depth, math32.Inf(-1), math32.Inf(1), maximizing, root)
	e.tracer.node(root, s.Turn(), score, depth)

	e.log("Move Number %d, Depth %d, Turn %v. Best: %v (%v). %v",
		s.MoveNumber(), depth, s.Turn(), best, score, e.stats)
	return score, best
}

// Stats returns the counters of the last search.
func (e *Engine) Stats() Stats { return e.stats }

// DOT renders the tree explored by the last traced search.
func (e *Engine) DOT() (string, error) {
	if e.tracer == nil {
		return "", errors.New("no traced search")
	}
	return e.tracer.render()
}

func (e *Engine) minimax(s game.State, depth int, alpha, beta float32, maximizing bool, id int) (float32, *chess.Move) {
	e.stats.Nodes++
	if ended, _ := s.Ended(); depth == 0 || ended {
		e.stats.Leaves++
		return Evaluate(s.Board()), nil
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		e.stats.Leaves++
		return Evaluate(s.Board()), nil
	}

	var best *chess.Move
	bestScore := math32.Inf(1)
	if maximizing {
		bestScore = math32.Inf(-1)
	}
	for _, m := range moves {
		score := e.child(s, m, depth, alpha, beta, maximizing, id)
		if maximizing {
			if score > bestScore {
				bestScore, best = score, m
			}
			alpha = math32.Max(alpha, score)
		} else {
			if score < bestScore {
				bestScore, best = score, m
			}
			beta = math32.Min(beta, score)
		}
		if beta <= alpha {
			e.stats.Cutoffs++
			break
		}
	}
	return bestScore, best
}

// child plays m, searches the resulting position and takes m back before returning.
func (e *Engine) child(s game.State, m *chess.Move, depth int, alpha, beta float32, maximizing bool, parent int) float32 {
	effect, undo, err := e.resolver.Play(s, m)
	if err != nil {
		panic(fmt.Sprintf("%+v", errors.Wrap(err, "generated move rejected")))
	}
	defer undo()
	e.stats.Effects[effect.Kind]++

	id := e.tracer.reserve()
	score, _ := e.minimax(s, depth-1, alpha, beta, !maximizing, id)
	e.tracer.node(id, s.Turn(), score, depth-1)
	e.tracer.edge(parent, id, m, effect)
	return score
}
