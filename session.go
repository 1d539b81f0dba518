package magichess

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/magichess/game"
	"github.com/magichess/magic"
)

// Session is one game of chess with magic squares. It owns the game state, the magic squares
// and the computer player. A Session is not safe for concurrent use.
type Session struct {
	conf     Config
	state    game.State
	registry *magic.Registry
	resolver *magic.Resolver
	ai       *Agent
	history  []Ply

	buf    bytes.Buffer
	logger *log.Logger
}

// NewSession starts a game from the standard position with magic squares sampled from conf.Seed.
func NewSession(conf Config) (*Session, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return NewSessionFrom(conf, game.NewChess(), magic.Sample(conf.Seed, conf.Band))
}

// NewSessionFrom starts a game from an arbitrary state and magic-square assignment.
func NewSessionFrom(conf Config, state game.State, registry *magic.Registry) (*Session, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if state == nil || registry == nil {
		return nil, errors.New("session needs a game state and a magic-square registry")
	}
	s := &Session{
		conf:     conf,
		state:    state,
		registry: registry,
		resolver: magic.NewResolver(registry),
	}
	s.ai = NewAgent("computer", conf.AIColor, conf.Search, s.resolver)
	s.logger = log.New(&s.buf, "", log.Ltime)
	s.logger.Printf("%s: %v, magic squares %v (seed %d)", conf.Name, conf.Mode, registry, registry.Seed())
	return s, nil
}

func (s *Session) Config() Config { return s.conf }

func (s *Session) State() game.State { return s.state }

func (s *Session) Registry() *magic.Registry { return s.registry }

func (s *Session) Agent() *Agent { return s.ai }

func (s *Session) Ended() (bool, chess.Color) { return s.state.Ended() }

func (s *Session) LegalMoves() []*chess.Move { return s.state.LegalMoves() }

// History returns the moves played so far.
func (s *Session) History() []Ply {
	retVal := make([]Ply, len(s.history))
	copy(retVal, s.history)
	return retVal
}

// AITurn reports whether the computer is to move.
func (s *Session) AITurn() bool {
	return s.conf.Mode == VsAI && s.state.Turn() == s.conf.AIColor
}

// Move plays a human move given as a source/destination pair.
// promo may be NoPieceType, in which case promotions default to a queen.
func (s *Session) Move(from, to chess.Square, promo chess.PieceType) (magic.Effect, error) {
	if err := s.humanTurn(); err != nil {
		return magic.Effect{}, err
	}
	m, err := game.FindMove(s.state, from, to, promo)
	if err != nil {
		return magic.Effect{}, err
	}
	return s.play(m)
}

// MoveUCI plays a human move written in UCI notation, e.g. "e2e4".
func (s *Session) MoveUCI(str string) (magic.Effect, error) {
	if err := s.humanTurn(); err != nil {
		return magic.Effect{}, err
	}
	m, err := game.ParseUCI(s.state, str)
	if err != nil {
		return magic.Effect{}, err
	}
	return s.play(m)
}

// AIMove lets the computer choose and play a move. In VsAI mode it only moves for the computer's side;
// in TwoPlayer mode it moves for whoever is to move.
// The search runs on a copy of the state. Result.Move is nil if there was nothing to play.
func (s *Session) AIMove() (Result, error) {
	if err := s.aiTurn(); err != nil {
		return Result{}, err
	}
	return s.finish(s.ai.Search(s.state.Clone()))
}

// AIMoveAsync is AIMove on the agent's asynchronous search. The result, including a failed search,
// arrives on the returned channel. The session must not be used until then; Close waits for it.
func (s *Session) AIMoveAsync() <-chan Result {
	ch := make(chan Result, 1)
	if err := s.aiTurn(); err != nil {
		ch <- Result{Err: err}
		close(ch)
		return ch
	}

	s.ai.pending.Add(1)
	searched := s.ai.SearchAsync(s.state.Clone())
	go func() {
		defer s.ai.pending.Done()
		defer close(ch)
		res := <-searched
		if res.Err == nil {
			res, res.Err = s.finish(res)
		}
		ch <- res
	}()
	return ch
}

// finish plays the move chosen by a search.
func (s *Session) finish(res Result) (Result, error) {
	if res.Move == nil {
		return res, nil
	}
	effect, err := s.play(res.Move)
	if err != nil {
		return res, err
	}
	res.Effect = effect
	return res, nil
}

// Undo takes back the last move together with its magic effect.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNoMove
	}
	s.state.UndoLastMove()
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.logger.Printf("took back %v", last.Move)
	return nil
}

// TakeBack undoes moves until a human is to move again: one ply in two-player mode,
// the computer's reply and the human move before it in VsAI mode.
func (s *Session) TakeBack() error {
	if err := s.Undo(); err != nil {
		return err
	}
	if s.AITurn() && len(s.history) > 0 {
		return s.Undo()
	}
	return nil
}

// Log writes the session log into w.
func (s *Session) Log(w io.Writer) {
	fmt.Fprint(w, s.buf.String())
	fmt.Fprintf(w, "\nSearch:\n\n")
	fmt.Fprintln(w, s.ai.Engine.Log())
}

// Close waits for a running computer move and reports searches that failed.
func (s *Session) Close() error {
	return s.ai.Close()
}

func (s *Session) humanTurn() error {
	if ended, _ := s.state.Ended(); ended {
		return ErrGameOver
	}
	if s.AITurn() {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) aiTurn() error {
	if ended, _ := s.state.Ended(); ended {
		return ErrGameOver
	}
	if s.conf.Mode == VsAI && !s.AITurn() {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) play(m *chess.Move) (magic.Effect, error) {
	if ended, _ := s.state.Ended(); ended {
		return magic.Effect{}, ErrGameOver
	}
	player := s.state.Turn()
	effect, _, err := s.resolver.Play(s.state, m)
	if err != nil {
		return magic.Effect{}, err
	}
	s.history = append(s.history, Ply{Move: m, Effect: effect})
	if effect.Kind != magic.None {
		s.logger.Printf("%d. %v %v: %v", len(s.history), player, m, effect)
	} else {
		s.logger.Printf("%d. %v %v", len(s.history), player, m)
	}
	if ended, winner := s.state.Ended(); ended {
		s.logger.Printf("game over, winner %v", winner)
	}
	return effect, nil
}
