package magichess

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/magichess/game"
	"github.com/magichess/magic"
	"github.com/magichess/search"
)

// An Agent is a computer player. Humans drive the session directly.
type Agent struct {
	Engine *search.Engine
	Player chess.Color

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name    string
	actions int
	pending sync.WaitGroup
	errs    error
}

func NewAgent(name string, player chess.Color, conf search.Config, r *magic.Resolver) *Agent {
	return &Agent{
		Engine: search.New(conf, r),
		Player: player,
		name:   name,
	}
}

func (a *Agent) Name() string { return a.name }

// Search searches the game state at the configured depth and returns the chosen move.
// White maximizes the score, Black minimizes it. g is left as it was found.
func (a *Agent) Search(g game.State) Result {
	score, best := a.Engine.ChooseMove(g, a.Engine.Depth, g.Turn() == chess.White)
	a.Lock()
	a.actions++
	a.Unlock()
	return Result{Move: best, Score: score, Stats: a.Engine.Stats()}
}

// SearchAsync runs Search on its own goroutine and delivers the single result on the returned channel.
// g must not be touched until the result arrives.
func (a *Agent) SearchAsync(g game.State) <-chan Result {
	ch := make(chan Result, 1)
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				err := errors.Errorf("search by %s failed: %v", a.name, r)
				a.Lock()
				a.errs = multierror.Append(a.errs, err)
				a.Unlock()
				ch <- Result{Err: err}
			}
		}()
		ch <- a.Search(g)
	}()
	return ch
}

// Close waits for outstanding asynchronous searches and reports the ones that failed.
func (a *Agent) Close() error {
	a.pending.Wait()
	a.Lock()
	defer a.Unlock()
	return a.errs
}

func (a *Agent) String() string {
	a.Lock()
	defer a.Unlock()
	return fmt.Sprintf("%s (%v): %d moves, wins %v, loss %v, draw %v", a.name, a.Player, a.actions, a.Wins, a.Loss, a.Draw)
}

// record books the result of a finished game from this agent's point of view.
func (a *Agent) record(winner chess.Color) {
	a.Lock()
	defer a.Unlock()
	switch winner {
	case chess.NoColor:
		a.Draw++
	case a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}
