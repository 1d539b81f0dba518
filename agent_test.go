package magichess

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magichess/game"
	"github.com/magichess/magic"
	"github.com/magichess/search"
)

func TestAgentSearch(t *testing.T) {
	r := magic.NewResolver(magic.Sample(5, magic.DefaultBand()))
	conf := search.DefaultConfig()
	conf.Depth = 1
	a := NewAgent("tester", chess.White, conf, r)
	assert.Equal(t, "tester", a.Name())

	g := game.NewChess()
	res := a.Search(g)
	require.NotNil(t, res.Move)
	assert.Equal(t, 0, g.MoveNumber())

	res = <-a.SearchAsync(g)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Move)
	assert.NoError(t, a.Close())
	assert.Contains(t, a.String(), "2 moves")
}

func TestAgentSearchAsyncRecoversPanics(t *testing.T) {
	a := NewAgent("broken", chess.Black, search.DefaultConfig(), nil)
	res := <-a.SearchAsync(game.NewChess())
	assert.Error(t, res.Err)
	assert.Error(t, a.Close())
}

func TestAgentRecord(t *testing.T) {
	a := NewAgent("tester", chess.White, search.DefaultConfig(), nil)
	a.record(chess.White)
	a.record(chess.Black)
	a.record(chess.NoColor)
	a.record(chess.White)
	assert.Equal(t, float32(2), a.Wins)
	assert.Equal(t, float32(1), a.Loss)
	assert.Equal(t, float32(1), a.Draw)
	assert.Contains(t, a.String(), "wins 2")
}
