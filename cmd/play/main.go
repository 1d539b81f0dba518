// Command play is a terminal front end: moves are typed in UCI notation, one per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	magichess "github.com/magichess"
	"github.com/magichess/game"
	"github.com/magichess/magic"
)

var (
	modeFlag  = flag.String("mode", "vs-ai", "two-player or vs-ai")
	depthFlag = flag.Int("depth", 2, "search depth of the computer in plies")
	seedFlag  = flag.Uint64("seed", 0, "magic-square seed, 0 picks one at random")
	whiteFlag = flag.Bool("ai_white", false, "let the computer play White")
	fenFlag   = flag.String("fen", "", "start from this position instead of the initial one")
	logFlag   = flag.Bool("log", false, "print the session log when the game ends")
)

func main() {
	flag.Parse()

	conf := magichess.DefaultConfig()
	if err := conf.Mode.UnmarshalText([]byte(*modeFlag)); err != nil {
		log.Fatal(err)
	}
	conf.Search.Depth = *depthFlag
	if *seedFlag != 0 {
		conf.Seed = *seedFlag
	}
	if *whiteFlag {
		conf.AIColor = chess.White
	}

	s, err := newSession(conf)
	if err != nil {
		log.Fatalf("error starting game: %+v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("error closing game: %v", err)
		}
	}()

	fmt.Printf("%s (%v)\n%v\n", conf.Name, conf.Mode, s.Registry())
	in := bufio.NewScanner(os.Stdin)
	for ended, _ := s.Ended(); !ended; ended, _ = s.Ended() {
		s.State().ShowBoard()
		if s.AITurn() {
			res := <-s.AIMoveAsync()
			if res.Err != nil {
				log.Fatalf("computer failed to move: %+v", res.Err)
			}
			fmt.Printf("computer plays %v (score %v) %v\n", res.Move, res.Score, effectNote(res.Effect.String()))
			continue
		}

		fmt.Printf("%v to move: ", s.State().Turn())
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "quit":
			return
		case "undo":
			if err := s.TakeBack(); err != nil {
				fmt.Println(err)
			}
			continue
		case "moves":
			for _, m := range s.LegalMoves() {
				fmt.Print(m, " ")
			}
			fmt.Println()
			continue
		}
		effect, err := s.MoveUCI(line)
		switch {
		case errors.Cause(err) == game.ErrIllegalMove:
			fmt.Printf("%q is not a legal move\n", line)
		case err != nil:
			fmt.Println(err)
		default:
			fmt.Println(effectNote(effect.String()))
		}
	}

	s.State().ShowBoard()
	_, winner := s.Ended()
	fmt.Printf("game over, winner %v\n", winner)
	if *logFlag {
		s.Log(os.Stdout)
	}
}

func newSession(conf magichess.Config) (*magichess.Session, error) {
	if *fenFlag == "" {
		return magichess.NewSession(conf)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	g, err := game.FromFEN(*fenFlag)
	if err != nil {
		return nil, err
	}
	return magichess.NewSessionFrom(conf, g, magic.Sample(conf.Seed, conf.Band))
}

func effectNote(s string) string {
	if s == "None" {
		return ""
	}
	return "[" + s + "]"
}
