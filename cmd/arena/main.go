package main

import (
	"flag"
	"log"
	"os"
	"time"

	magichess "github.com/magichess"
	"github.com/magichess/search"
)

var (
	gamesFlag    = flag.Int("games", 2, "number of games to play")
	depthAFlag   = flag.Int("depth_a", 2, "search depth of agent A")
	depthBFlag   = flag.Int("depth_b", 1, "search depth of agent B")
	seedFlag     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for the magic squares of every game")
	maxPliesFlag = flag.Int("max_plies", 200, "adjudicate a draw after this many plies")
	dotFlag      = flag.String("dot", "", "write agent A's last search tree to this graphviz file")
	verboseFlag  = flag.Bool("v", false, "print the arena log")
)

func main() {
	flag.Parse()

	conf := magichess.DefaultConfig()
	conf.Name = "Arena"

	aConf := search.DefaultConfig()
	aConf.Depth = *depthAFlag
	aConf.Trace = *dotFlag != ""
	bConf := search.DefaultConfig()
	bConf.Depth = *depthBFlag

	arena, err := magichess.NewArena(conf, aConf, bConf, *seedFlag, *maxPliesFlag)
	if err != nil {
		log.Fatalf("error setting up arena: %+v", err)
	}

	for i := 0; i < *gamesFlag; i++ {
		start := time.Now()
		winner, err := arena.Play()
		if err != nil {
			log.Fatalf("error in game %d: %+v", i, err)
		}
		log.Printf("Game %d: winner %v in %v (%d plies)", i, winner, time.Since(start), len(arena.Session().History()))
	}

	a, b := arena.Agents()
	log.Println(a)
	log.Println(b)

	if *verboseFlag {
		arena.Log(os.Stderr)
	}
	if *dotFlag != "" {
		dot, err := a.Engine.DOT()
		if err != nil {
			log.Fatalf("error rendering search tree: %+v", err)
		}
		if err := os.WriteFile(*dotFlag, []byte(dot), 0644); err != nil {
			log.Fatal(err)
		}
		log.Printf("search tree written to %s", *dotFlag)
	}
}
