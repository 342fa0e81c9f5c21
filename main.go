package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/session"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "hot reload prefabs/ from disk")
	scale := flag.Float64("scale", 1, "window scale")
	flag.Parse()

	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Fatal(err)
	}
	shopSpec, err := prefabs.LoadShopSpec()
	if err != nil {
		log.Fatal(err)
	}
	s, err := session.New(session.Options{World: worldSpec, Shop: shopSpec, Debug: *debug})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if *watch {
		if err := s.WatchPrefabs(prefabs.Dir); err != nil {
			log.Printf("main: watch %s: %v", prefabs.Dir, err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(common.WorldWidth**scale), int(common.WorldHeight**scale))
	ebiten.SetWindowTitle("jumpy")

	if err := ebiten.RunGame(NewGame(s, *debug)); err != nil {
		log.Fatal(err)
	}
}
