// jumpy-sim runs a session in the terminal.
//
//	go run ./cmd/jumpy-sim [-log jumpy.log] [-watch]
//
// Arrows move, space jumps, s super jumps, l buys a life, j buys a super
// jump, r restarts, q quits. With -frames the session runs headless for that
// many steps and prints the final balance.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/system"
	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/session"
	"github.com/milk9111/jumpy/tui"
)

const tickRate = time.Second / 60

func main() {
	logPath := flag.String("log", "jumpy-sim.log", "log file while the terminal UI is active")
	frames := flag.Int("frames", 0, "run headless for this many steps and exit")
	watch := flag.Bool("watch", false, "hot reload prefabs/ from disk")
	debug := flag.Bool("debug", false, "log unresolved contacts")
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
			log.Printf("jumpy-sim: watch %s: %v", prefabs.Dir, err)
		}
	}

	if *frames > 0 {
		runHeadless(s, *frames)
		return
	}

	f, err := os.Create(*logPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	log.SetOutput(f)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	run(s, screen)
}

func runHeadless(s *session.Session, frames int) {
	collected, deaths := 0, 0
	for i := 0; i < frames; i++ {
		for _, ev := range s.Step() {
			switch ev.Type {
			case ecs.EventPickupCollected:
				collected++
			case ecs.EventPlayerDied:
				deaths++
			}
		}
	}
	e := s.Economy()
	fmt.Printf("frames=%d collected=%d deaths=%d coins=%d health=%d super_jumps=%d\n",
		s.Frame(), collected, deaths, e.Coins(), e.Health(), e.Owned(system.SuperJumpItem))
}

func run(s *session.Session, screen tcell.Screen) {
	renderer := tui.NewRenderer(screen)
	quit := make(chan struct{})
	messages := make(chan string, 8)

	notify := func(r economy.Result) {
		select {
		case messages <- r.Message:
		default:
		}
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Rune() == 'q':
				close(quit)
				return
			case key.Key() == tcell.KeyLeft:
				s.SetInput(-1, false, false)
			case key.Key() == tcell.KeyRight:
				s.SetInput(1, false, false)
			case key.Key() == tcell.KeyDown:
				s.SetInput(0, false, false)
			case key.Rune() == ' ':
				s.SetInput(0, true, false)
			case key.Rune() == 's':
				s.SetInput(0, false, true)
			case key.Rune() == 'l':
				s.RequestPurchase("life", notify)
			case key.Rune() == 'j':
				s.RequestPurchase("super_jump", notify)
			case key.Rune() == 'r':
				s.Post(func(s *session.Session) {
					if err := s.Restart(); err != nil {
						log.Printf("jumpy-sim: restart: %v", err)
					}
				})
			}
		}
	}()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case msg := <-messages:
			renderer.SetMessage(msg)
		case <-ticker.C:
			for _, ev := range s.Step() {
				if ev.Type == ecs.EventPlayerDied {
					renderer.SetMessage("You died. Press r to restart.")
				}
			}
			renderer.Draw(s)
		}
	}
}
