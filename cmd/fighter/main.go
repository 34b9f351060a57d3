package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platfight/internal/api"
	"github.com/younwookim/platfight/internal/application/game"
	"github.com/younwookim/platfight/internal/application/scene/playing"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "Config directory; enables hot reload of characters.yaml (default: embedded configs)")
	stageName := flag.String("stage", defaultStage, "Stage to fight on")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Run a recorded replay headless and print the final state")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to create config loader: %v", err)
	}

	if *replayFlag != "" {
		snap, err := runReplay(loader, *replayFlag)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		for _, c := range snap.Characters {
			fmt.Printf("%s: pos=(%.2f, %.2f) phase=%s touch=%s damage=%.0f%%\n",
				c.Name, c.Position.X, c.Position.Y, c.Phase, c.Touch, c.Percentage)
		}
		fmt.Printf("ticks: %d\n", snap.Tick)
		return
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	stageCfg, err := loader.LoadStage(*stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	m := buildMatch(cfg, stageCfg)
	m.SetHooks(api.MatchHooks())

	if cfg.Physics.API.Enabled {
		server := api.NewServer(cfg.Physics.API, m, m.Tuning())
		defer server.Stop()
		go func() {
			if err := server.Start(cfg.Physics.API.Addr); err != nil {
				log.Printf("API server stopped: %v", err)
			}
		}()
	}

	if *configDir != "" {
		watcher, err := config.NewWatcher(*configDir)
		if err != nil {
			log.Printf("Config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			go watchRoster(watcher, *configDir, func(roster *config.RosterConfig) {
				n := submitRoster(m.Tuning(), roster)
				log.Printf("Roster reloaded: %d characters queued", n)
			})
		}
	}

	display := cfg.Physics.Display
	fight := playing.New(cfg, *stageName, m, *recordFlag)
	g := game.New(fight, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	scale := display.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("Platform Fighter")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game exited: %v", err)
	}
}
