package main

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/younwookim/platfight/internal/api"
	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/application/system"
	"github.com/younwookim/platfight/internal/application/tuning"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
	"github.com/younwookim/platfight/internal/infrastructure/physics"
)

const defaultStage = "battlefield"

// newLoader returns a loader for dir, or for the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// buildMatch spawns the roster on the stage and wires the physics space.
// A stage friction overrides the world default.
func buildMatch(cfg *config.GameConfig, stageCfg *config.StageConfig) *match.Match {
	w := ecs.NewWorld()
	stage := system.LoadStage(w, stageCfg)
	system.SpawnRoster(w, cfg.Roster, stage)

	world := cfg.Physics.World
	if stageCfg.Friction > 0 {
		world.Friction = stageCfg.Friction
	}
	return match.New(w, physics.NewSpace(world), nil, &cfg.Physics.Classifier)
}

// submitRoster queues the tunables of a reloaded roster as live edits.
// Characters not in the running match are skipped.
func submitRoster(store *tuning.Store, roster *config.RosterConfig) int {
	queued := 0
	for _, c := range roster.Characters {
		if err := store.SubmitMovement(c.Name, c.Movement); err != nil {
			log.Printf("Roster reload: %v", err)
			continue
		}
		if err := store.SubmitAttack(c.Name, c.Attack); err != nil {
			log.Printf("Roster reload: %v", err)
			continue
		}
		api.RecordTuningEdit("reload")
		queued++
	}
	return queued
}

// watchRoster reloads the roster file in dir whenever it changes,
// until the watcher is closed
func watchRoster(w *config.Watcher, dir string, onRoster func(*config.RosterConfig)) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(path) != config.RosterFile {
				continue
			}
			roster, err := config.NewLoader(dir).LoadCharacters()
			if err != nil {
				log.Printf("Roster reload skipped: %v", err)
				continue
			}
			onRoster(roster)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}
