package main

import (
	"fmt"

	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/application/replay"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// runReplay loads a recording and replays it without a window
func runReplay(loader *config.Loader, path string) (match.Snapshot, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return match.Snapshot{}, err
	}
	return replayData(loader, *data)
}

// replayData feeds recorded intents to the player, one per tick
func replayData(loader *config.Loader, data replay.ReplayData) (match.Snapshot, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("failed to load config: %w", err)
	}

	stageName := data.Stage
	if stageName == "" {
		stageName = defaultStage
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("failed to load replay stage: %w", err)
	}

	m := buildMatch(cfg, stageCfg)
	player := m.World().PlayerID
	r := replay.NewReplayer(data)
	dt := r.DT()

	for {
		intent, ok := r.GetInput()
		if !ok {
			break
		}
		m.SetIntent(player, intent)
		m.Step(dt)
	}

	return m.Snapshot(), nil
}
