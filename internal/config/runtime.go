package config

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/score"
	"github.com/peterkuimelis/lifecards/internal/score/sqlite"
)

// OpenScores opens the score store named by DBPath, falling back to an
// in-memory store. The returned close func is never nil.
func (c Config) OpenScores(ctx context.Context) (score.Store, func() error, error) {
	if c.DBPath == "" {
		return score.NewMemoryStore(), func() error { return nil }, nil
	}
	store, err := sqlite.Open(ctx, c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open scores: %w", err)
	}
	return store, store.Close, nil
}

// LifeConfig builds the engine and life settings, loading TuningFile if set.
func (c Config) LifeConfig(recorder game.Recorder) (game.LifeConfig, error) {
	tuning, err := LoadTuning(c.TuningFile)
	if err != nil {
		return game.LifeConfig{}, err
	}
	return game.LifeConfig{
		Engine: game.EngineConfig{
			Tuning: &tuning,
			Seed:   c.Seed,
		},
		Recorder: recorder,
		MaxTurns: c.MaxTurns,
	}, nil
}
