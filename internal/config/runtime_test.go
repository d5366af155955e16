package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterkuimelis/lifecards/internal/score"
	"github.com/peterkuimelis/lifecards/internal/score/sqlite"
)

func TestOpenScoresDefaultsToMemory(t *testing.T) {
	store, closeFn, err := Config{}.OpenScores(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()
	if _, ok := store.(*score.MemoryStore); !ok {
		t.Fatalf("store is %T", store)
	}
}

func TestOpenScoresUsesSQLite(t *testing.T) {
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "scores.sqlite")}
	store, closeFn, err := cfg.OpenScores(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.(*sqlite.Store); !ok {
		t.Fatalf("store is %T", store)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestLifeConfigLoadsTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("max_age: 90\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := Config{TuningFile: path, Seed: 7, MaxTurns: 12}
	lc, err := cfg.LifeConfig(nil)
	if err != nil {
		t.Fatalf("life config: %v", err)
	}
	if lc.Engine.Tuning == nil || lc.Engine.Tuning.MaxAge != 90 || lc.Engine.Seed != 7 || lc.MaxTurns != 12 {
		t.Fatalf("life config = %+v", lc)
	}

	cfg.TuningFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.LifeConfig(nil); err == nil {
		t.Fatal("expected error for missing tuning file")
	}
}
