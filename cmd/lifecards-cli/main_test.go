package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/peterkuimelis/lifecards/internal/config"
	"github.com/peterkuimelis/lifecards/internal/score"
	"github.com/peterkuimelis/lifecards/internal/score/sqlite"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// seededDB writes three finished lives to a fresh database: Rich is the
// wealthiest, Late ended last.
func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.sqlite")
	store, err := sqlite.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	for i, r := range []struct {
		name   string
		wealth float64
	}{{"Early", 10}, {"Rich", 9000}, {"Late", 500}} {
		rec := score.Record{
			ID:            r.name,
			PlayerName:    r.name,
			Wealth:        r.wealth,
			Age:           160,
			Reason:        "old_age",
			TurnsSurvived: 40,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Save(context.Background(), rec); err != nil {
			t.Fatalf("save %s: %v", r.name, err)
		}
	}
	return path
}

func names(out string) []string {
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if fields := strings.Fields(line); len(fields) > 1 {
			got = append(got, fields[1])
		}
	}
	return got
}

func TestScoresTopAndRecent(t *testing.T) {
	cfg := config.Config{DBPath: seededDB(t), ScoreLimit: 10}
	ctx := context.Background()

	var top bytes.Buffer
	if err := runScores(ctx, cfg, nil, &top); err != nil {
		t.Fatalf("scores: %v", err)
	}
	if got := strings.Join(names(top.String()), ","); got != "Rich,Late,Early" {
		t.Errorf("top = %s\n%s", got, top.String())
	}

	var recent bytes.Buffer
	if err := runScores(ctx, cfg, []string{"--recent", "--limit", "2"}, &recent); err != nil {
		t.Fatalf("scores --recent: %v", err)
	}
	if got := strings.Join(names(recent.String()), ","); got != "Late,Rich" {
		t.Errorf("recent = %s\n%s", got, recent.String())
	}
}

func TestScoresSince(t *testing.T) {
	cfg := config.Config{DBPath: seededDB(t), ScoreLimit: 10}
	since := base.Add(90 * time.Minute).Format(time.RFC3339)

	var out bytes.Buffer
	if err := runScores(context.Background(), cfg, []string{"--since", since}, &out); err != nil {
		t.Fatalf("scores --since: %v", err)
	}
	if got := strings.Join(names(out.String()), ","); got != "Late" {
		t.Errorf("since = %s\n%s", got, out.String())
	}

	if err := runScores(context.Background(), cfg, []string{"--since", "yesterday"}, &out); err == nil {
		t.Error("bad --since accepted")
	}
	if err := runScores(context.Background(), cfg, []string{"--recent", "--since", since}, &out); err == nil {
		t.Error("--recent with --since accepted")
	}
}

func TestScoresRequiresDB(t *testing.T) {
	var out bytes.Buffer
	if err := runScores(context.Background(), config.Config{ScoreLimit: 10}, nil, &out); err == nil {
		t.Fatal("expected an error without a database")
	}
}

func TestSetupErrorsReturnAfterClosingStore(t *testing.T) {
	path := seededDB(t)
	cfg := config.Config{
		DBPath:     path,
		TuningFile: filepath.Join(t.TempDir(), "missing.yaml"),
		ScoreLimit: 10,
		MaxTurns:   500,
	}

	if err := runPlay(context.Background(), cfg, []string{"--name", "Alice"}); err == nil {
		t.Fatal("play with a missing tuning file succeeded")
	}
	if err := runHost(context.Background(), cfg, []string{"--port", "0"}); err == nil {
		t.Fatal("host with a missing tuning file succeeded")
	}
	if err := runPlay(context.Background(), config.Config{}, nil); err == nil {
		t.Fatal("play without --name succeeded")
	}

	// The database is still usable after the failed runs.
	var out bytes.Buffer
	if err := runScores(context.Background(), cfg, []string{"--limit", "1"}, &out); err != nil {
		t.Fatalf("scores after failed runs: %v", err)
	}
	if got := names(out.String()); len(got) != 1 || got[0] != "Rich" {
		t.Errorf("scores = %v", got)
	}
}
