package game

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/peterkuimelis/lifecards/internal/log"
)

// playTranscript lives a whole default-catalog life, always playing every
// card in the hand, and returns the text log.
func playTranscript(t *testing.T, seed int64) (string, GameState) {
	t.Helper()
	var buf bytes.Buffer
	player := NewScriptedPlayer(t, "P1")
	player.onChoose = func() {
		hand := player.hands[len(player.hands)-1]
		indices := make([]int, len(hand.Beneficial))
		for i := range indices {
			indices[i] = i
		}
		player.AddChoice(indices...)
	}
	l, err := NewLife(LifeConfig{Engine: EngineConfig{
		Seed:   seed,
		Logger: log.NewTextLogger(&buf),
		Clock:  fixedClock,
	}}, player)
	if err != nil {
		t.Fatalf("NewLife: %v", err)
	}
	if _, err := l.Start("Transcript", nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	gs, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return buf.String(), gs
}

// TestTranscriptSeededLife plays a full life from a fixed seed twice and
// checks both runs produce the same log. Set LIFECARDS_TRANSCRIPT to a
// path to keep the log for reading.
func TestTranscriptSeededLife(t *testing.T) {
	first, gs := playTranscript(t, 20240601)
	second, _ := playTranscript(t, 20240601)

	if first != second {
		t.Fatal("same seed produced different transcripts")
	}
	if !gs.Over || gs.Reason == ReasonNone {
		t.Fatalf("life did not end: %+v", gs)
	}
	for i, rec := range gs.History {
		if rec.Turn != i+1 {
			t.Errorf("history[%d].Turn = %d", i, rec.Turn)
		}
		if len(rec.Beneficial) == 0 {
			t.Errorf("turn %d played no cards", rec.Turn)
		}
	}

	if path := os.Getenv("LIFECARDS_TRANSCRIPT"); path != "" {
		if err := os.WriteFile(path, []byte(first), 0o644); err != nil {
			t.Fatalf("write transcript: %v", err)
		}
		t.Logf("transcript written to %s", path)
	}
}

func TestTranscriptSeedsDiffer(t *testing.T) {
	a, _ := playTranscript(t, 1)
	b, _ := playTranscript(t, 2)
	if a == b {
		t.Fatal("different seeds produced identical transcripts")
	}
}
