package score

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/peterkuimelis/lifecards/internal/game"
)

// Recorder adapts a Store to the game's end-of-life hook.
type Recorder struct {
	Store Store
	// NewID generates record ids. Defaults to random UUIDs.
	NewID func() string
}

// NewRecorder wraps store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{Store: store}
}

// Save converts the summary and stores it, returning the record id.
func (r *Recorder) Save(ctx context.Context, s game.Summary) (string, error) {
	if r == nil || r.Store == nil {
		return "", fmt.Errorf("score store is not configured")
	}
	newID := r.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	rec := FromSummary(newID(), s)
	if err := r.Store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("save score: %w", err)
	}
	return rec.ID, nil
}

// FromSummary builds a record from an end-of-life summary. A zero EndedAt
// is replaced with the current time.
func FromSummary(id string, s game.Summary) Record {
	created := s.EndedAt
	if created.IsZero() {
		created = time.Now()
	}
	return Record{
		ID:            id,
		PlayerName:    s.PlayerName,
		Wealth:        s.Wealth,
		Goodness:      s.Goodness,
		Ability:       s.Ability,
		Age:           s.Age,
		Reason:        s.Reason.String(),
		TurnsSurvived: s.TurnsSurvived,
		CreatedAt:     created.UTC(),
	}
}

// Epitaph renders the record's cause of death as a sentence, falling back
// to the stored reason text for unknown reasons.
func (r Record) Epitaph() string {
	reason, err := game.ParseGameOverReason(r.Reason)
	if err != nil {
		return r.Reason
	}
	return reason.Epitaph()
}

var _ game.Recorder = (*Recorder)(nil)
