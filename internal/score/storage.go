// Package score persists finished lives for the leaderboard.
package score

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrAlreadyExists indicates a record with the same id is already stored.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidRecord indicates a record failed validation before storage.
	ErrInvalidRecord = errors.New("invalid record")
)

// Record is one finished life as stored on the leaderboard.
type Record struct {
	ID            string
	PlayerName    string
	Wealth        float64
	Goodness      float64
	Ability       float64
	Age           int
	Reason        string
	TurnsSurvived int
	CreatedAt     time.Time
}

// Validate checks the fields a store relies on.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	case strings.TrimSpace(r.PlayerName) == "":
		return fmt.Errorf("%w: player name is required", ErrInvalidRecord)
	case strings.TrimSpace(r.Reason) == "":
		return fmt.Errorf("%w: reason is required", ErrInvalidRecord)
	case r.CreatedAt.IsZero():
		return fmt.Errorf("%w: created at is required", ErrInvalidRecord)
	case r.TurnsSurvived < 0:
		return fmt.Errorf("%w: turns survived is negative", ErrInvalidRecord)
	}
	for _, v := range []float64{r.Wealth, r.Goodness, r.Ability} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite stat", ErrInvalidRecord)
		}
	}
	return nil
}

// Store persists and ranks score records.
type Store interface {
	// Save stores a new record. Duplicate ids return ErrAlreadyExists.
	Save(ctx context.Context, record Record) error
	// Top returns up to limit records ranked by wealth, highest first.
	// A non-zero since restricts the ranking to records created at or after it.
	Top(ctx context.Context, limit int, since time.Time) ([]Record, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

func checkLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than zero")
	}
	return nil
}
