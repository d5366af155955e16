package game

import "time"

// TurnRecord is one append-only history entry.
type TurnRecord struct {
	Turn         int
	Before       Status
	After        Status
	Beneficial   []string // card ids, in resolution order
	Harmful      []string
	Descriptions []string
	GameOver     bool
	Reason       GameOverReason
	Timestamp    time.Time
}

// GameState is the full state of one life. Engine owns it; callers only
// ever see copies.
type GameState struct {
	PlayerID   string
	PlayerName string
	Status     Status
	Turn       int
	Over       bool
	Reason     GameOverReason

	SelectedBeneficial []*Card
	SelectedHarmful    []*Card

	History   []TurnRecord
	StartedAt time.Time
}

// TurnsSurvived is the number of committed turns.
func (gs GameState) TurnsSurvived() int {
	return len(gs.History)
}

// Clone returns a deep copy. Cards are shared; they are immutable.
func (gs GameState) Clone() GameState {
	c := gs
	c.Status = gs.Status.Clone()
	c.SelectedBeneficial = append([]*Card(nil), gs.SelectedBeneficial...)
	c.SelectedHarmful = append([]*Card(nil), gs.SelectedHarmful...)
	if gs.History != nil {
		c.History = make([]TurnRecord, len(gs.History))
		for i, rec := range gs.History {
			rec.Before = rec.Before.Clone()
			rec.After = rec.After.Clone()
			rec.Beneficial = append([]string(nil), rec.Beneficial...)
			rec.Harmful = append([]string(nil), rec.Harmful...)
			rec.Descriptions = append([]string(nil), rec.Descriptions...)
			c.History[i] = rec
		}
	}
	return c
}

// Summary is the end-of-life record handed to the score collaborator.
type Summary struct {
	PlayerID      string
	PlayerName    string
	Wealth        float64
	Goodness      float64
	Ability       float64
	Age           int
	Reason        GameOverReason
	TurnsSurvived int
	EndedAt       time.Time
}

// Summarize builds the end-of-life summary from a state.
func Summarize(gs GameState, at time.Time) Summary {
	return Summary{
		PlayerID:      gs.PlayerID,
		PlayerName:    gs.PlayerName,
		Wealth:        gs.Status.Wealth,
		Goodness:      gs.Status.Goodness,
		Ability:       gs.Status.Ability,
		Age:           gs.Status.Age,
		Reason:        gs.Reason,
		TurnsSurvived: gs.TurnsSurvived(),
		EndedAt:       at,
	}
}
