package net

import (
	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/log"
)

// Message types for the JSON protocol over TCP.
const (
	MsgNotify      = "notify"
	MsgChooseCards = "choose_cards"
	MsgGameOver    = "game_over"
	MsgError       = "error"

	MsgJoin    = "join"
	MsgCards   = "cards"
	MsgEndLife = "end_life"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_cards" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "choose_cards"
	Hand []CardView `json:"hand,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  string `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes a beneficial card offered for selection.
type CardView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StateView is the player's status as shown to clients.
type StateView struct {
	Name     string         `json:"name"`
	Turn     int            `json:"turn"`
	Wealth   float64        `json:"wealth"`
	Goodness float64        `json:"goodness"`
	Ability  float64        `json:"ability"`
	Age      int            `json:"age"`
	Effects  map[string]int `json:"effects,omitempty"`
	Over     bool           `json:"over,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Epitaph  string         `json:"epitaph,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "cards": 0-based hand indices in resolution order
	Indices []int `json:"indices,omitempty"`
}

// BuildStateView creates a StateView from a game state.
func BuildStateView(gs game.GameState) *StateView {
	sv := &StateView{
		Name:     gs.PlayerName,
		Turn:     gs.Turn,
		Wealth:   gs.Status.Wealth,
		Goodness: gs.Status.Goodness,
		Ability:  gs.Status.Ability,
		Age:      gs.Status.Age,
		Effects:  gs.Status.EffectLevels(),
		Over:     gs.Over,
	}
	if gs.Over {
		sv.Reason = gs.Reason.String()
		sv.Epitaph = gs.Reason.Epitaph()
	}
	return sv
}

// BuildCardViews lists cards with their 0-based hand index.
func BuildCardViews(cards []*game.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, CardView{Index: i, ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return views
}

// BuildEventView converts a logged event for the wire.
func BuildEventView(event log.GameEvent) *EventView {
	return &EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
