package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/net"
	"github.com/peterkuimelis/lifecards/internal/score"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []net.EventView `json:"events"`
	State    *net.StateView  `json:"state,omitempty"`
	Hand     []net.CardView  `json:"hand,omitempty"`
	Turn     *TurnView       `json:"turn,omitempty"`
	GameOver bool            `json:"game_over"`
	Scores   []ScoreView     `json:"scores,omitempty"`
}

// TurnView summarizes one committed turn.
type TurnView struct {
	Beneficial   []string `json:"beneficial"`
	Harmful      []string `json:"harmful"`
	Descriptions []string `json:"descriptions"`
}

// ScoreView is one leaderboard row.
type ScoreView struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Wealth        float64 `json:"wealth"`
	Age           int     `json:"age"`
	Epitaph       string  `json:"epitaph"`
	TurnsSurvived int     `json:"turns_survived"`
	EndedAt       string  `json:"ended_at"`
}

// Session holds one agent-driven life. Tool calls are serialized by mu.
type Session struct {
	life *game.Life
	ctrl *MCPController

	mu       sync.Mutex
	eventsMu sync.Mutex
	events   []net.EventView
}

// NewSession starts a life named name. A non-zero seed overrides the
// configured one.
func NewSession(cfg game.LifeConfig, name string, seed int64) (*Session, error) {
	if seed != 0 {
		cfg.Engine.Seed = seed
		cfg.Engine.RNG = nil
	}
	sess := &Session{}
	sess.ctrl = NewMCPController(sess)
	life, err := game.NewLife(cfg, sess.ctrl)
	if err != nil {
		return nil, fmt.Errorf("new life: %w", err)
	}
	sess.life = life
	if _, err := life.Start(name, nil); err != nil {
		return nil, err
	}
	return sess, nil
}

// Draw deals the turn's hand, or returns the hand already dealt.
func (s *Session) Draw() (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hand, ok := s.life.Engine.Hand()
	if !ok {
		var err error
		if hand, err = s.life.Engine.DrawCards(); err != nil {
			return nil, err
		}
	}
	resp := s.respond()
	resp.Hand = net.BuildCardViews(hand.Beneficial)
	return resp, nil
}

// Select plays the hand cards at indices, in order.
func (s *Session) Select(ctx context.Context, indices []int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.life.Engine.State().Over {
		return nil, game.ErrGameOver
	}
	if _, ok := s.life.Engine.Hand(); !ok {
		return nil, game.ErrNoHand
	}
	s.ctrl.queue(game.Choice{Indices: indices})
	res, err := s.life.PlayTurn(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.respond()
	resp.Turn = &TurnView{
		Beneficial:   game.IDs(res.Beneficial),
		Harmful:      game.IDs(res.Harmful),
		Descriptions: res.Descriptions,
	}
	return resp, nil
}

// EndLife ends the life now.
func (s *Session) EndLife(ctx context.Context) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.life.EndLife(ctx)
	return s.respond()
}

// Snapshot reports the state and any events since the last response.
func (s *Session) Snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := s.respond()
	if hand, ok := s.life.Engine.Hand(); ok {
		resp.Hand = net.BuildCardViews(hand.Beneficial)
	}
	return resp
}

// Over reports whether the life has ended.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.life.Engine.State().Over
}

// Wait blocks until pending score saves finish.
func (s *Session) Wait() {
	s.life.Wait()
}

// respond builds a response with the current state. Must be called with mu held.
func (s *Session) respond() *ToolResponse {
	gs := s.life.Engine.State()
	return &ToolResponse{
		Events:   s.drainEvents(),
		State:    net.BuildStateView(gs),
		GameOver: gs.Over,
	}
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev net.EventView) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []net.EventView {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// BuildScoreViews ranks records in the given order, starting at 1.
func BuildScoreViews(records []score.Record) []ScoreView {
	views := make([]ScoreView, 0, len(records))
	for i, r := range records {
		views = append(views, ScoreView{
			Rank:          i + 1,
			Name:          r.PlayerName,
			Wealth:        r.Wealth,
			Age:           r.Age,
			Epitaph:       r.Epitaph(),
			TurnsSurvived: r.TurnsSurvived,
			EndedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return views
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
