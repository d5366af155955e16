package mcp

import (
	"context"
	"errors"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/log"
	"github.com/peterkuimelis/lifecards/internal/net"
)

var errNoChoice = errors.New("no choice queued")

// MCPController implements game.Player for a tool-driven session. The
// session queues the agent's choice before each turn and the controller
// hands it to the engine.
type MCPController struct {
	session *Session
	next    *game.Choice
}

// NewMCPController creates a controller bound to session.
func NewMCPController(session *Session) *MCPController {
	return &MCPController{session: session}
}

func (c *MCPController) queue(choice game.Choice) {
	c.next = &choice
}

// ChooseCards implements game.Player.
func (c *MCPController) ChooseCards(ctx context.Context, state game.GameState, hand game.Hand) (game.Choice, error) {
	if c.next == nil {
		return game.Choice{}, errNoChoice
	}
	choice := *c.next
	c.next = nil
	return choice, nil
}

// Notify implements game.Player.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(*net.BuildEventView(event))
	return nil
}
