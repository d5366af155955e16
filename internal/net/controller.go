package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/log"
)

// NetworkController implements game.Player over a TCP connection.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ReadJoin reads the client's opening handshake and returns the chosen name.
func (nc *NetworkController) ReadJoin() (string, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg, err := nc.recv()
	if err != nil {
		return "", fmt.Errorf("read join message: %w", err)
	}
	if msg.Type != MsgJoin {
		return "", fmt.Errorf("expected %q message, got %q", MsgJoin, msg.Type)
	}
	return msg.Name, nil
}

// ChooseCards implements game.Player.
func (nc *NetworkController) ChooseCards(ctx context.Context, state game.GameState, hand game.Hand) (game.Choice, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = nc.conn.SetReadDeadline(deadline)
		defer nc.conn.SetReadDeadline(time.Time{})
	}

	msg := ServerMessage{
		Type:  MsgChooseCards,
		State: BuildStateView(state),
		Hand:  BuildCardViews(hand.Beneficial),
	}
	if err := nc.send(msg); err != nil {
		return game.Choice{}, fmt.Errorf("send choose_cards: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return game.Choice{}, fmt.Errorf("recv cards: %w", err)
	}

	switch resp.Type {
	case MsgEndLife:
		return game.Choice{EndLife: true}, nil
	case MsgCards:
		return game.Choice{Indices: resp.Indices}, nil
	default:
		return game.Choice{}, fmt.Errorf("unexpected message %q", resp.Type)
	}
}

// Notify implements game.Player.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: BuildEventView(event)})
}

// SendError reports a rejected choice so the client can retry.
func (nc *NetworkController) SendError(err error) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgError, Error: err.Error()})
}

// SendGameOver sends the final state to the client.
func (nc *NetworkController) SendGameOver(state game.GameState) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, State: BuildStateView(state)})
}
