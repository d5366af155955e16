package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	In   io.Reader // nil means stdin
	Out  io.Writer // nil means stdout
}

// Connect dials a server, joins under name, and runs the REPL.
func Connect(ctx context.Context, addr string, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client := &Client{conn: conn}
	if err := client.Join(name); err != nil {
		return err
	}
	fmt.Fprintln(client.out(), "Connected! Waiting for your life to begin...")
	return client.RunREPL(ctx)
}

// Join sends the opening handshake.
func (c *Client) Join(name string) error {
	if err := json.NewEncoder(c.conn).Encode(ClientMessage{Type: MsgJoin, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseCards:
			c.renderState(msg.State)
			c.renderHand(msg.Hand)
			reply := c.readChoice(reader, len(msg.Hand))
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}

		case MsgError:
			fmt.Fprintf(c.out(), "! %s\n", msg.Error)

		case MsgGameOver:
			c.renderGameOver(msg.State)
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	phase := ev.Phase
	for len(phase) < 10 {
		phase += " "
	}
	fmt.Fprintf(c.out(), "T%-3d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  %s, age %d  (turn %d)\n", sv.Name, sv.Age, sv.Turn)
	fmt.Fprintf(w, "║  Wealth: %.0f  Goodness: %.0f  Ability: %.0f\n", sv.Wealth, sv.Goodness, sv.Ability)
	if len(sv.Effects) > 0 {
		fmt.Fprintf(w, "║  Effects: %s\n", formatEffects(sv.Effects))
	}
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
}

func formatEffects(effects map[string]int) string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s Lv.%d", name, effects[name])
	}
	return strings.Join(parts, ", ")
}

func (c *Client) renderHand(hand []CardView) {
	w := c.out()
	fmt.Fprintln(w, "\nChoose the cards to play, in order (e.g. \"2 1\"), or \"q\" to end your life:")
	for _, cv := range hand {
		fmt.Fprintf(w, "  %d) %s: %s\n", cv.Index+1, cv.Name, cv.Description)
	}
}

func (c *Client) renderGameOver(sv *StateView) {
	w := c.out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "          GAME OVER")
	fmt.Fprintln(w, "═══════════════════════════════════")
	if sv != nil {
		fmt.Fprintf(w, "%s: %s at age %d\n", sv.Name, sv.Epitaph, sv.Age)
		fmt.Fprintf(w, "Final wealth: %.0f\n", sv.Wealth)
	}
	fmt.Fprintln(w, "═══════════════════════════════════")
}

// readChoice reads card numbers until the line is valid. End of input ends
// the life.
func (c *Client) readChoice(reader *bufio.Reader, count int) ClientMessage {
	for {
		fmt.Fprint(c.out(), "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" && err != nil {
			return ClientMessage{Type: MsgEndLife}
		}
		if line == "q" || line == "quit" || line == "end" {
			return ClientMessage{Type: MsgEndLife}
		}
		if indices, ok := parseIndices(line, count); ok {
			return ClientMessage{Type: MsgCards, Indices: indices}
		}
		fmt.Fprintf(c.out(), "Enter distinct numbers between 1 and %d separated by spaces\n", count)
	}
}

// parseIndices converts 1-based card numbers to 0-based indices.
func parseIndices(line string, count int) ([]int, bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts) > count {
		return nil, false
	}
	seen := make(map[int]bool, len(parts))
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > count || seen[n] {
			return nil, false
		}
		seen[n] = true
		indices = append(indices, n-1)
	}
	return indices, true
}

func (c *Client) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Client) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
