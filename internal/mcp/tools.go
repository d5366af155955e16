package mcp

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/net"
	"github.com/peterkuimelis/lifecards/internal/score"
)

// Tools serves one life at a time to an MCP client.
type Tools struct {
	Life       game.LifeConfig
	Scores     score.Store // nil disables top_scores
	ScoreLimit int         // default for top_scores (0 = 10)

	mu     sync.Mutex
	active *Session
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startLifeTool(), t.handleStartLife)
	s.AddTool(drawCardsTool(), t.handleDrawCards)
	s.AddTool(selectCardsTool(), t.handleSelectCards)
	s.AddTool(endLifeTool(), t.handleEndLife)
	s.AddTool(getStateTool(), t.handleGetState)
	s.AddTool(topScoresTool(), t.handleTopScores)
}

// --- Tool definitions ---

func startLifeTool() mcp.Tool {
	return mcp.NewTool("start_life",
		mcp.WithDescription("Begin a new life with randomly rolled wealth, goodness, ability and age. "+
			"Any life already in progress is discarded. Returns the starting state."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the person living this life")),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for a reproducible life")),
	)
}

func drawCardsTool() mcp.Tool {
	return mcp.NewTool("draw_cards",
		mcp.WithDescription("Draw this turn's hand of beneficial cards. Calling it again before selecting returns the same hand."),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Play one or more beneficial cards from the drawn hand, in order. "+
			"Fate deals the same number of harmful cards, then status effects tick and the person ages."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based hand indices in play order (e.g. '2 0')")),
	)
}

func endLifeTool() mcp.Tool {
	return mcp.NewTool("end_life",
		mcp.WithDescription("End the current life immediately. The final score is recorded."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current status, the drawn hand if any, and events since the last call. Read-only."),
	)
}

func topScoresTool() mcp.Tool {
	return mcp.NewTool("top_scores",
		mcp.WithDescription("List the wealthiest finished lives."),
		mcp.WithNumber("limit", mcp.Description("Number of rows to return")),
	)
}

// --- Tool handlers ---

func (t *Tools) session() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tools) handleStartLife(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	seed := int64(request.GetInt("seed", 0))

	sess, err := NewSession(t.Life, name, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start life: %v", err), nil
	}

	t.mu.Lock()
	t.active = sess
	t.mu.Unlock()

	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

func (t *Tools) handleDrawCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No life is running. Use start_life first."), nil
	}
	resp, err := sess.Draw()
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot draw: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No life is running. Use start_life first."), nil
	}

	var indices []int
	for _, p := range strings.Fields(request.GetString("indices", "")) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
		}
		indices = append(indices, idx)
	}

	resp, err := sess.Select(ctx, indices)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot play those cards: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleEndLife(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No life is running. Use start_life first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.EndLife(ctx))), nil
}

func (t *Tools) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No life is running. Use start_life first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

func (t *Tools) handleTopScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.Scores == nil {
		return mcp.NewToolResultError("Scores are not being recorded."), nil
	}
	def := t.ScoreLimit
	if def <= 0 {
		def = 10
	}
	limit := request.GetInt("limit", def)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be >= 1"), nil
	}

	records, err := t.Scores.Top(ctx, limit, time.Time{})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load scores: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(&ToolResponse{
		Events: []net.EventView{},
		Scores: BuildScoreViews(records),
	})), nil
}
