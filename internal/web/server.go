package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/lifecards/internal/game"
	lcnet "github.com/peterkuimelis/lifecards/internal/net"
	"github.com/peterkuimelis/lifecards/internal/score"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	BaseRate    float64 `json:"baseRate"`
}

// ScoreInfo is one leaderboard row for the /api/scores endpoint.
type ScoreInfo struct {
	Name          string    `json:"name"`
	Wealth        float64   `json:"wealth"`
	Goodness      float64   `json:"goodness"`
	Ability       float64   `json:"ability"`
	Age           int       `json:"age"`
	Reason        string    `json:"reason"`
	Epitaph       string    `json:"epitaph"`
	TurnsSurvived int       `json:"turnsSurvived"`
	EndedAt       time.Time `json:"endedAt"`
}

// Config holds what the web server needs to host lives.
type Config struct {
	Life       game.LifeConfig
	Scores     score.Store // nil disables /api/scores
	ScoreLimit int         // default row count for /api/scores (0 = 10)
	EventLog   io.Writer   // host-side event log; nil discards it
}

// Server is the lifecards web UI server.
type Server struct {
	cfg   Config
	games *lcnet.Server
	mux   *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg Config) *Server {
	if cfg.ScoreLimit <= 0 {
		cfg.ScoreLimit = 10
	}
	out := cfg.EventLog
	if out == nil {
		out = io.Discard
	}
	s := &Server{
		cfg:   cfg,
		games: &lcnet.Server{Life: cfg.Life, Out: out},
		mux:   http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/scores", s.handleScores)

	// WebSocket play bridge
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	catalog := s.cfg.Life.Engine.Catalog
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	cards := make([]CardInfo, 0, catalog.Len())
	for _, c := range catalog.All() {
		cards = append(cards, CardInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category.String(),
			BaseRate:    c.BaseRate,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Scores == nil {
		http.Error(w, "scores are not being recorded", http.StatusNotFound)
		return
	}
	q := r.URL.Query()

	limit := s.cfg.ScoreLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var (
		records []score.Record
		err     error
	)
	if q.Get("order") == "recent" {
		records, err = s.cfg.Scores.Recent(r.Context(), limit)
	} else {
		var since time.Time
		if raw := q.Get("since"); raw != "" {
			if since, err = time.Parse(time.RFC3339, raw); err != nil {
				http.Error(w, "since must be an RFC 3339 timestamp", http.StatusBadRequest)
				return
			}
		}
		records, err = s.cfg.Scores.Top(r.Context(), limit, since)
	}
	if err != nil {
		log.Printf("load scores: %v", err)
		http.Error(w, "could not load scores", http.StatusInternalServerError)
		return
	}

	rows := make([]ScoreInfo, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ScoreInfo{
			Name:          rec.PlayerName,
			Wealth:        rec.Wealth,
			Goodness:      rec.Goodness,
			Ability:       rec.Ability,
			Age:           rec.Age,
			Reason:        rec.Reason,
			Epitaph:       rec.Epitaph(),
			TurnsSurvived: rec.TurnsSurvived,
			EndedAt:       rec.CreatedAt,
		})
	}
	writeJSON(w, rows)
}

// handleWebSocket relays the line protocol between the browser and a life
// hosted in-process. The browser speaks the same messages as a TCP client,
// starting with join.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		if err := s.games.ServeConn(ctx, serverConn); err != nil {
			log.Printf("web life ended: %v", err)
		}
	}()

	done := make(chan struct{})

	// Game → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(clientConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("game read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → game (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				cancel()
				return
			}
			data = append(data, '\n')
			if _, err := clientConn.Write(data); err != nil {
				return
			}
		}
	}()

	select {
	case <-done:
		wsConn.Close(websocket.StatusNormalClosure, "life ended")
	case <-ctx.Done():
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
