package game

import (
	"context"
	"fmt"
	stdlog "log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/peterkuimelis/lifecards/internal/log"
)

// Choice is a player's answer to a drawn hand.
type Choice struct {
	Indices []int // 0-based indices into the beneficial hand, in resolution order
	EndLife bool  // end the life now instead of playing cards
}

// Player is the interface that terminal, network, MCP and web players implement.
type Player interface {
	// ChooseCards presents the beneficial hand and waits for a choice.
	ChooseCards(ctx context.Context, state GameState, hand Hand) (Choice, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Recorder persists end-of-life summaries. It returns the stored record id.
type Recorder interface {
	Save(ctx context.Context, s Summary) (string, error)
}

// LifeConfig holds configuration for creating a life.
type LifeConfig struct {
	Engine      EngineConfig
	Recorder    Recorder      // nil disables score saving
	MaxTurns    int           // stop after this many turns (0 = 500)
	SaveTimeout time.Duration // per score save (0 = 10s)
}

// Life drives an Engine with a Player: draw, ask, commit, check age,
// and hand the final summary to the Recorder.
type Life struct {
	Engine   *Engine
	Player   Player
	Logger   log.EventLogger
	recorder Recorder
	ctx      context.Context

	maxTurns    int
	saveTimeout time.Duration
	busy        atomic.Bool
	saves       sync.WaitGroup
}

// notifier tees engine events to the player.
type notifier struct {
	log.EventLogger
	life *Life
}

func (n notifier) Log(event log.GameEvent) {
	n.EventLogger.Log(event)
	if n.life.Player != nil {
		// Notification errors are ignored; the next ChooseCards will surface a dead player.
		_ = n.life.Player.Notify(n.life.ctx, event)
	}
}

// NewLife creates a life for player from the given config.
func NewLife(cfg LifeConfig, player Player) (*Life, error) {
	l := &Life{
		Player:      player,
		recorder:    cfg.Recorder,
		ctx:         context.Background(),
		maxTurns:    cfg.MaxTurns,
		saveTimeout: cfg.SaveTimeout,
	}
	if l.maxTurns == 0 {
		l.maxTurns = 500 // safety limit
	}
	if l.saveTimeout == 0 {
		l.saveTimeout = 10 * time.Second
	}
	l.Logger = cfg.Engine.Logger
	if l.Logger == nil {
		l.Logger = log.NewMemoryLogger()
	}
	ecfg := cfg.Engine
	ecfg.Logger = notifier{EventLogger: l.Logger, life: l}
	eng, err := NewEngine(ecfg)
	if err != nil {
		return nil, err
	}
	l.Engine = eng
	return l, nil
}

// Start begins a new life.
func (l *Life) Start(name string, overrides *StatusOverrides) (GameState, error) {
	if l.busy.Load() {
		return GameState{}, ErrTurnInProgress
	}
	return l.Engine.Initialize(name, overrides)
}

// PlayTurn plays one turn. A second call while one is still running fails
// with ErrTurnInProgress instead of committing twice. If the player
// returns an invalid choice the drawn hand is kept, so retrying does not
// redraw.
func (l *Life) PlayTurn(ctx context.Context) (TurnResult, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return TurnResult{}, ErrTurnInProgress
	}
	defer l.busy.Store(false)
	l.ctx = ctx

	hand, ok := l.Engine.Hand()
	if !ok {
		var err error
		if hand, err = l.Engine.DrawCards(); err != nil {
			return TurnResult{}, err
		}
	}

	choice, err := l.Player.ChooseCards(ctx, l.Engine.State(), hand)
	if err != nil {
		return TurnResult{}, fmt.Errorf("choose cards: %w", err)
	}

	if choice.EndLife {
		gs := l.Engine.EndLife()
		l.finish(ctx)
		return TurnResult{
			Turn:     gs.Turn,
			Before:   gs.Status,
			Status:   gs.Status,
			GameOver: true,
			Reason:   gs.Reason,
		}, nil
	}

	picked, err := hand.Pick(choice.Indices)
	if err != nil {
		return TurnResult{}, err
	}
	res, err := l.Engine.SelectCards(picked, nil)
	if err != nil {
		return TurnResult{}, err
	}
	if !res.GameOver && l.Engine.CheckAgeGameOver() {
		res.GameOver = true
		res.Reason = ReasonOldAge
	}
	if res.GameOver {
		l.finish(ctx)
	}
	return res, nil
}

// EndLife ends the life early and saves the score. It is a no-op once the
// life is over.
func (l *Life) EndLife(ctx context.Context) GameState {
	if l.Engine.State().Over {
		return l.Engine.State()
	}
	l.ctx = ctx
	gs := l.Engine.EndLife()
	if gs.Over {
		l.finish(ctx)
	}
	return gs
}

// Run plays turns until the life ends, ctx is cancelled, or the turn
// limit is reached. The life must have been started.
func (l *Life) Run(ctx context.Context) (GameState, error) {
	for !l.Engine.State().Over {
		if l.Engine.State().Turn > l.maxTurns {
			return l.Engine.State(), fmt.Errorf("turn limit reached (%d turns)", l.maxTurns)
		}
		if _, err := l.PlayTurn(ctx); err != nil {
			return l.Engine.State(), err
		}
		if err := ctx.Err(); err != nil {
			return l.Engine.State(), err
		}
	}
	return l.Engine.State(), nil
}

// Wait blocks until every pending score save has finished.
func (l *Life) Wait() {
	l.saves.Wait()
}

// finish hands the summary to the recorder without waiting for it. A
// failed save is logged and dropped.
func (l *Life) finish(ctx context.Context) {
	if l.recorder == nil {
		return
	}
	gs := l.Engine.State()
	summary := Summarize(gs, l.Engine.now())
	rec := l.recorder
	timeout := l.saveTimeout
	logger := l.Logger

	l.saves.Add(1)
	go func() {
		defer l.saves.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		id, err := rec.Save(saveCtx, summary)
		if err != nil {
			stdlog.Printf("score save for %s failed: %v", summary.PlayerName, err)
			logger.Log(log.NewScoreFailedEvent(gs.Turn, gs.PlayerName, err))
			return
		}
		logger.Log(log.NewScoreSavedEvent(gs.Turn, gs.PlayerName, id))
	}()
}
