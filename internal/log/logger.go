package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	events := l.Events()
	if len(events) == 0 {
		return GameEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 10 chars for alignment
	for len(phase) < 10 {
		phase += " "
	}

	return fmt.Sprintf("T%-3d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewLifeEvent(player string, details string) GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   "Init",
		Player:  player,
		Type:    EventNewLife,
		Details: fmt.Sprintf("%s is born: %s", player, details),
	}
}

func NewTurnEvent(turn int, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, player),
	}
}

func NewDrawEvent(turn int, player string, beneficial, harmful []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws [%s] / [%s]", player, strings.Join(beneficial, ", "), strings.Join(harmful, ", ")),
	}
}

func NewSelectEvent(turn int, player string, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Select",
		Player:  player,
		Type:    EventSelect,
		Card:    cardID,
		Details: fmt.Sprintf("%s chooses %s", player, cardID),
	}
}

func NewAutoSelectEvent(turn int, player string, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Select",
		Player:  player,
		Type:    EventAutoSelect,
		Card:    cardID,
		Details: fmt.Sprintf("fate deals %s to %s", cardID, player),
	}
}

func NewResolveEvent(turn int, player string, cardID string, description string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolve",
		Player:  player,
		Type:    EventResolve,
		Card:    cardID,
		Details: fmt.Sprintf("%s: %s", cardID, description),
	}
}

func NewTickEvent(turn int, player string, effect string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Tick",
		Player:  player,
		Type:    EventStatusTick,
		Details: fmt.Sprintf("%s: %s", effect, details),
	}
}

func NewAgingEvent(turn int, player string, oldAge, newAge int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Tick",
		Player:  player,
		Type:    EventAging,
		Details: fmt.Sprintf("%s ages %d → %d", player, oldAge, newAge),
	}
}

func NewGameOverEvent(turn int, phase string, player string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventGameOver,
		Details: fmt.Sprintf("%s's life is over (%s)", player, reason),
	}
}

func NewEndLifeEvent(turn int, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Player:  player,
		Type:    EventEndLife,
		Details: fmt.Sprintf("%s chose to end their life early", player),
	}
}

func NewResetEvent(player string) GameEvent {
	return GameEvent{
		Phase:   "Reset",
		Player:  player,
		Type:    EventReset,
		Details: "game reset",
	}
}

func NewScoreSavedEvent(turn int, player string, recordID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Player:  player,
		Type:    EventScoreSaved,
		Details: fmt.Sprintf("score saved for %s (%s)", player, recordID),
	}
}

func NewScoreFailedEvent(turn int, player string, err error) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Player:  player,
		Type:    EventScoreFailed,
		Details: fmt.Sprintf("score save failed for %s: %v", player, err),
	}
}

func NewNearMissEvent(turn int, player string, cardID string, description string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolve",
		Player:  player,
		Type:    EventNearMiss,
		Card:    cardID,
		Details: fmt.Sprintf("%s narrowly escapes %s: %s", player, cardID, description),
	}
}

func NewProtectedEvent(turn int, player string, cardID string, protection string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolve",
		Player:  player,
		Type:    EventProtected,
		Card:    cardID,
		Details: fmt.Sprintf("%s absorbs %s (1 level consumed)", protection, cardID),
	}
}
