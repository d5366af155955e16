package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewLife EventType = iota
	EventDraw
	EventSelect
	EventAutoSelect
	EventResolve
	EventNearMiss
	EventProtected
	EventStatusTick
	EventAging
	EventNewTurn
	EventGameOver
	EventEndLife
	EventReset
	EventScoreSaved
	EventScoreFailed
)

func (e EventType) String() string {
	switch e {
	case EventNewLife:
		return "NewLife"
	case EventDraw:
		return "Draw"
	case EventSelect:
		return "Select"
	case EventAutoSelect:
		return "AutoSelect"
	case EventResolve:
		return "Resolve"
	case EventNearMiss:
		return "NearMiss"
	case EventProtected:
		return "Protected"
	case EventStatusTick:
		return "StatusTick"
	case EventAging:
		return "Aging"
	case EventNewTurn:
		return "NewTurn"
	case EventGameOver:
		return "GameOver"
	case EventEndLife:
		return "EndLife"
	case EventReset:
		return "Reset"
	case EventScoreSaved:
		return "ScoreSaved"
	case EventScoreFailed:
		return "ScoreFailed"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a life.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 before the first turn)
	Phase   string    // lifecycle phase name (e.g. "Resolve")
	Player  string    // display name of the player
	Type    EventType // event type
	Card    string    // card id (if applicable)
	Details string    // human-readable detail string
}
