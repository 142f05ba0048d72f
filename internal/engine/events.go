package engine

import "mazecrawl/assets"

// EventKind tags one simulation event.
type EventKind string

const (
	EventKill          EventKind = "kill"
	EventPickup        EventKind = "pickup"
	EventPurchase      EventKind = "purchase"
	EventPortal        EventKind = "portal"
	EventLightswitch   EventKind = "lightswitch"
	EventCrit          EventKind = "crit"
	EventPlayerHurt    EventKind = "player_hurt"
	EventBossDrop      EventKind = "boss_drop"
	EventBonusOffered  EventKind = "bonus_offered"
	EventBonusResolved EventKind = "bonus_resolved"
	EventLevelComplete EventKind = "level_complete"
	EventGameOver      EventKind = "game_over"
	EventTimeout       EventKind = "timeout"
)

// Event is one entry in the per-tick event feed. Hosts drain these for
// sound, log lines, and UI flourishes; the engine never reads them back.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Subtype assets.Subtype `json:"subtype,omitempty"`
	Item    string         `json:"item,omitempty"`
	Amount  int            `json:"amount,omitempty"`
}

func (g *Engine) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents returns and clears the accumulated events.
func (g *Engine) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}
