package agent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gitwars/tankbot/model"
)

// EventKind identifies something that changed between two consecutive
// frames and is worth a log line.
type EventKind string

const (
	EventDamageTaken     EventKind = "damage_taken"
	EventAmmoDepleted    EventKind = "ammo_depleted"
	EventEnemyEliminated EventKind = "enemy_eliminated"
	EventModeChanged     EventKind = "mode_changed"
	EventCoinCollected   EventKind = "coin_collected"
)

type Event struct {
	Kind   EventKind
	Frame  uint64
	Detail string
}

// frameSnapshot captures the diffable fields of one frame.
type frameSnapshot struct {
	health   int
	ammo     int
	coins    int
	mode     model.GameMode
	enemyIDs map[int]bool
}

func takeSnapshot(s model.Snapshot) frameSnapshot {
	snap := frameSnapshot{
		health:   s.Me.Health,
		ammo:     s.Me.Ammo,
		coins:    s.Me.Coins,
		mode:     s.Mode,
		enemyIDs: make(map[int]bool, len(s.Enemies)),
	}
	for _, e := range s.Enemies {
		snap.enemyIDs[e.ID] = true
	}
	return snap
}

// detectEvents compares s against the previous frame. Returns nil if prev
// is nil (first frame of the session).
func detectEvents(s model.Snapshot, frame uint64, prev *frameSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(s)

	// A mode change means a new round; the other diffs compare unrelated frames.
	if prev.mode != cur.mode {
		return []Event{{
			Kind:   EventModeChanged,
			Frame:  frame,
			Detail: fmt.Sprintf("mode %s → %s", prev.mode, cur.mode),
		}}
	}

	if cur.health < prev.health {
		events = append(events, Event{
			Kind:   EventDamageTaken,
			Frame:  frame,
			Detail: fmt.Sprintf("health %d → %d", prev.health, cur.health),
		})
	}

	if prev.ammo > 0 && cur.ammo == 0 {
		events = append(events, Event{
			Kind:   EventAmmoDepleted,
			Frame:  frame,
			Detail: "out of ammo",
		})
	}

	if cur.coins > prev.coins {
		events = append(events, Event{
			Kind:   EventCoinCollected,
			Frame:  frame,
			Detail: fmt.Sprintf("coins %d → %d", prev.coins, cur.coins),
		})
	}

	// Scramble enemies cannot be eliminated; an id vanishing there is a respawn or a disconnect.
	if cur.mode.Combat() {
		gone := missingIDs(prev.enemyIDs, cur.enemyIDs)
		if len(gone) > 0 {
			events = append(events, Event{
				Kind:   EventEnemyEliminated,
				Frame:  frame,
				Detail: fmt.Sprintf("enemies gone: %v, %d remaining", gone, len(cur.enemyIDs)),
			})
		}
	}

	return events
}

// missingIDs returns the sorted ids present in prev but not in cur.
func missingIDs(prev, cur map[int]bool) []int {
	var gone []int
	for id := range prev {
		if !cur[id] {
			gone = append(gone, id)
		}
	}
	slices.Sort(gone)
	return gone
}

// formatEvents renders events as a single log-friendly line.
func formatEvents(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Kind, e.Detail))
	}
	return strings.Join(parts, "; ")
}
