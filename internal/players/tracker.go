// Package players maintains the live player table fed by console log events
// and exposes the read-only view the rule engine matches against.
package players

import (
	"sync"

	"github.com/kamild1996/tf2-bot-detector/internal/consolelog"
	"github.com/kamild1996/tf2-bot-detector/pkg/rules"
)

// Player is one tracked player. It implements rules.Player.
type Player struct {
	mu       sync.RWMutex
	steamID  string
	userID   int
	name     string
	team     string
	lastChat string
	summary  *rules.PlayerSummary
}

// SteamID returns the player's Steam ID in [U:1:...] form.
func (p *Player) SteamID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.steamID
}

// DisplayName implements rules.Player.
func (p *Player) DisplayName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// Summary implements rules.Player. It returns nil until profile data has
// been supplied via Tracker.SetSummary.
func (p *Player) Summary() *rules.PlayerSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.summary == nil {
		return nil
	}
	s := *p.summary
	return &s
}

// LastChat returns the last chat message seen from this player.
func (p *Player) LastChat() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastChat
}

// Tracker builds the player table from console log events. All methods are
// safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	bySteam map[string]*Player
	byName  map[string]*Player
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		bySteam: make(map[string]*Player),
		byName:  make(map[string]*Player),
	}
}

// Apply folds one console event into the player table. Chat events return
// the sending player (matched by display name) so the caller can evaluate
// rules against the message; other events return nil.
func (t *Tracker) Apply(ev consolelog.Event) *Player {
	switch ev.Type {
	case consolelog.EventStatus:
		p := t.upsertSteam(ev.SteamID)
		p.mu.Lock()
		p.userID = ev.UserID
		p.name = ev.PlayerName
		p.mu.Unlock()
		t.index(ev.PlayerName, p)
		return nil

	case consolelog.EventLobbyMember:
		p := t.upsertSteam(ev.SteamID)
		p.mu.Lock()
		p.team = ev.Team
		p.mu.Unlock()
		return nil

	case consolelog.EventChat:
		p := t.FindByName(ev.PlayerName)
		if p == nil {
			// Chat can arrive before the first status sweep names the
			// player; track them by name until a Steam ID shows up.
			p = &Player{name: ev.PlayerName}
			t.index(ev.PlayerName, p)
		}
		p.mu.Lock()
		p.lastChat = ev.Message
		p.mu.Unlock()
		return p

	case consolelog.EventConnected:
		p := t.FindByName(ev.PlayerName)
		if p == nil {
			p = &Player{name: ev.PlayerName}
			t.index(ev.PlayerName, p)
		}
		return nil
	}

	return nil
}

// SetSummary attaches profile data to a tracked player.
func (t *Tracker) SetSummary(steamID string, summary rules.PlayerSummary) {
	p := t.upsertSteam(steamID)
	p.mu.Lock()
	p.summary = &summary
	p.mu.Unlock()
}

// FindByName returns the tracked player with the given display name, or nil.
func (t *Tracker) FindByName(name string) *Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byName[name]
}

// FindBySteamID returns the tracked player with the given Steam ID, or nil.
func (t *Tracker) FindBySteamID(steamID string) *Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bySteam[steamID]
}

// Players returns a snapshot of all tracked players.
func (t *Tracker) Players() []*Player {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[*Player]bool, len(t.bySteam))
	out := make([]*Player, 0, len(t.bySteam))
	for _, p := range t.bySteam {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range t.byName {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func (t *Tracker) upsertSteam(steamID string) *Player {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.bySteam[steamID]
	if !ok {
		p = &Player{steamID: steamID}
		t.bySteam[steamID] = p
	}
	return p
}

func (t *Tracker) index(name string, p *Player) {
	if name == "" {
		return
	}
	t.mu.Lock()
	t.byName[name] = p
	t.mu.Unlock()
}
