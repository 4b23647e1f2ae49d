package consolelog

import (
	"testing"
)

func TestParse_StatusLine(t *testing.T) {
	line := `#     68 "Some Player"       [U:1:1234567]      01:23       92    0 active`

	ev, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ev == nil {
		t.Fatal("Parse() = nil, want status event")
	}

	if ev.Type != EventStatus {
		t.Errorf("Type = %v, want %v", ev.Type, EventStatus)
	}
	if ev.UserID != 68 {
		t.Errorf("UserID = %d, want 68", ev.UserID)
	}
	if ev.PlayerName != "Some Player" {
		t.Errorf("PlayerName = %q, want %q", ev.PlayerName, "Some Player")
	}
	if ev.SteamID != "[U:1:1234567]" {
		t.Errorf("SteamID = %q, want %q", ev.SteamID, "[U:1:1234567]")
	}
	if ev.ConnectedFor != "01:23" {
		t.Errorf("ConnectedFor = %q, want %q", ev.ConnectedFor, "01:23")
	}
	if ev.Ping != 92 {
		t.Errorf("Ping = %d, want 92", ev.Ping)
	}
	if ev.Loss != 0 {
		t.Errorf("Loss = %d, want 0", ev.Loss)
	}
	if ev.State != "active" {
		t.Errorf("State = %q, want %q", ev.State, "active")
	}
}

func TestParse_StatusHeaderExcluded(t *testing.T) {
	ev, err := Parse(`# userid name                uniqueid            connected ping loss state`)
	if ev != nil || err != nil {
		t.Errorf("Parse(header) = %v, %v; want nil, nil", ev, err)
	}
}

func TestParse_LobbyMemberLine(t *testing.T) {
	line := `  Member[22] [U:1:1234567]  team = TF_GC_TEAM_INVADERS  type = MATCH_PLAYER`

	ev, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ev == nil || ev.Type != EventLobbyMember {
		t.Fatalf("Parse() = %+v, want lobby member event", ev)
	}

	if ev.MemberIndex != 22 {
		t.Errorf("MemberIndex = %d, want 22", ev.MemberIndex)
	}
	if ev.SteamID != "[U:1:1234567]" {
		t.Errorf("SteamID = %q, want %q", ev.SteamID, "[U:1:1234567]")
	}
	if ev.Team != "TF_GC_TEAM_INVADERS" {
		t.Errorf("Team = %q, want TF_GC_TEAM_INVADERS", ev.Team)
	}
	if ev.MemberType != "MATCH_PLAYER" {
		t.Errorf("MemberType = %q, want MATCH_PLAYER", ev.MemberType)
	}
}

func TestParse_ChatLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		player   string
		message  string
		dead     bool
		teamOnly bool
	}{
		{
			name:    "plain",
			line:    "Some Player :  hello there",
			player:  "Some Player",
			message: "hello there",
		},
		{
			name:   "dead",
			line:   "*DEAD* Some Player :  wow",
			player: "Some Player", message: "wow", dead: true,
		},
		{
			name:   "team",
			line:   "(TEAM) Some Player :  push left",
			player: "Some Player", message: "push left", teamOnly: true,
		},
		{
			name:   "dead team",
			line:   "*DEAD*(TEAM) Some Player :  spy behind",
			player: "Some Player", message: "spy behind", dead: true, teamOnly: true,
		},
		{
			name:    "name containing separator lookalike",
			line:    "a : b :  message",
			player:  "a : b",
			message: "message",
		},
		{
			name:    "empty message",
			line:    "Some Player :  ",
			player:  "Some Player",
			message: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if ev == nil || ev.Type != EventChat {
				t.Fatalf("Parse() = %+v, want chat event", ev)
			}
			if ev.PlayerName != tt.player {
				t.Errorf("PlayerName = %q, want %q", ev.PlayerName, tt.player)
			}
			if ev.Message != tt.message {
				t.Errorf("Message = %q, want %q", ev.Message, tt.message)
			}
			if ev.Dead != tt.dead {
				t.Errorf("Dead = %v, want %v", ev.Dead, tt.dead)
			}
			if ev.TeamOnly != tt.teamOnly {
				t.Errorf("TeamOnly = %v, want %v", ev.TeamOnly, tt.teamOnly)
			}
		})
	}
}

func TestParse_ConnectedLine(t *testing.T) {
	ev, err := Parse("Some Player connected")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ev == nil || ev.Type != EventConnected {
		t.Fatalf("Parse() = %+v, want connected event", ev)
	}
	if ev.PlayerName != "Some Player" {
		t.Errorf("PlayerName = %q, want %q", ev.PlayerName, "Some Player")
	}
}

func TestParse_UnrecognizedLine(t *testing.T) {
	for _, line := range []string{
		"",
		"Unknown command: foo",
		"hostname: Valve Matchmaking Server",
	} {
		ev, err := Parse(line)
		if ev != nil || err != nil {
			t.Errorf("Parse(%q) = %v, %v; want nil, nil", line, ev, err)
		}
	}
}

func TestParse_ExcludedNoise(t *testing.T) {
	for _, line := range []string{
		"players : 24 humans, 0 bots (32 max)",
		"Lobby created: [A:1:123456]",
		"Lobby updated",
		"Lobby destroyed",
	} {
		ev, err := Parse(line)
		if ev != nil || err != nil {
			t.Errorf("Parse(%q) = %v, %v; want nil, nil", line, ev, err)
		}
	}
}

func TestParse_TrimsCarriageReturn(t *testing.T) {
	ev, err := Parse("Some Player connected\r")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ev == nil || ev.Type != EventConnected {
		t.Fatalf("Parse() = %+v, want connected event", ev)
	}
	if ev.PlayerName != "Some Player" {
		t.Errorf("PlayerName = %q, want %q", ev.PlayerName, "Some Player")
	}
}
