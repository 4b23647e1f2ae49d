// Package consolelog parses TF2 console.log output (written with -condebug)
// into player events.
package consolelog

// EventType identifies the kind of console line that was recognized.
type EventType string

const (
	// EventChat is an all- or team-chat message from a player.
	EventChat EventType = "chat"

	// EventStatus is one player row of `status` command output.
	EventStatus EventType = "status"

	// EventLobbyMember is one member row of `tf_lobby_debug` output.
	EventLobbyMember EventType = "lobby_member"

	// EventConnected is a "<name> connected" line.
	EventConnected EventType = "connected"
)

// Event is a parsed console line. Fields are populated per event type.
type Event struct {
	Type EventType

	// PlayerName is set for chat, status and connected events.
	PlayerName string

	// Chat fields.
	Message  string
	Dead     bool
	TeamOnly bool

	// Status fields.
	UserID       int
	SteamID      string
	ConnectedFor string
	Ping         int
	Loss         int
	State        string

	// Lobby fields.
	MemberIndex int
	Team        string
	MemberType  string
}
