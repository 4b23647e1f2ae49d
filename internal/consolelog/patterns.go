package consolelog

import "regexp"

// Compiled regex patterns for console line detection.
var (
	// Matches one player row of `status` output:
	//   #     68 "Some Player"       [U:1:1234567]      01:23       92    0 active
	// Captures: (1) userid, (2) name, (3) steam id, (4) connected time,
	// (5) ping, (6) loss, (7) state
	statusPattern = regexp.MustCompile(
		`^#\s+(\d+)\s+"(.*)"\s+(\[U:\d+:\d+\])\s+([\d:]+)\s+(\d+)\s+(\d+)\s+(\w+)`,
	)

	// Matches one member row of `tf_lobby_debug` output:
	//   Member[22] [U:1:1234567]  team = TF_GC_TEAM_INVADERS  type = MATCH_PLAYER
	// Captures: (1) index, (2) steam id, (3) team, (4) member type
	lobbyMemberPattern = regexp.MustCompile(
		`^\s+(?:Member|Pending)\[(\d+)\]\s+(\[U:\d+:\d+\])\s+team = (\w+)\s+type = (\w+)`,
	)

	// Matches a chat line:
	//   *DEAD*(TEAM) Some Player :  the message
	// The name/message separator is " :  " (one space, colon, two spaces),
	// which keeps names containing " : " from being split early.
	// Captures: (1) *DEAD* marker, (2) (TEAM) marker, (3) name, (4) message
	chatPattern = regexp.MustCompile(
		`^(\*DEAD\*)? ?(\(TEAM\))? ?(.+?) :  (.*)$`,
	)

	// Matches: "Some Player connected"
	// Captures: (1) name
	connectedPattern = regexp.MustCompile(
		`^(.+?) connected$`,
	)
)

// exclusionPatterns are lines that look like events but should be ignored.
var exclusionPatterns = []string{
	"# userid name",  // status header row
	"players : ",     // status summary row
	"Lobby created:", // lobby lifecycle noise
	"Lobby updated",
	"Lobby destroyed",
}
