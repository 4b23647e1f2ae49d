package consolelog

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses one console.log line.
//
// Returns:
//   - (*Event, nil): successfully parsed
//   - (nil, nil): not a recognized line
//   - (nil, error): a recognized line that is malformed
func Parse(line string) (*Event, error) {
	// Trim trailing CR for Windows CRLF compatibility
	line = strings.TrimRight(line, "\r")

	for _, pattern := range exclusionPatterns {
		if strings.Contains(line, pattern) {
			return nil, nil
		}
	}

	if ev, err := parseStatus(line); ev != nil || err != nil {
		return ev, err
	}
	if ev := parseLobbyMember(line); ev != nil {
		return ev, nil
	}
	if ev := parseChat(line); ev != nil {
		return ev, nil
	}
	if ev := parseConnected(line); ev != nil {
		return ev, nil
	}

	return nil, nil
}

func parseStatus(line string) (*Event, error) {
	match := statusPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	userID, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, fmt.Errorf("status line: bad userid %q: %w", match[1], err)
	}
	ping, err := strconv.Atoi(match[5])
	if err != nil {
		return nil, fmt.Errorf("status line: bad ping %q: %w", match[5], err)
	}
	loss, err := strconv.Atoi(match[6])
	if err != nil {
		return nil, fmt.Errorf("status line: bad loss %q: %w", match[6], err)
	}

	return &Event{
		Type:         EventStatus,
		UserID:       userID,
		PlayerName:   match[2],
		SteamID:      match[3],
		ConnectedFor: match[4],
		Ping:         ping,
		Loss:         loss,
		State:        match[7],
	}, nil
}

func parseLobbyMember(line string) *Event {
	match := lobbyMemberPattern.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	// Index regex-validated as digits
	index, _ := strconv.Atoi(match[1])

	return &Event{
		Type:        EventLobbyMember,
		MemberIndex: index,
		SteamID:     match[2],
		Team:        match[3],
		MemberType:  match[4],
	}
}

func parseChat(line string) *Event {
	match := chatPattern.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	return &Event{
		Type:       EventChat,
		Dead:       match[1] != "",
		TeamOnly:   match[2] != "",
		PlayerName: match[3],
		Message:    match[4],
	}
}

func parseConnected(line string) *Event {
	match := connectedPattern.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	return &Event{
		Type:       EventConnected,
		PlayerName: match[1],
	}
}
