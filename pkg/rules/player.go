package rules

// PlayerSummary is the profile data fetched for a player out-of-band.
// A player may not have one yet; triggers that need it treat its absence as
// an unsatisfied match, not as an unconfigured trigger.
type PlayerSummary struct {
	// Nickname is the profile display name (may differ from the in-game
	// name).
	Nickname string

	// AvatarHash is the lowercase fingerprint of the profile avatar.
	AvatarHash string
}

// Player is the read-only view of a player the matching engine needs.
// Implementations live outside this package (the game-state tracker).
type Player interface {
	// DisplayName returns the in-game name, or "" if not known yet.
	DisplayName() string

	// Summary returns the player's profile summary, or nil if it has not
	// been fetched.
	Summary() *PlayerSummary
}
