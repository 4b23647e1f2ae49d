// Package rules implements moderation rule documents and the engine that
// matches them against players.
//
// A rule bundles a set of optional triggers (text matches on display name,
// chat message and profile nickname, plus avatar fingerprint matches) with
// the actions to take when they fire. Triggers combine under three-valued
// logic: each trigger evaluates to unset, match or no-match, and the rule's
// mode folds them with AND (match_all) or OR (match_any). A trigger that is
// configured but cannot be satisfied (profile data not fetched yet, no chat
// message on a name-only check) counts as no-match, never as unset, so it
// cannot silently vanish from the fold.
//
// A [List] is the rule document kind layered across the user, official and
// third-party trust tiers by package configfiles.
package rules
