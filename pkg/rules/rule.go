package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TriggerMatchMode selects how a rule's configured triggers combine.
type TriggerMatchMode string

const (
	// MatchAll fires only when every configured trigger is satisfied.
	MatchAll TriggerMatchMode = "match_all"
	// MatchAny fires when at least one configured trigger is satisfied.
	MatchAny TriggerMatchMode = "match_any"
)

// Valid reports whether m is a recognized mode.
func (m TriggerMatchMode) Valid() bool {
	return m == MatchAll || m == MatchAny
}

// AvatarMatch matches a player's avatar fingerprint exactly.
type AvatarMatch struct {
	AvatarHash string `json:"avatar_hash"`
}

// Match reports whether hash equals the configured fingerprint.
func (m AvatarMatch) Match(hash string) bool {
	return m.AvatarHash == hash
}

// UnmarshalJSON lowercases the hash at parse time so matching is a plain
// comparison.
func (m *AvatarMatch) UnmarshalJSON(data []byte) error {
	var w struct {
		AvatarHash *string `json:"avatar_hash"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.AvatarHash == nil {
		return fmt.Errorf("avatar match: missing required key %q", "avatar_hash")
	}
	m.AvatarHash = strings.ToLower(*w.AvatarHash)
	return nil
}

// Triggers is a bundle of optional predicates keyed by player attribute.
// Nil text matches and an empty avatar list mean "not configured".
type Triggers struct {
	// Mode combines the configured triggers; it is only meaningful (and
	// only serialized) when more than one trigger is present.
	Mode TriggerMatchMode

	ChatMessage   *TextMatch
	Username      *TextMatch
	Personaname   *TextMatch
	AvatarMatches []AvatarMatch
}

// configuredCount returns how many trigger attributes are configured.
func (t *Triggers) configuredCount() int {
	n := 0
	if t.ChatMessage != nil {
		n++
	}
	if t.Username != nil {
		n++
	}
	if t.Personaname != nil {
		n++
	}
	if len(t.AvatarMatches) > 0 {
		n++
	}
	return n
}

type triggersWire struct {
	ChatMessage   *TextMatch       `json:"chatmsg_text_match,omitempty"`
	Username      *TextMatch       `json:"username_text_match,omitempty"`
	AvatarMatches []AvatarMatch    `json:"avatar_match,omitempty"`
	Personaname   *TextMatch       `json:"personaname_text_match,omitempty"`
	Mode          TriggerMatchMode `json:"mode,omitempty"`
}

// MarshalJSON writes only the configured triggers, and the mode only when
// more than one trigger is present.
func (t Triggers) MarshalJSON() ([]byte, error) {
	w := triggersWire{
		ChatMessage:   t.ChatMessage,
		Username:      t.Username,
		AvatarMatches: t.AvatarMatches,
		Personaname:   t.Personaname,
	}

	if t.configuredCount() > 1 {
		mode := t.Mode
		if mode == "" {
			mode = MatchAll
		}
		if !mode.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTriggerMode, string(mode))
		}
		w.Mode = mode
	}

	return json.Marshal(w)
}

// UnmarshalJSON accepts avatar_match as either an array or a single object,
// and defaults the mode to match_all when absent.
func (t *Triggers) UnmarshalJSON(data []byte) error {
	var w struct {
		Mode          *TriggerMatchMode `json:"mode"`
		ChatMessage   *TextMatch        `json:"chatmsg_text_match"`
		Username      *TextMatch        `json:"username_text_match"`
		Personaname   *TextMatch        `json:"personaname_text_match"`
		AvatarMatches json.RawMessage   `json:"avatar_match"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Triggers{
		Mode:        MatchAll,
		ChatMessage: w.ChatMessage,
		Username:    w.Username,
		Personaname: w.Personaname,
	}

	if w.Mode != nil {
		if !w.Mode.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownTriggerMode, string(*w.Mode))
		}
		out.Mode = *w.Mode
	}

	if len(w.AvatarMatches) > 0 {
		raw := bytes.TrimSpace(w.AvatarMatches)
		switch {
		case len(raw) > 0 && raw[0] == '[':
			if err := json.Unmarshal(raw, &out.AvatarMatches); err != nil {
				return err
			}
		case len(raw) > 0 && raw[0] == '{':
			var single AvatarMatch
			if err := json.Unmarshal(raw, &single); err != nil {
				return err
			}
			out.AvatarMatches = []AvatarMatch{single}
		default:
			return fmt.Errorf("expected avatar_match to be an array or object")
		}
	}

	*t = out
	return nil
}

// Actions lists the labels to apply or remove when a rule fires. Transient
// marks are cleared by the labeling subsystem at session end.
type Actions struct {
	Mark          []string `json:"mark,omitempty"`
	TransientMark []string `json:"transient_mark,omitempty"`
	Unmark        []string `json:"unmark,omitempty"`
}

// Rule is one moderation rule: a trigger bundle, a human-readable
// description and the actions to take on a match. Rules are immutable once
// loaded; reloads replace them wholesale.
type Rule struct {
	Description string   `json:"description"`
	Triggers    Triggers `json:"triggers"`
	Actions     Actions  `json:"actions"`
}

// UnmarshalJSON enforces the required keys: description, triggers, actions.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var w struct {
		Description *string   `json:"description"`
		Triggers    *Triggers `json:"triggers"`
		Actions     *Actions  `json:"actions"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Description == nil {
		return fmt.Errorf("rule: missing required key %q", "description")
	}
	if w.Triggers == nil {
		return fmt.Errorf("rule: missing required key %q", "triggers")
	}
	if w.Actions == nil {
		return fmt.Errorf("rule: missing required key %q", "actions")
	}

	r.Description = *w.Description
	r.Triggers = *w.Triggers
	r.Actions = *w.Actions
	return nil
}

// Match evaluates the rule against a player with no associated chat message.
func (r *Rule) Match(p Player) (bool, error) {
	return r.MatchChat(p, "")
}

// MatchChat evaluates the rule against a player and a chat message they just
// sent. Each configured trigger yields a three-valued result; a configured
// trigger whose input is missing on the player (no name, no profile summary,
// empty chat) yields no-match, never unset. The results fold under the
// rule's mode.
//
// An unrecognized trigger or text-match mode fails the evaluation with an
// error; it indicates schema skew that must not be silently tolerated.
func (r *Rule) MatchChat(p Player, chatMsg string) (bool, error) {
	username := func() (matchResult, error) {
		return evalText(r.Triggers.Username, p.DisplayName())
	}

	chat := func() (matchResult, error) {
		return evalText(r.Triggers.ChatMessage, chatMsg)
	}

	avatar := func() (matchResult, error) {
		if len(r.Triggers.AvatarMatches) == 0 {
			return unset, nil
		}
		summary := p.Summary()
		if summary == nil {
			return noMatch, nil
		}
		for _, m := range r.Triggers.AvatarMatches {
			if m.Match(summary.AvatarHash) {
				return matched, nil
			}
		}
		return noMatch, nil
	}

	personaname := func() (matchResult, error) {
		if r.Triggers.Personaname == nil {
			return unset, nil
		}
		summary := p.Summary()
		if summary == nil {
			return noMatch, nil
		}
		// Unlike name and chat, an empty nickname is real profile data and
		// still goes through the match, so patterns that accept the empty
		// string can fire.
		return runText(r.Triggers.Personaname, summary.Nickname)
	}

	result, err := foldTriggers(r.Triggers.Mode, username, chat, avatar, personaname)
	if err != nil {
		return false, err
	}
	return result.asBool(), nil
}

// evalText evaluates one optional text trigger: unset when not configured,
// no-match when the input text is absent or fails the match.
func evalText(m *TextMatch, text string) (matchResult, error) {
	if m == nil {
		return unset, nil
	}
	if text == "" {
		return noMatch, nil
	}
	return runText(m, text)
}

// runText runs a configured text trigger against known-present input.
func runText(m *TextMatch, text string) (matchResult, error) {
	ok, err := m.Match(text)
	if err != nil {
		return noMatch, err
	}
	if !ok {
		return noMatch, nil
	}
	return matched, nil
}

// foldTriggers combines trigger evaluations under the given mode. Every
// evaluator runs; the three-valued algebra, not evaluation order, decides
// the outcome.
func foldTriggers(mode TriggerMatchMode, evals ...func() (matchResult, error)) (matchResult, error) {
	var combine func(a, b matchResult) matchResult
	switch mode {
	case MatchAll, "": // an unset mode combines like match_all
		combine = combineAnd
	case MatchAny:
		combine = combineOr
	default:
		return noMatch, fmt.Errorf("%w: %q", ErrUnknownTriggerMode, string(mode))
	}

	acc := unset
	for _, eval := range evals {
		r, err := eval()
		if err != nil {
			return noMatch, err
		}
		acc = combine(acc, r)
	}

	return acc, nil
}
