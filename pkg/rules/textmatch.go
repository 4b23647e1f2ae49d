package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TextMatchMode selects the pattern-matching strategy of a [TextMatch].
type TextMatchMode string

const (
	TextMatchEqual      TextMatchMode = "equal"
	TextMatchContains   TextMatchMode = "contains"
	TextMatchStartsWith TextMatchMode = "starts_with"
	TextMatchEndsWith   TextMatchMode = "ends_with"
	TextMatchRegex      TextMatchMode = "regex"
	TextMatchWord       TextMatchMode = "word"
)

// Valid reports whether m is a recognized mode.
func (m TextMatchMode) Valid() bool {
	switch m {
	case TextMatchEqual, TextMatchContains, TextMatchStartsWith,
		TextMatchEndsWith, TextMatchRegex, TextMatchWord:
		return true
	}
	return false
}

// MarshalJSON rejects unrecognized modes instead of writing them through.
func (m TextMatchMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTextMatchMode, string(m))
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON rejects unrecognized modes at parse time.
func (m *TextMatchMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !TextMatchMode(s).Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTextMatchMode, s)
	}
	*m = TextMatchMode(s)
	return nil
}

// TextMatch is a single pattern-matching predicate over a string. The
// predicate is satisfied when any one of its patterns satisfies the mode
// (logical OR across patterns, short-circuiting on the first hit).
type TextMatch struct {
	Mode          TextMatchMode `json:"mode"`
	CaseSensitive bool          `json:"case_sensitive"`
	Patterns      []string      `json:"patterns"`
}

// UnmarshalJSON enforces the required keys: mode and patterns.
func (m *TextMatch) UnmarshalJSON(data []byte) error {
	type wire TextMatch
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Mode == "" {
		return fmt.Errorf("text match: missing required key %q", "mode")
	}
	if w.Patterns == nil {
		return fmt.Errorf("text match: missing required key %q", "patterns")
	}
	*m = TextMatch(w)
	return nil
}

// wordPattern tokenizes text into maximal runs of word characters.
var wordPattern = regexp.MustCompile(`\w+`)

// Match reports whether any pattern satisfies the mode against text.
// An unrecognized mode is a hard error; a pattern that fails to compile in
// regex mode is logged and treated as a non-match for that pattern only.
func (m *TextMatch) Match(text string) (bool, error) {
	switch m.Mode {
	case TextMatchEqual:
		for _, pattern := range m.Patterns {
			if m.equalFold(text, pattern) {
				return true, nil
			}
		}
		return false, nil

	case TextMatchContains:
		for _, pattern := range m.Patterns {
			if strings.Contains(m.fold(text), m.fold(pattern)) {
				return true, nil
			}
		}
		return false, nil

	case TextMatchStartsWith:
		for _, pattern := range m.Patterns {
			if strings.HasPrefix(m.fold(text), m.fold(pattern)) {
				return true, nil
			}
		}
		return false, nil

	case TextMatchEndsWith:
		for _, pattern := range m.Patterns {
			if strings.HasSuffix(m.fold(text), m.fold(pattern)) {
				return true, nil
			}
		}
		return false, nil

	case TextMatchRegex:
		for _, pattern := range m.Patterns {
			re, err := compilePattern(pattern, m.CaseSensitive)
			if err != nil {
				logger().Warn("skipping unparseable regex pattern",
					"pattern", pattern, "text", text, "error", err)
				continue
			}
			if re.MatchString(text) {
				return true, nil
			}
		}
		return false, nil

	case TextMatchWord:
		for _, token := range wordPattern.FindAllString(text, -1) {
			for _, pattern := range m.Patterns {
				if m.equalFold(token, pattern) {
					return true, nil
				}
			}
		}
		return false, nil
	}

	return false, fmt.Errorf("%w: %q", ErrUnknownTextMatchMode, string(m.Mode))
}

func (m *TextMatch) equalFold(a, b string) bool {
	if m.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func (m *TextMatch) fold(s string) string {
	if m.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// regexCacheSize bounds the compiled-pattern cache. Rule sets reuse a small
// number of patterns across many players, so compilation cost is paid once.
const regexCacheSize = 256

var regexCache, _ = lru.New[string, *regexp.Regexp](regexCacheSize)

// compilePattern compiles a rule-author-supplied regular expression, anchored
// to match the whole text rather than search within it.
func compilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := `\A(?:` + pattern + `)\z`
	if !caseSensitive {
		expr = `(?i)` + expr
	}

	if re, ok := regexCache.Get(expr); ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	regexCache.Add(expr, re)

	return re, nil
}

// discardLogger drops all output; packages that want match diagnostics
// install their own via SetLogger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var pkgLogger = discardLogger

// SetLogger installs the logger used to report per-pattern regex failures
// during matching. Call it before evaluating rules; it is not synchronized.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	pkgLogger = l
}

func logger() *slog.Logger { return pkgLogger }
