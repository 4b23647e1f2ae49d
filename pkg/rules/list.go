package rules

import (
	"context"
	"iter"
	"log/slog"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
)

// baseName is the document base name rule files resolve under: rules.json,
// rules.official.json, rules.*.json.
const baseName = "rules"

// ListOption configures a List using the functional options pattern.
type ListOption func(*listConfig)

type listConfig struct {
	dir      string
	official bool
	fetcher  configfiles.Fetcher
	codec    configfiles.Codec
	logger   *slog.Logger
}

// WithDir sets the configuration directory rule documents are resolved in.
// Defaults to configfiles.DefaultDir().
func WithDir(dir string) ListOption {
	return func(c *listConfig) { c.dir = dir }
}

// WithOfficial marks this instance as the official authority for the rule
// list. Default: false.
func WithOfficial(official bool) ListOption {
	return func(c *listConfig) { c.official = official }
}

// WithFetcher enables remote refresh of auto-updatable tiers. Default: no
// remote refresh.
func WithFetcher(f configfiles.Fetcher) ListOption {
	return func(c *listConfig) { c.fetcher = f }
}

// WithCodec overrides the document codec. Defaults to JSON.
func WithCodec(codec configfiles.Codec) ListOption {
	return func(c *listConfig) { c.codec = codec }
}

// WithLogger sets the logger for load progress and per-file failures.
// Default: discard all output.
func WithLogger(l *slog.Logger) ListOption {
	return func(c *listConfig) { c.logger = l }
}

// List is the merged, tiered moderation rule set: the rule document kind
// layered across the official, user and third-party trust tiers.
type List struct {
	group *configfiles.Group[*File, Rule]
}

// NewList builds the rule list and immediately performs an initial load,
// followed by a resave of the locally-owned tiers to normalize their
// formatting. Loading therefore has a write side effect; this mirrors the
// lifetime of the rule set in the application, which owns those files.
//
// The asynchronous tiers may still be loading when NewList returns; use
// Wait to block for them.
func NewList(ctx context.Context, opts ...ListOption) (*List, error) {
	var cfg listConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	group, err := configfiles.NewGroup(configfiles.GroupConfig[*File, Rule]{
		BaseName: baseName,
		Dir:      cfg.dir,
		Official: cfg.official,
		Codec:    cfg.codec,
		Fetcher:  cfg.fetcher,
		Logger:   cfg.logger,
		NewFile:  NewFile,
		Entries:  func(f *File) []Rule { return f.Rules },
	})
	if err != nil {
		return nil, err
	}

	list := &List{group: group}
	if err := list.LoadFiles(ctx); err != nil {
		return nil, err
	}
	if err := list.SaveFiles(); err != nil {
		return nil, err
	}

	return list, nil
}

// LoadFiles starts a new load generation; see [configfiles.Group.LoadFiles].
func (l *List) LoadFiles(ctx context.Context) error {
	return l.group.LoadFiles(ctx)
}

// SaveFiles persists the locally-owned tiers; see
// [configfiles.Group.SaveFiles].
func (l *List) SaveFiles() error {
	return l.group.SaveFiles()
}

// Wait blocks until the asynchronous tiers have completed loading.
func (l *List) Wait(ctx context.Context) error {
	return l.group.Wait(ctx)
}

// IsOfficial reports whether this instance is the official authority.
func (l *List) IsOfficial() bool { return l.group.IsOfficial() }

// Len returns the rule count across the tiers that have completed loading,
// without blocking.
func (l *List) Len() int { return l.group.Len() }

// Rules returns a restartable sequence over the effective rules: official
// first, then user, then third-party. Duplicate rules across tiers are kept;
// a user may deliberately reinforce an official rule and both fire.
func (l *List) Rules() iter.Seq[Rule] {
	return l.group.All()
}

// UserList returns the user-tier document for editing, creating an empty one
// on first access.
func (l *List) UserList() *File {
	return l.group.UserList()
}

// DefaultMutable returns the document a caller should edit; see
// [configfiles.Group.DefaultMutable].
func (l *List) DefaultMutable(ctx context.Context) (*File, error) {
	return l.group.DefaultMutable(ctx)
}

// MatchPlayer evaluates every effective rule against a player, returning the
// rules that fire. Rules whose evaluation fails (schema skew) are logged and
// skipped, so one bad rule degrades to "one fewer rule", not a failed sweep.
func (l *List) MatchPlayer(p Player) []Rule {
	return l.matchAll(p, "")
}

// MatchChat is MatchPlayer for a player that just sent chatMsg.
func (l *List) MatchChat(p Player, chatMsg string) []Rule {
	return l.matchAll(p, chatMsg)
}

func (l *List) matchAll(p Player, chatMsg string) []Rule {
	var fired []Rule
	for rule := range l.Rules() {
		ok, err := rule.MatchChat(p, chatMsg)
		if err != nil {
			logger().Error("skipping unevaluable rule",
				"rule", rule.Description, "error", err)
			continue
		}
		if ok {
			fired = append(fired, rule)
		}
	}
	return fired
}
