package configfiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"
)

// discardLogger is the default logger for groups created without one.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// GroupConfig configures a [Group] for one document kind.
type GroupConfig[T File, E any] struct {
	// BaseName is the document base name, e.g. "rules" for rules.json,
	// rules.official.json and rules.*.json. Required.
	BaseName string

	// Dir is the configuration directory to resolve documents in.
	// Defaults to DefaultDir().
	Dir string

	// Official marks this process instance as the official authority: it
	// owns and persists the official tier, never auto-updates it from a
	// remote copy of itself, and does not load a user tier.
	Official bool

	// Codec parses and serializes documents. Defaults to JSONCodec.
	Codec Codec

	// Fetcher enables remote refresh of auto-updatable tiers. nil disables
	// auto-update entirely.
	Fetcher Fetcher

	// Logger receives load progress and per-file failures. Defaults to a
	// discard logger.
	Logger *slog.Logger

	// NewFile returns a default-constructed document. Required.
	NewFile func() T

	// Entries returns a document's payload entries. Required.
	Entries func(T) []E

	// Combine merges one document's entries into the third-party
	// collection. Defaults to appending Entries(file) in order.
	Combine func(collection []E, file T) []E
}

// Group orchestrates the three trust tiers of one document kind: a
// synchronous local user copy, an asynchronously loaded official copy and an
// asynchronously merged collection of third-party copies.
//
// Methods are safe for concurrent use, but the documents handed out by
// UserList and DefaultMutable are not synchronized; mutate them from one
// goroutine at a time.
type Group[T File, E any] struct {
	cfg GroupConfig[T, E]
	log *slog.Logger

	mu         sync.Mutex
	official   *Async[T]
	user       T
	hasUser    bool
	thirdParty *Async[[]E]
}

// NewGroup validates cfg and returns a Group. No documents are loaded until
// LoadFiles is called.
func NewGroup[T File, E any](cfg GroupConfig[T, E]) (*Group[T, E], error) {
	if cfg.BaseName == "" {
		return nil, errors.New("configfiles: BaseName is required")
	}
	if cfg.NewFile == nil {
		return nil, errors.New("configfiles: NewFile is required")
	}
	if cfg.Entries == nil {
		return nil, errors.New("configfiles: Entries is required")
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir()
	}
	if cfg.Codec == nil {
		cfg.Codec = JSONCodec{}
	}
	if cfg.Combine == nil {
		entries := cfg.Entries
		cfg.Combine = func(collection []E, file T) []E {
			return append(collection, entries(file)...)
		}
	}

	log := cfg.Logger
	if log == nil {
		log = discardLogger
	}

	return &Group[T, E]{cfg: cfg, log: log}, nil
}

// IsOfficial reports whether this instance is the official authority.
func (g *Group[T, E]) IsOfficial() bool { return g.cfg.Official }

// LoadFiles resolves the tier paths for the group's base name and starts a
// new load generation. The user tier is loaded synchronously (local only,
// never auto-updated); the official and third-party tiers load
// asynchronously and never block the caller.
//
// Re-invoking LoadFiles replaces any prior in-flight or completed results;
// an orphaned load completes its own discarded handle and is dropped.
//
// The returned error reflects only the synchronous user-tier load. Failures
// in the asynchronous tiers are logged and observable via the slot handles;
// a failed slot degrades to an empty default, not an aborted load.
func (g *Group[T, E]) LoadFiles(ctx context.Context) error {
	paths, err := ResolvePaths(g.cfg.Dir, g.cfg.BaseName)
	if err != nil {
		return err
	}

	var userErr error
	var user T
	hasUser := false
	if !g.cfg.Official && paths.User != "" {
		// Local only: the user tier is never network-bound.
		user, userErr = LoadFile(ctx, paths.User, g.cfg.Codec, nil, g.log, g.cfg.NewFile)
		hasUser = true
		if userErr != nil {
			g.log.Error("failed to load user document", "path", paths.User, "error", userErr)
			userErr = fmt.Errorf("load user tier: %w", userErr)
		}
	}

	official := newAsync[T]()
	if paths.Official != "" {
		// The official authority must not "update" its own list from a
		// remote copy of itself.
		var fetcher Fetcher
		if !g.cfg.Official {
			fetcher = g.cfg.Fetcher
		}
		go g.loadOfficial(ctx, official, paths.Official, fetcher)
	} else {
		official.complete(g.cfg.NewFile(), nil)
	}

	thirdParty := newAsync[[]E]()
	go g.loadThirdParty(ctx, thirdParty, paths.Others)

	g.mu.Lock()
	g.official = official
	g.thirdParty = thirdParty
	if !g.cfg.Official {
		g.user = user
		g.hasUser = hasUser
	}
	g.mu.Unlock()

	return userErr
}

func (g *Group[T, E]) loadOfficial(ctx context.Context, slot *Async[T], path string, fetcher Fetcher) {
	file, err := LoadFile(ctx, path, g.cfg.Codec, fetcher, g.log, g.cfg.NewFile)
	if err != nil {
		g.log.Error("failed to load official document", "path", path, "error", err)
	}
	slot.complete(file, err)
}

func (g *Group[T, E]) loadThirdParty(ctx context.Context, slot *Async[[]E], paths []string) {
	var collection []E

	// One bad third-party file must never abort the others; process in
	// path order so the merged collection is deterministic.
	for _, path := range paths {
		file, err := LoadFile(ctx, path, g.cfg.Codec, g.cfg.Fetcher, g.log, g.cfg.NewFile)
		if err != nil {
			g.log.Error("skipping third-party document", "path", path, "error", err)
			continue
		}
		collection = g.cfg.Combine(collection, file)
	}

	slot.complete(collection, nil)
}

// Wait blocks until the asynchronous tiers of the current load generation
// have completed, or ctx is done. It returns the first slot error, if any.
func (g *Group[T, E]) Wait(ctx context.Context) error {
	g.mu.Lock()
	official, thirdParty := g.official, g.thirdParty
	g.mu.Unlock()

	if official != nil {
		if _, err := official.Get(ctx); err != nil {
			return err
		}
	}
	if thirdParty != nil {
		if _, err := thirdParty.Get(ctx); err != nil {
			return err
		}
	}
	return nil
}

// OfficialTry returns the official document if its load has completed.
func (g *Group[T, E]) OfficialTry() (T, bool) {
	g.mu.Lock()
	official := g.official
	g.mu.Unlock()

	if official == nil {
		var zero T
		return zero, false
	}
	return official.TryGet()
}

// ThirdPartyTry returns the merged third-party collection if its load has
// completed.
func (g *Group[T, E]) ThirdPartyTry() ([]E, bool) {
	g.mu.Lock()
	thirdParty := g.thirdParty
	g.mu.Unlock()

	if thirdParty == nil {
		return nil, false
	}
	return thirdParty.TryGet()
}

// PeekUser returns the user document if one is present, without creating it.
func (g *Group[T, E]) PeekUser() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user, g.hasUser
}

// UserList returns the user document, creating an empty one on first access.
func (g *Group[T, E]) UserList() T {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasUser {
		g.user = g.cfg.NewFile()
		g.hasUser = true
	}
	return g.user
}

// DefaultMutable returns the document a caller should edit: the official
// copy if this instance is the official authority (blocking until its load
// completes), otherwise the user copy. This is the single mutation entry
// point; non-authoritative instances cannot reach the official list here.
func (g *Group[T, E]) DefaultMutable(ctx context.Context) (T, error) {
	if !g.cfg.Official {
		return g.UserList(), nil
	}

	g.mu.Lock()
	if g.official == nil {
		g.official = Ready(g.cfg.NewFile())
	}
	official := g.official
	g.mu.Unlock()

	file, err := official.Get(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return file, err
		}
		// The slot still holds a usable default document after a failed
		// load; the error only explains why it is empty.
	}
	return file, nil
}

// SaveFiles persists the user tier (if present) and, for the official
// authority, the official tier. Tiers still in flight are skipped.
func (g *Group[T, E]) SaveFiles() error {
	g.mu.Lock()
	user, hasUser := g.user, g.hasUser
	g.mu.Unlock()

	if hasUser {
		if err := SaveFile(user, UserPath(g.cfg.Dir, g.cfg.BaseName), g.cfg.Codec); err != nil {
			return err
		}
	}

	if g.cfg.Official {
		if err := g.SaveOfficial(); err != nil {
			return err
		}
	}

	return nil
}

// SaveOfficial persists the official document to <basename>.official.json.
// Calling it on a non-authoritative instance is a contract violation and
// fails loudly with *ContractViolationError.
func (g *Group[T, E]) SaveOfficial() error {
	path := OfficialPath(g.cfg.Dir, g.cfg.BaseName)

	if !g.cfg.Official {
		return &ContractViolationError{Path: path}
	}

	file, ok := g.OfficialTry()
	if !ok {
		return nil
	}
	return SaveFile(file, path, g.cfg.Codec)
}

// Len returns the summed entry count across all tiers that have completed
// loading. Tiers still in flight contribute 0; Len never blocks.
func (g *Group[T, E]) Len() int {
	n := 0
	if file, ok := g.OfficialTry(); ok {
		n += len(g.cfg.Entries(file))
	}
	if user, ok := g.PeekUser(); ok {
		n += len(g.cfg.Entries(user))
	}
	if collection, ok := g.ThirdPartyTry(); ok {
		n += len(collection)
	}
	return n
}

// All returns a restartable sequence over the entries of every completed
// tier, official first, then user, then the merged third-party collection.
// Each iteration re-reads the current slots, so it reflects the latest
// completed load.
func (g *Group[T, E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if file, ok := g.OfficialTry(); ok {
			for _, e := range g.cfg.Entries(file) {
				if !yield(e) {
					return
				}
			}
		}
		if user, ok := g.PeekUser(); ok {
			for _, e := range g.cfg.Entries(user) {
				if !yield(e) {
					return
				}
			}
		}
		if collection, ok := g.ThirdPartyTry(); ok {
			for _, e := range collection {
				if !yield(e) {
					return
				}
			}
		}
	}
}
