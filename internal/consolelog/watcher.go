package consolelog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/nxadm/tail"
)

// Sentinel errors.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("watcher is already watching")
)

// watcherErrBuffer is the buffer size for the error channel. A small buffer
// prevents error loss while the consumer is busy processing events.
const watcherErrBuffer = 16

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Watcher tails a console.log file and emits parsed events.
type Watcher struct {
	path string
	log  *slog.Logger

	mu       sync.Mutex
	closed   bool
	watching bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewWatcher returns a watcher for the console.log at path. A nil logger
// discards all output.
func NewWatcher(path string, log *slog.Logger) *Watcher {
	if log == nil {
		log = discardLogger
	}
	return &Watcher{path: path, log: log}
}

// Watch starts tailing and returns channels. Existing content is skipped;
// only lines appended after Watch begins are parsed. Both channels close on
// ctx.Done(), Close, or a fatal tail error. Watch can only be called once
// per Watcher instance.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	eventCh := make(chan Event)
	errCh := make(chan error, watcherErrBuffer)

	go w.run(ctx, eventCh, errCh)

	return eventCh, errCh, nil
}

// Close stops the watcher and releases resources. Safe to call multiple
// times. Blocks until the tail goroutine has exited.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, eventCh chan<- Event, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(eventCh)
	defer close(errCh)

	t, err := tail.TailFile(w.path, tail.Config{
		Follow: true,
		ReOpen: true,
		// The game keeps the file open and appends; polling survives the
		// rename-on-launch behavior better than inotify on Windows shares.
		Poll:     true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		sendError(ctx, errCh, err)
		return
	}
	defer t.Cleanup()

	w.log.Debug("tailing console log", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return

		case line, ok := <-t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				sendError(ctx, errCh, line.Err)
				continue
			}

			ev, err := Parse(line.Text)
			if err != nil {
				sendError(ctx, errCh, err)
				continue
			}
			if ev == nil {
				continue
			}

			select {
			case eventCh <- *ev:
			case <-ctx.Done():
				t.Stop()
				return
			}
		}
	}
}

// sendError delivers err without blocking forever on a stalled consumer.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	select {
	case errCh <- err:
	case <-ctx.Done():
	}
}
