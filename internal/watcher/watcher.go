// Package watcher implements the polling clipboard watcher: sample,
// classify, hash, deduplicate, encrypt, persist, prune.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/backend"
	"github.com/dmitrijs2005/clipvault/internal/clipboard"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// DefaultPollInterval is the reference sampling cadence. No cross-platform
// clipboard-change notification exists, so polling is the baseline.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher polls the clipboard and persists genuinely new content through a
// Backend. It is single-threaded: one poll-sleep-poll cycle, no internal
// parallelism. State between ticks is just the last seen content hash.
type Watcher struct {
	clip       clipboard.Clipboard
	backend    backend.Backend
	key        *cryptox.MasterKey
	log        logging.Logger
	lastHash   string
	maxEntries int // 0 means unbounded
	interval   time.Duration
}

// Option tweaks a Watcher at construction.
type Option func(*Watcher)

// WithMaxEntries enables pruning to the given retention bound after every
// insert. Zero or negative disables pruning.
func WithMaxEntries(max int) Option {
	return func(w *Watcher) { w.maxEntries = max }
}

// WithPollInterval overrides the sampling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

func New(clip clipboard.Clipboard, b backend.Backend, key *cryptox.MasterKey, log logging.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		clip:     clip,
		backend:  b,
		key:      key,
		log:      log,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CheckOnce samples the clipboard a single time and reports whether a new
// entry was stored. Empty or unsupported clipboard content is not an
// error; it means there is nothing to do.
func (w *Watcher) CheckOnce(ctx context.Context) (bool, error) {
	if text, err := w.clip.ReadText(); err == nil && text != "" {
		return w.process(ctx, models.ContentTypeText, []byte(text))
	} else if err != nil && !errors.Is(err, clipboard.ErrEmpty) {
		return false, err
	}

	img, err := w.clip.ReadImage()
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			return false, nil
		}
		return false, err
	}
	return w.process(ctx, models.ContentTypeImage, img.Marshal())
}

// process runs the dedupe-encrypt-persist-prune pipeline on the canonical
// plaintext bytes of one sample.
func (w *Watcher) process(ctx context.Context, ct models.ContentType, plaintext []byte) (bool, error) {
	hash := models.HashData(plaintext)

	// unchanged since the previous tick
	if hash == w.lastHash {
		return false, nil
	}

	// seen at some point in history: re-copied content, not new content
	exists, err := w.backend.HashExists(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("checking hash: %w", err)
	}
	if exists {
		w.lastHash = hash
		return false, nil
	}

	encrypted, err := cryptox.Encrypt(w.key, plaintext)
	if err != nil {
		return false, fmt.Errorf("encrypting clipboard data: %w", err)
	}

	entry := models.NewEntry(ct, encrypted, hash)
	if err := w.backend.InsertEntry(ctx, entry); err != nil {
		return false, fmt.Errorf("inserting entry: %w", err)
	}

	w.lastHash = hash

	if w.maxEntries > 0 {
		if _, err := w.backend.PruneToLimit(ctx, w.maxEntries); err != nil {
			return false, fmt.Errorf("pruning entries: %w", err)
		}
	}

	return true, nil
}

// ResetLastHash clears the between-tick dedup state, forcing the next tick
// to consult the store again.
func (w *Watcher) ResetLastHash() {
	w.lastHash = ""
}

// Watch polls until ctx is done. A failed tick is logged and the loop
// continues; each store write is durably flushed before the next tick, so
// an abrupt kill loses at most the in-flight sample.
func (w *Watcher) Watch(ctx context.Context) {
	w.log.Info(ctx, "clipboard watcher started", "interval", w.interval, "max_entries", w.maxEntries)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	stored := 0
	for {
		select {
		case <-ticker.C:
			ok, err := w.CheckOnce(ctx)
			if err != nil {
				w.log.Warn(ctx, "failed to process clipboard", "error", err)
				continue
			}
			if ok {
				stored++
				w.log.Info(ctx, "stored encrypted entry", "count", stored)
			}
		case <-ctx.Done():
			w.log.Info(ctx, "clipboard watcher stopped")
			return
		}
	}
}
