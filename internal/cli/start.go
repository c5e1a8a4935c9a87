package cli

import (
	"context"

	"github.com/dmitrijs2005/clipvault/internal/watcher"
)

// start unlocks the backend and runs the clipboard watcher until ctx is
// canceled (normally by SIGINT/SIGTERM in main).
func (a *App) start(ctx context.Context) error {
	b, key, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	clip, err := a.newClipboard()
	if err != nil {
		return err
	}

	w := watcher.New(clip, b, key, a.log,
		watcher.WithMaxEntries(a.cfg.MaxEntries),
		watcher.WithPollInterval(a.cfg.PollInterval),
	)
	w.Watch(ctx)
	return nil
}
