package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// copyEntry decrypts one entry and places it back on the system clipboard.
// A running watcher will see the content again but skip it: its hash is
// already in the store.
func (a *App) copyEntry(ctx context.Context, args []string) error {
	id := firstPositional(args)
	if id == "" {
		return fmt.Errorf("usage: clipvault copy <id>")
	}

	b, key, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	e, err := b.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	plaintext, err := cryptox.Decrypt(key, e.Payload)
	if err != nil {
		return err
	}

	clip, err := a.newClipboard()
	if err != nil {
		return err
	}

	if e.ContentType == models.ContentTypeImage {
		img, err := models.UnmarshalImageData(plaintext)
		if err != nil {
			return err
		}
		if err := clip.WriteImage(img); err != nil {
			return err
		}
	} else {
		if err := clip.WriteText(string(plaintext)); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Copied entry %s to clipboard.\n", id)
	return nil
}
