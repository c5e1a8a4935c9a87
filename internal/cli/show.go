package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// show decrypts one entry and prints it. Text is written verbatim to
// stdout; for images only the dimensions are printed (use dump to get the
// pixels out).
func (a *App) show(ctx context.Context, args []string) error {
	id := firstPositional(args)
	if id == "" {
		return fmt.Errorf("usage: clipvault show <id>")
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

	if e.ContentType == models.ContentTypeImage {
		img, err := models.UnmarshalImageData(plaintext)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "image %dx%d (%d bytes), captured %s\n",
			img.Width, img.Height, len(img.Bytes), e.Timestamp.Format("2006-01-02 15:04:05"))
		return nil
	}

	fmt.Fprintln(a.out, string(plaintext))
	return nil
}
