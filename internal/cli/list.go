package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/flagx"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

const previewLength = 60

// list prints stored entries, newest first. Without -verbose only the
// unencrypted metadata is shown; -verbose decrypts each payload and prints
// a one-line content preview.
func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "decrypt entries and show content previews")
	limit := fs.Int("n", 0, "show at most n entries (0 for all)")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-verbose", "-n"})); err != nil {
		return err
	}

	b, key, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := b.ListEntries(ctx)
	if err != nil {
		return err
	}
	if *limit > 0 && len(entries) > *limit {
		entries = entries[:*limit]
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		if !*verbose {
			fmt.Fprintln(a.out, e.Preview())
			continue
		}

		preview, err := contentPreview(key, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s | %s\n", e.Preview(), preview)
	}
	return nil
}

// contentPreview decrypts one entry and summarizes it in a single line.
func contentPreview(key *cryptox.MasterKey, e *models.ClipboardEntry) (string, error) {
	plaintext, err := cryptox.Decrypt(key, e.Payload)
	if err != nil {
		return "", fmt.Errorf("decrypting entry %s: %w", e.ID, err)
	}

	if e.ContentType == models.ContentTypeImage {
		img, err := models.UnmarshalImageData(plaintext)
		if err != nil {
			return "", fmt.Errorf("decoding entry %s: %w", e.ID, err)
		}
		return fmt.Sprintf("image %dx%d", img.Width, img.Height), nil
	}

	text := strings.ReplaceAll(string(plaintext), "\n", " ")
	// truncate on rune boundaries so multi-byte characters survive
	if utf8.RuneCountInString(text) > previewLength {
		text = string([]rune(text)[:previewLength]) + "..."
	}
	return text, nil
}
