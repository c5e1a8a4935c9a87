package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/models"
)

// stats prints entry counts, stored ciphertext volume and the time span of
// the history. Nothing is decrypted: everything comes from the unencrypted
// columns.
func (a *App) stats(ctx context.Context) error {
	b, _, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := b.ListEntries(ctx)
	if err != nil {
		return err
	}

	location := a.cfg.DatabasePath
	if a.cfg.PeerAddr != "" {
		location = a.cfg.PeerAddr
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Entries: 0")
		fmt.Fprintf(a.out, "Store:   %s\n", location)
		return nil
	}

	texts, images, bytes := 0, 0, 0
	for i := range entries {
		switch entries[i].ContentType {
		case models.ContentTypeImage:
			images++
		default:
			texts++
		}
		bytes += len(entries[i].Payload)
	}

	// list order is newest first
	newest := entries[0].Timestamp
	oldest := entries[len(entries)-1].Timestamp

	fmt.Fprintf(a.out, "Entries: %d (%d text, %d image)\n", len(entries), texts, images)
	fmt.Fprintf(a.out, "Size:    %d bytes encrypted\n", bytes)
	fmt.Fprintf(a.out, "Oldest:  %s\n", oldest.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "Newest:  %s\n", newest.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "Store:   %s\n", location)
	return nil
}
