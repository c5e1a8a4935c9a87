package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/google/uuid"
)

// dump exports the decrypted history into dir: text entries as rows of
// entries.csv, images as PNG files referenced from the csv. The output is
// plaintext, so the command asks before writing unless -yes is given.
func (a *App) dump(ctx context.Context, args []string) error {
	dir := firstPositional(args)
	if dir == "" {
		return fmt.Errorf("usage: clipvault dump <dir> [-yes]")
	}

	if !hasFlag(args, "-yes") {
		ok, err := confirm(a.reader,
			fmt.Sprintf("This writes your decrypted clipboard history to %s. Continue?", dir),
			a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
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

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating dump directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "entries.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "timestamp", "type", "content"}); err != nil {
		return err
	}

	exported, failed := 0, 0
	for i := range entries {
		e := &entries[i]

		plaintext, err := cryptox.Decrypt(key, e.Payload)
		if err != nil {
			// a single bad entry must not abort the rest of the export
			fmt.Fprintf(a.out, "Skipping entry %s: %v\n", e.ID, err)
			failed++
			continue
		}

		content := string(plaintext)
		if e.ContentType == models.ContentTypeImage {
			content, err = writeImageFile(dir, plaintext)
			if err != nil {
				fmt.Fprintf(a.out, "Skipping entry %s: %v\n", e.ID, err)
				failed++
				continue
			}
		}

		row := []string{e.ID, e.Timestamp.Format(time.RFC3339), string(e.ContentType), content}
		if err := w.Write(row); err != nil {
			return err
		}
		exported++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d entries to %s.\n", exported, dir)
	if failed > 0 {
		fmt.Fprintf(a.out, "Failed to export %d entries.\n", failed)
	}
	return nil
}

// writeImageFile encodes one canonical image blob as a PNG in dir and
// returns the file name. Names are random so exports never clobber each
// other's images.
func writeImageFile(dir string, canonical []byte) (string, error) {
	img, err := models.UnmarshalImageData(canonical)
	if err != nil {
		return "", err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(rgba.Pix, img.Bytes)

	name := uuid.NewString() + ".png"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, rgba); err != nil {
		return "", err
	}
	return name, nil
}
