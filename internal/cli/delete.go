package cli

import (
	"context"
	"fmt"
)

// delete removes one entry after confirmation (-yes skips the prompt).
func (a *App) delete(ctx context.Context, args []string) error {
	id := firstPositional(args)
	if id == "" {
		return fmt.Errorf("usage: clipvault delete <id> [-yes]")
	}

	if !hasFlag(args, "-yes") {
		ok, err := confirm(a.reader, fmt.Sprintf("Delete entry %s?", id), a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	b, _, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	removed, err := b.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.out, "Entry %s not found.\n", id)
		return nil
	}

	fmt.Fprintf(a.out, "Deleted entry %s.\n", id)
	return nil
}

// clear removes every entry after confirmation (-yes skips the prompt).
// Metadata stays: the store remains initialized under the same password.
func (a *App) clear(ctx context.Context, args []string) error {
	if !hasFlag(args, "-yes") {
		ok, err := confirm(a.reader, "Delete ALL clipboard history entries?", a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	b, _, cleanup, err := a.unlock(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := b.ClearEntries(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %d entries.\n", deleted)
	return nil
}
