package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/store"
)

const minPasswordLength = 8

// initStore sets up the local store: generates a salt, derives the master
// key from a freshly chosen password and writes the verification payload.
// Re-running it changes the password but leaves existing entries encrypted
// under the old key, so it warns and asks before proceeding.
func (a *App) initStore(ctx context.Context, args []string) error {
	if a.cfg.PeerAddr != "" {
		return fmt.Errorf("init works on the local store; a peer initializes its own")
	}

	s, err := store.Open(ctx, a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	initialized, err := s.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized && !hasFlag(args, "-yes") {
		ok, err := confirm(a.reader,
			"Store is already initialized. Setting a new password makes existing entries unreadable. Continue?",
			a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	password, err := getPassword("Enter new password: ", a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(password)

	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	confirmation, err := getPassword("Confirm password: ", a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(confirmation)

	if string(password) != string(confirmation) {
		return fmt.Errorf("passwords do not match")
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(password, salt)
	if err != nil {
		return err
	}
	defer key.Wipe()

	payload, err := cryptox.Encrypt(key, []byte(common.VerificationPlaintext))
	if err != nil {
		return err
	}

	if err := s.Initialize(ctx, salt, payload); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Store initialized.")
	return nil
}
