package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/flagx"
	"github.com/dmitrijs2005/clipvault/internal/server"
	"github.com/dmitrijs2005/clipvault/internal/store"
)

// serve exposes the local store to peers over the clipboard HTTP API. The
// password is needed once, to derive the token-signing verifier; the key
// itself is wiped before the server starts because the server only ever
// handles ciphertext.
func (a *App) serve(ctx context.Context, args []string) error {
	if a.cfg.PeerAddr != "" {
		return fmt.Errorf("serve exposes the local store; it cannot proxy a peer")
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.ListenAddr, "listen address")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-addr"})); err != nil {
		return err
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
	if !initialized {
		return fmt.Errorf("%w: run 'clipvault init' first", common.ErrNotInitialized)
	}

	salt, err := s.GetSalt(ctx)
	if err != nil {
		return err
	}

	key, err := a.deriveKeyFromPrompt(salt)
	if err != nil {
		return err
	}

	ok, err := s.VerifyPassword(ctx, key)
	if err == nil && !ok {
		err = common.ErrInvalidPassword
	}
	if err != nil {
		key.Wipe()
		return err
	}

	verifier := cryptox.MakeVerifier(key)
	key.Wipe()

	return server.New(s, verifier, a.log).Run(*addr)
}
