package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/backend"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/store"
)

// unlock opens the configured backend, prompts for the password and
// verifies it. On success it returns the backend, the derived master key
// and a cleanup func that wipes the key and releases the store. The
// password bytes are wiped before returning either way.
func (a *App) unlock(ctx context.Context) (backend.Backend, *cryptox.MasterKey, func(), error) {
	if a.cfg.PeerAddr != "" {
		return a.unlockRemote(ctx)
	}
	return a.unlockLocal(ctx)
}

func (a *App) unlockLocal(ctx context.Context) (backend.Backend, *cryptox.MasterKey, func(), error) {
	s, err := store.Open(ctx, a.cfg.DatabasePath)
	if err != nil {
		return nil, nil, nil, err
	}

	ok, err := s.IsInitialized(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}
	if !ok {
		_ = s.Close()
		return nil, nil, nil, fmt.Errorf("%w: run 'clipvault init' first", common.ErrNotInitialized)
	}

	salt, err := s.GetSalt(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}

	key, err := a.deriveKeyFromPrompt(salt)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}

	ok, err = s.VerifyPassword(ctx, key)
	if err == nil && !ok {
		err = common.ErrInvalidPassword
	}
	if err != nil {
		key.Wipe()
		_ = s.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		key.Wipe()
		_ = s.Close()
	}
	return backend.NewLocal(s), key, cleanup, nil
}

func (a *App) unlockRemote(ctx context.Context) (backend.Backend, *cryptox.MasterKey, func(), error) {
	ok, err := backend.FetchInitialized(ctx, a.cfg.PeerAddr)
	if err != nil {
		return nil, nil, nil, err
	}
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: peer store at %s", common.ErrNotInitialized, a.cfg.PeerAddr)
	}

	salt, err := backend.FetchSalt(ctx, a.cfg.PeerAddr)
	if err != nil {
		return nil, nil, nil, err
	}

	key, err := a.deriveKeyFromPrompt(salt)
	if err != nil {
		return nil, nil, nil, err
	}

	r, err := backend.NewRemote(a.cfg.PeerAddr, key)
	if err != nil {
		key.Wipe()
		return nil, nil, nil, err
	}

	ok, err = r.VerifyPassword(ctx, key)
	if err == nil && !ok {
		err = common.ErrInvalidPassword
	}
	if err != nil {
		key.Wipe()
		return nil, nil, nil, err
	}

	return r, key, key.Wipe, nil
}

// deriveKeyFromPrompt asks for the password once and derives the master
// key against salt.
func (a *App) deriveKeyFromPrompt(salt []byte) (*cryptox.MasterKey, error) {
	password, err := getPassword("Enter password: ", a.out)
	if err != nil {
		return nil, err
	}
	defer cryptox.WipeBytes(password)

	return cryptox.DeriveKey(password, salt)
}
