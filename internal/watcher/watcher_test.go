package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/backend"
	"github.com/dmitrijs2005/clipvault/internal/clipboard"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/dmitrijs2005/clipvault/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clip    *clipboard.Memory
	store   *store.Store
	watcher *Watcher
	key     *cryptox.MasterKey
}

func setup(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key, err := cryptox.DeriveKey([]byte("watcher-test-pw"), []byte("watcher-salt"))
	require.NoError(t, err)
	t.Cleanup(key.Wipe)

	clip := clipboard.NewMemory()
	w := New(clip, backend.NewLocal(s), key, logging.NewDefault(), opts...)
	return &fixture{clip: clip, store: s, watcher: w, key: key}
}

func TestCheckOnce_EmptyClipboard(t *testing.T) {
	f := setup(t)

	stored, err := f.watcher.CheckOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestCheckOnce_StoresNewText(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.clip.WriteText("hello clipboard"))

	stored, err := f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.True(t, stored)

	list, err := f.store.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ContentTypeText, list[0].ContentType)
	assert.Equal(t, models.HashData([]byte("hello clipboard")), list[0].Hash)

	// payload is ciphertext, decryptable with the session key
	plaintext, err := cryptox.Decrypt(f.key, list[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello clipboard"), plaintext)
}

func TestCheckOnce_DedupAgainstLastTick(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.clip.WriteText("same content"))

	stored, err := f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.False(t, stored)

	n, err := f.store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCheckOnce_DedupAgainstHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.clip.WriteText("historic content"))
	stored, err := f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	require.True(t, stored)

	// simulate a different interleaving: the last-hash state is gone but
	// the content is still in the store
	f.watcher.ResetLastHash()

	stored, err = f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.False(t, stored)

	n, err := f.store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCheckOnce_StoresImage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	img := models.NewImageData(2, 1, []byte{255, 0, 0, 255, 0, 255, 0, 255})
	require.NoError(t, f.clip.WriteImage(img))

	stored, err := f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.True(t, stored)

	list, err := f.store.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ContentTypeImage, list[0].ContentType)
	assert.Equal(t, models.HashData(img.Marshal()), list[0].Hash)

	plaintext, err := cryptox.Decrypt(f.key, list[0].Payload)
	require.NoError(t, err)
	got, err := models.UnmarshalImageData(plaintext)
	require.NoError(t, err)
	assert.Equal(t, img.Bytes, got.Bytes)
}

func TestCheckOnce_PrunesWhenBounded(t *testing.T) {
	f := setup(t, WithMaxEntries(2))
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three", "four"} {
		require.NoError(t, f.clip.WriteText(text))
		stored, err := f.watcher.CheckOnce(ctx)
		require.NoError(t, err)
		require.True(t, stored)
	}

	n, err := f.store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := f.store.ListEntries(ctx)
	require.NoError(t, err)
	hashes := []string{list[0].Hash, list[1].Hash}
	assert.Contains(t, hashes, models.HashData([]byte("four")))
	assert.Contains(t, hashes, models.HashData([]byte("three")))
}

// flakyBackend fails the first insert attempts and then behaves normally,
// standing in for a store or peer that is briefly unavailable.
type flakyBackend struct {
	backend.Backend
	mu       sync.Mutex
	failures int
}

func (b *flakyBackend) InsertEntry(ctx context.Context, e *models.ClipboardEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures > 0 {
		b.failures--
		return errors.New("store temporarily unavailable")
	}
	return b.Backend.InsertEntry(ctx, e)
}

func TestWatch_SurvivesFailedTick(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key, err := cryptox.DeriveKey([]byte("watcher-test-pw"), []byte("watcher-salt"))
	require.NoError(t, err)
	t.Cleanup(key.Wipe)

	clip := clipboard.NewMemory()
	require.NoError(t, clip.WriteText("resilient content"))

	fb := &flakyBackend{Backend: backend.NewLocal(s), failures: 1}
	w := New(clip, fb, key, logging.NewDefault(), WithPollInterval(5*time.Millisecond))

	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		w.Watch(watchCtx)
		close(done)
	}()

	// the first tick's insert fails; the loop must keep running and store
	// the same sample on a later tick
	require.Eventually(t, func() bool {
		n, err := s.CountEntries(ctx)
		return err == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	list, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.HashData([]byte("resilient content")), list[0].Hash)
}

func TestCheckOnce_TextChangeSequence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.clip.WriteText("first"))
	stored, err := f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	require.True(t, stored)

	require.NoError(t, f.clip.WriteText("second"))
	stored, err = f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	require.True(t, stored)

	// back to previously stored content: dedup against history, but the
	// last-hash moves with it
	require.NoError(t, f.clip.WriteText("first"))
	stored, err = f.watcher.CheckOnce(ctx)
	require.NoError(t, err)
	assert.False(t, stored)

	n, err := f.store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
