package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/api"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/dmitrijs2005/clipvault/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	srv   *Server
	store *store.Store
	key   *cryptox.MasterKey
	token string
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()
	ctx := context.Background()

	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	salt, err := cryptox.GenerateSalt()
	require.NoError(t, err)
	key, err := cryptox.DeriveKey([]byte("server-test-pw"), salt)
	require.NoError(t, err)
	t.Cleanup(key.Wipe)

	payload, err := cryptox.Encrypt(key, []byte(common.VerificationPlaintext))
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx, salt, payload))

	token, err := api.GenerateToken(key)
	require.NoError(t, err)

	return &serverFixture{
		srv:   New(s, cryptox.MakeVerifier(key), logging.NewDefault()),
		store: s,
		key:   key,
		token: token,
	}
}

func (f *serverFixture) request(t *testing.T, method, path string, body any, auth bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func (f *serverFixture) insertTestEntry(t *testing.T, id string, ts time.Time, hash string) {
	t.Helper()
	e := &models.ClipboardEntry{
		ID:          id,
		Timestamp:   ts.UTC(),
		ContentType: models.ContentTypeText,
		Payload:     []byte("payload-" + id),
		Hash:        hash,
	}
	require.NoError(t, f.store.InsertEntry(context.Background(), e))
}

func TestGetSalt_NoAuthRequired(t *testing.T) {
	f := setupServer(t)

	rec := f.request(t, http.MethodGet, "/clipboard/salt", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SaltResponse
	decodeInto(t, rec, &resp)
	assert.Len(t, resp.Salt, cryptox.SaltSize)
}

func TestGetInitialized(t *testing.T) {
	f := setupServer(t)

	rec := f.request(t, http.MethodGet, "/clipboard/initialized", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.InitializedResponse
	decodeInto(t, rec, &resp)
	assert.True(t, resp.Initialized)
}

func TestGetPayload_VerifiableLocally(t *testing.T) {
	f := setupServer(t)

	rec := f.request(t, http.MethodGet, "/clipboard/payload", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.PayloadResponse
	decodeInto(t, rec, &resp)

	plaintext, err := cryptox.Decrypt(f.key, resp.Payload)
	require.NoError(t, err)
	assert.Equal(t, common.VerificationPlaintext, string(plaintext))
}

func TestEntries_RequireAuth(t *testing.T) {
	f := setupServer(t)

	rec := f.request(t, http.MethodGet, "/clipboard/entries", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestEntries_BadToken(t *testing.T) {
	f := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/clipboard/entries", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListEntries(t *testing.T) {
	f := setupServer(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.insertTestEntry(t, "1-a", base, "h1")
	f.insertTestEntry(t, "2-b", base.Add(time.Second), "h2")

	rec := f.request(t, http.MethodGet, "/clipboard/entries", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.EntriesResponse
	decodeInto(t, rec, &resp)
	require.Len(t, resp.Entries, 2)

	first, err := models.DecodeBlob(resp.Entries[0])
	require.NoError(t, err)
	assert.Equal(t, "2-b", first.ID)
}

func TestInsertAndGetEntry(t *testing.T) {
	f := setupServer(t)

	e := models.NewEntry(models.ContentTypeText, []byte("ciphertext"), "some-hash")
	blob, err := models.EncodeBlob(e)
	require.NoError(t, err)

	rec := f.request(t, http.MethodPost, "/clipboard/entries", api.InsertRequest{Entry: blob}, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodGet, "/clipboard/entries/"+e.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.EntryResponse
	decodeInto(t, rec, &resp)
	got, err := models.DecodeBlob(resp.Entry)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Payload, got.Payload)
}

func TestGetEntry_NotFound(t *testing.T) {
	f := setupServer(t)

	rec := f.request(t, http.MethodGet, "/clipboard/entries/missing", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEntry(t *testing.T) {
	f := setupServer(t)
	f.insertTestEntry(t, "1-a", time.Now(), "h1")

	rec := f.request(t, http.MethodDelete, "/clipboard/entries/1-a", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DeleteResponse
	decodeInto(t, rec, &resp)
	assert.Equal(t, 1, resp.Deleted)

	rec = f.request(t, http.MethodDelete, "/clipboard/entries/1-a", nil, true)
	decodeInto(t, rec, &resp)
	assert.Equal(t, 0, resp.Deleted)
}

func TestHashExists(t *testing.T) {
	f := setupServer(t)
	f.insertTestEntry(t, "1-a", time.Now(), "known-hash")

	rec := f.request(t, http.MethodGet, "/clipboard/hash/known-hash", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ExistsResponse
	decodeInto(t, rec, &resp)
	assert.True(t, resp.Exists)

	rec = f.request(t, http.MethodGet, "/clipboard/hash/unknown-hash", nil, true)
	decodeInto(t, rec, &resp)
	assert.False(t, resp.Exists)
}

func TestPrune(t *testing.T) {
	f := setupServer(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"1-a", "2-b", "3-c", "4-d", "5-e"} {
		f.insertTestEntry(t, id, base.Add(time.Duration(i)*time.Second), id+"-hash")
	}

	rec := f.request(t, http.MethodPost, "/clipboard/prune", api.PruneRequest{Max: 3}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DeleteResponse
	decodeInto(t, rec, &resp)
	assert.Equal(t, 2, resp.Deleted)

	var countResp api.CountResponse
	rec = f.request(t, http.MethodGet, "/clipboard/count", nil, true)
	decodeInto(t, rec, &countResp)
	assert.Equal(t, 3, countResp.Count)
}

func TestClearEntries(t *testing.T) {
	f := setupServer(t)
	f.insertTestEntry(t, "1-a", time.Now(), "h1")
	f.insertTestEntry(t, "2-b", time.Now(), "h2")

	rec := f.request(t, http.MethodDelete, "/clipboard/entries", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DeleteResponse
	decodeInto(t, rec, &resp)
	assert.Equal(t, 2, resp.Deleted)
}
