package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/api"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// Remote implements Backend against a peer process serving the clipboard
// HTTP API. Requests carry a bearer token signed with the key verifier;
// entry payloads cross the wire as compressed ciphertext blobs. Hard
// network errors and non-success statuses surface as common.ErrTransport
// and are not retried.
type Remote struct {
	baseURL string
	token   string
	hc      *http.Client
}

// NewRemote builds a client for the peer at baseURL (e.g.
// "http://localhost:2573") authenticating with a token derived from key.
func NewRemote(baseURL string, key *cryptox.MasterKey) (*Remote, error) {
	token, err := api.GenerateToken(key)
	if err != nil {
		return nil, fmt.Errorf("generating peer token: %w", err)
	}
	return &Remote{baseURL: baseURL, token: token, hc: newHTTPClient()}, nil
}

// newHTTPClient bounds every peer call. Requests are small and local-ish;
// anything slower than this is a dead peer, not a slow one.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func (r *Remote) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body *bytes.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return common.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return fmt.Errorf("%w: %s returned %d: %s", common.ErrTransport, path, resp.StatusCode, er.Error)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("%w: decoding response: %v", common.ErrTransport, err)
		}
	}
	return nil
}

// FetchSalt retrieves the peer's salt without authentication. It is the
// bootstrap call: the caller needs the salt to derive a key before it can
// mint a token for the protected routes.
func FetchSalt(ctx context.Context, baseURL string) ([]byte, error) {
	r := &Remote{baseURL: baseURL, hc: newHTTPClient()}
	return r.GetSalt(ctx)
}

// FetchInitialized reports whether the peer's store is initialized, without
// authentication.
func FetchInitialized(ctx context.Context, baseURL string) (bool, error) {
	r := &Remote{baseURL: baseURL, hc: newHTTPClient()}
	return r.IsInitialized(ctx)
}

func (r *Remote) IsInitialized(ctx context.Context) (bool, error) {
	var resp api.InitializedResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/initialized", nil, &resp); err != nil {
		return false, err
	}
	return resp.Initialized, nil
}

func (r *Remote) GetSalt(ctx context.Context) ([]byte, error) {
	var resp api.SaltResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/salt", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Salt) == 0 {
		return nil, common.ErrNotInitialized
	}
	return resp.Salt, nil
}

// VerifyPassword fetches the verification payload ciphertext and decrypts
// it locally, keeping the password-check oracle on this side of the wire.
func (r *Remote) VerifyPassword(ctx context.Context, key *cryptox.MasterKey) (bool, error) {
	var resp api.PayloadResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/payload", nil, &resp); err != nil {
		return false, err
	}
	if len(resp.Payload) == 0 {
		return false, common.ErrNotInitialized
	}

	plaintext, err := cryptox.Decrypt(key, resp.Payload)
	if err != nil {
		return false, nil
	}
	return string(plaintext) == common.VerificationPlaintext, nil
}

func (r *Remote) ListEntries(ctx context.Context) ([]models.ClipboardEntry, error) {
	var resp api.EntriesResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/entries", nil, &resp); err != nil {
		return nil, err
	}

	result := make([]models.ClipboardEntry, 0, len(resp.Entries))
	for _, blob := range resp.Entries {
		e, err := models.DecodeBlob(blob)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, nil
}

func (r *Remote) GetEntry(ctx context.Context, id string) (*models.ClipboardEntry, error) {
	var resp api.EntryResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/entries/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return models.DecodeBlob(resp.Entry)
}

func (r *Remote) InsertEntry(ctx context.Context, e *models.ClipboardEntry) error {
	blob, err := models.EncodeBlob(e)
	if err != nil {
		return err
	}
	return r.do(ctx, http.MethodPost, "/clipboard/entries", api.InsertRequest{Entry: blob}, nil)
}

func (r *Remote) DeleteEntry(ctx context.Context, id string) (bool, error) {
	var resp api.DeleteResponse
	if err := r.do(ctx, http.MethodDelete, "/clipboard/entries/"+id, nil, &resp); err != nil {
		return false, err
	}
	return resp.Deleted > 0, nil
}

func (r *Remote) CountEntries(ctx context.Context) (int, error) {
	var resp api.CountResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (r *Remote) HashExists(ctx context.Context, hash string) (bool, error) {
	var resp api.ExistsResponse
	if err := r.do(ctx, http.MethodGet, "/clipboard/hash/"+hash, nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (r *Remote) PruneToLimit(ctx context.Context, max int) (int, error) {
	var resp api.DeleteResponse
	if err := r.do(ctx, http.MethodPost, "/clipboard/prune", api.PruneRequest{Max: max}, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

func (r *Remote) ClearEntries(ctx context.Context) (int, error) {
	var resp api.DeleteResponse
	if err := r.do(ctx, http.MethodDelete, "/clipboard/entries", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}
