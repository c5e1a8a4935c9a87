// Package api defines the wire contract shared by the remote backend
// client and the peer HTTP server: request/response bodies and the bearer
// token both sides derive from the master key.
//
// Everything crossing this boundary is ciphertext plus non-secret metadata
// (ids, timestamps, hashes, the salt). No password or key material is ever
// part of the contract.
package api

// SaltResponse carries the store salt, base64-encoded by encoding/json.
type SaltResponse struct {
	Salt []byte `json:"salt"`
}

// InitializedResponse reports whether the peer store has been initialized.
type InitializedResponse struct {
	Initialized bool `json:"initialized"`
}

// PayloadResponse carries the verification payload ciphertext so callers
// can check their password locally before requesting a token.
type PayloadResponse struct {
	Payload []byte `json:"payload"`
}

// EntriesResponse is the bulk listing: one compressed blob per entry
// (gzip + base64 of the entry JSON), newest first.
type EntriesResponse struct {
	Entries []string `json:"entries"`
}

// EntryResponse carries a single compressed entry blob.
type EntryResponse struct {
	Entry string `json:"entry"`
}

// InsertRequest submits a single compressed entry blob.
type InsertRequest struct {
	Entry string `json:"entry"`
}

// DeleteResponse reports whether a delete removed anything, or how many
// rows a bulk clear removed.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ExistsResponse answers a hash-existence check.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// PruneRequest asks the peer to prune down to Max entries.
type PruneRequest struct {
	Max int `json:"max"`
}

// CountResponse carries the current entry count.
type CountResponse struct {
	Count int `json:"count"`
}

// ErrorResponse is the body of any non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
