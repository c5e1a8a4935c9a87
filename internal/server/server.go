// Package server exposes the local entry store to peer processes over the
// clipboard HTTP API. The store itself serializes access, so the server
// can share it with other in-process users; everything served here is
// ciphertext plus non-secret metadata.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/clipvault/internal/api"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/dmitrijs2005/clipvault/internal/store"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

// DefaultAddr is the peer listen address.
const DefaultAddr = ":2573"

type Server struct {
	store *store.Store
	log   logging.Logger
	app   *drift.Engine
}

// New wires the HTTP surface around an unlocked store. The verifier
// (SHA-256 of the master key) gates every entry-touching route; salt,
// initialized and payload stay public because a caller needs them to
// derive its key before it can mint a token.
func New(s *store.Store, verifier []byte, log logging.Logger) *Server {
	srv := &Server{store: s, log: log}

	app := drift.New()
	app.Use(middleware.Recovery())
	app.Use(middleware.BodyParser())

	clip := app.Group("/clipboard")
	clip.Get("/salt", srv.getSalt)
	clip.Get("/initialized", srv.getInitialized)
	clip.Get("/payload", srv.getPayload)

	protected := clip.Group("")
	protected.Use(TokenAuth(verifier))
	protected.Get("/entries", srv.listEntries)
	protected.Post("/entries", srv.insertEntry)
	protected.Delete("/entries", srv.clearEntries)
	protected.Get("/entries/:id", srv.getEntry)
	protected.Delete("/entries/:id", srv.deleteEntry)
	protected.Get("/hash/:hash", srv.hashExists)
	protected.Post("/prune", srv.prune)
	protected.Get("/count", srv.count)

	srv.app = app
	return srv
}

// ServeHTTP makes the server usable with httptest and custom listeners.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Run blocks serving on addr until the process is terminated.
func (s *Server) Run(addr string) error {
	s.log.Info(context.Background(), "peer server listening", "addr", addr)
	return s.app.Run(addr)
}

func (s *Server) getSalt(c *drift.Context) {
	salt, err := s.store.GetSalt(context.Background())
	if err != nil {
		if errors.Is(err, common.ErrNotInitialized) {
			_ = c.JSON(http.StatusOK, api.SaltResponse{})
			return
		}
		c.InternalServerError("failed to read salt")
		return
	}
	_ = c.JSON(http.StatusOK, api.SaltResponse{Salt: salt})
}

func (s *Server) getInitialized(c *drift.Context) {
	ok, err := s.store.IsInitialized(context.Background())
	if err != nil {
		c.InternalServerError("failed to check store")
		return
	}
	_ = c.JSON(http.StatusOK, api.InitializedResponse{Initialized: ok})
}

func (s *Server) getPayload(c *drift.Context) {
	payload, err := s.store.GetVerificationPayload(context.Background())
	if err != nil {
		if errors.Is(err, common.ErrNotInitialized) {
			_ = c.JSON(http.StatusOK, api.PayloadResponse{})
			return
		}
		c.InternalServerError("failed to read verification payload")
		return
	}
	_ = c.JSON(http.StatusOK, api.PayloadResponse{Payload: payload})
}

func (s *Server) listEntries(c *drift.Context) {
	list, err := s.store.ListEntries(context.Background())
	if err != nil {
		c.InternalServerError("failed to list entries")
		return
	}

	blobs := make([]string, 0, len(list))
	for i := range list {
		blob, err := models.EncodeBlob(&list[i])
		if err != nil {
			c.InternalServerError("failed to encode entry")
			return
		}
		blobs = append(blobs, blob)
	}
	_ = c.JSON(http.StatusOK, api.EntriesResponse{Entries: blobs})
}

func (s *Server) getEntry(c *drift.Context) {
	e, err := s.store.GetEntry(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.NotFound("entry not found")
			return
		}
		c.InternalServerError("failed to get entry")
		return
	}

	blob, err := models.EncodeBlob(e)
	if err != nil {
		c.InternalServerError("failed to encode entry")
		return
	}
	_ = c.JSON(http.StatusOK, api.EntryResponse{Entry: blob})
}

func (s *Server) insertEntry(c *drift.Context) {
	var req api.InsertRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	e, err := models.DecodeBlob(req.Entry)
	if err != nil {
		c.BadRequest("invalid entry blob")
		return
	}

	if err := s.store.InsertEntry(context.Background(), e); err != nil {
		c.InternalServerError("failed to insert entry")
		return
	}
	s.log.Info(context.Background(), "stored entry from peer", "id", e.ID, "type", e.ContentType)
	_ = c.JSON(http.StatusCreated, api.EntryResponse{Entry: req.Entry})
}

func (s *Server) deleteEntry(c *drift.Context) {
	removed, err := s.store.DeleteEntry(context.Background(), c.Param("id"))
	if err != nil {
		c.InternalServerError("failed to delete entry")
		return
	}

	deleted := 0
	if removed {
		deleted = 1
	}
	_ = c.JSON(http.StatusOK, api.DeleteResponse{Deleted: deleted})
}

func (s *Server) clearEntries(c *drift.Context) {
	deleted, err := s.store.ClearEntries(context.Background())
	if err != nil {
		c.InternalServerError("failed to clear entries")
		return
	}
	_ = c.JSON(http.StatusOK, api.DeleteResponse{Deleted: deleted})
}

func (s *Server) hashExists(c *drift.Context) {
	exists, err := s.store.HashExists(context.Background(), c.Param("hash"))
	if err != nil {
		c.InternalServerError("failed to check hash")
		return
	}
	_ = c.JSON(http.StatusOK, api.ExistsResponse{Exists: exists})
}

func (s *Server) prune(c *drift.Context) {
	var req api.PruneRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Max < 0 {
		c.BadRequest("max must be non-negative")
		return
	}

	deleted, err := s.store.PruneToLimit(context.Background(), req.Max)
	if err != nil {
		c.InternalServerError("failed to prune entries")
		return
	}
	_ = c.JSON(http.StatusOK, api.DeleteResponse{Deleted: deleted})
}

func (s *Server) count(c *drift.Context) {
	n, err := s.store.CountEntries(context.Background())
	if err != nil {
		c.InternalServerError("failed to count entries")
		return
	}
	_ = c.JSON(http.StatusOK, api.CountResponse{Count: n})
}
