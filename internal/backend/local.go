package backend

import "github.com/dmitrijs2005/clipvault/internal/store"

// Local backs the capability surface with the in-process store. The store
// already exposes the exact contract, so Local is a thin embedding.
type Local struct {
	*store.Store
}

func NewLocal(s *store.Store) *Local {
	return &Local{Store: s}
}
