package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/todo/internal/domain"
)

// ShowStoreInput contains the parameters for describing the snapshot store.
type ShowStoreInput struct {
	Limit int // Maximum number of revisions (0 = all)
}

// ShowStoreOutput describes where and how the snapshot is kept.
type ShowStoreOutput struct {
	Backend   string
	Location  string
	Revisions []domain.SnapshotRevision // Newest first
	Encrypted bool
}

// ShowStore is the use case for inspecting the persistence backend.
type ShowStore struct {
	inspector domain.SnapshotInspector
	store     domain.StoreConfig
	dataDir   string
}

// NewShowStore creates a new ShowStore use case.
// inspector may be nil for a backend that keeps no metadata.
func NewShowStore(inspector domain.SnapshotInspector, store domain.StoreConfig, dataDir string) *ShowStore {
	return &ShowStore{
		inspector: inspector,
		store:     store,
		dataDir:   dataDir,
	}
}

// Execute lists the stored revisions of the snapshot.
func (uc *ShowStore) Execute(ctx context.Context, in ShowStoreInput) (*ShowStoreOutput, error) {
	out := &ShowStoreOutput{
		Backend:   uc.store.Backend,
		Location:  uc.store.Location(uc.dataDir),
		Encrypted: uc.store.Encrypt,
	}
	if uc.inspector == nil {
		return out, nil
	}

	revs, err := uc.inspector.Revisions(ctx, max(in.Limit, 0))
	if err != nil {
		return nil, fmt.Errorf("read store revisions: %w", err)
	}
	out.Revisions = revs
	return out, nil
}
