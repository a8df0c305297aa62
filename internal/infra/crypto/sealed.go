package crypto

import (
	"bytes"
	"context"
	"fmt"

	"github.com/runoshun/todo/internal/domain"
)

// sealedMagic prefixes every sealed snapshot.
var sealedMagic = []byte("TODOSEAL1\n")

// SealedStore wraps a domain.SnapshotStore and encrypts what passes through it.
// Snapshots written before encryption was enabled are still readable; the
// next save seals them.
type SealedStore struct {
	inner domain.SnapshotStore
	enc   *Encryptor
}

// Ensure SealedStore implements domain.SnapshotStore and domain.SnapshotInspector.
var (
	_ domain.SnapshotStore     = (*SealedStore)(nil)
	_ domain.SnapshotInspector = (*SealedStore)(nil)
)

// NewSealedStore returns a SealedStore over inner.
func NewSealedStore(inner domain.SnapshotStore, enc *Encryptor) *SealedStore {
	return &SealedStore{inner: inner, enc: enc}
}

// Load reads and decrypts the snapshot.
func (s *SealedStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.inner.Load(ctx)
	if err != nil || len(data) == 0 {
		return data, err
	}
	if !IsSealed(data) {
		return data, nil
	}
	plain, err := s.enc.Decrypt(data[len(sealedMagic):])
	if err != nil {
		return nil, fmt.Errorf("unseal snapshot: %w", err)
	}
	return plain, nil
}

// Save encrypts the snapshot and hands it to the wrapped store.
func (s *SealedStore) Save(ctx context.Context, snapshot []byte) error {
	sealed, err := s.enc.Encrypt(snapshot)
	if err != nil {
		return fmt.Errorf("seal snapshot: %w", err)
	}
	return s.inner.Save(ctx, append(bytes.Clone(sealedMagic), sealed...))
}

// Revisions passes through to the wrapped store. Sizes are of the sealed data.
// A wrapped store that cannot describe itself reports no revisions.
func (s *SealedStore) Revisions(ctx context.Context, limit int) ([]domain.SnapshotRevision, error) {
	inspector, ok := s.inner.(domain.SnapshotInspector)
	if !ok {
		return nil, nil
	}
	return inspector.Revisions(ctx, limit)
}

// IsSealed reports whether data was written by a SealedStore.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealedMagic)
}
