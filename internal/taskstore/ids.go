package taskstore

import (
	"github.com/google/uuid"

	"github.com/runoshun/todo/internal/domain"
)

// UUIDGenerator issues random UUIDv4 task ids.
type UUIDGenerator struct{}

// NewID returns a new random id.
func (UUIDGenerator) NewID() domain.TaskID {
	return domain.TaskID(uuid.NewString())
}

var _ domain.IDGenerator = UUIDGenerator{}
