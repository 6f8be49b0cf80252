package ports

import (
	"context"

	"github.com/aretw0/riggen/pkg/domain"
)

// ResultStore defines the interface for persisting converted output.
type ResultStore interface {
	// Save persists the output sequence under the given name, replacing any previous one.
	Save(ctx context.Context, name string, seq domain.OutputSequence) error

	// Load retrieves the output sequence stored under name.
	// Returns domain.ErrResultNotFound if it does not exist.
	Load(ctx context.Context, name string) (domain.OutputSequence, error)

	// Delete removes the output stored under name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored outputs.
	List(ctx context.Context) ([]string, error)
}
