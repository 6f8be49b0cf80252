package ports

import (
	"context"

	"github.com/aretw0/riggen/pkg/domain"
)

// SequenceLoader defines how the converter retrieves landmark sequences.
type SequenceLoader interface {
	// Load reads and decodes the sequence identified by source.
	// Returns an error wrapping domain.ErrInputNotFound if the source does not exist.
	Load(ctx context.Context, source string) (domain.Sequence, error)
}
