package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aretw0/riggen/pkg/domain"
)

// Loader implements ports.SequenceLoader using an in-memory map.
type Loader struct {
	sequences map[string]domain.Sequence
}

// NewLoader creates a Loader serving the given sequences by name.
func NewLoader(sequences map[string]domain.Sequence) *Loader {
	data := make(map[string]domain.Sequence, len(sequences))
	for k, v := range sequences {
		data[k] = v
	}
	return &Loader{sequences: data}
}

// NewLoaderFromJSON decodes raw JSON documents into a Loader.
// This mirrors what the file loader sees, which keeps tests close to real inputs.
func NewLoaderFromJSON(docs map[string]string) (*Loader, error) {
	data := make(map[string]domain.Sequence, len(docs))
	for name, doc := range docs {
		var seq domain.Sequence
		if err := json.Unmarshal([]byte(doc), &seq); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		data[name] = seq
	}
	return &Loader{sequences: data}, nil
}

// Load returns a shallow copy of the named sequence.
func (l *Loader) Load(ctx context.Context, source string) (domain.Sequence, error) {
	seq, ok := l.sequences[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, source)
	}
	return slices.Clone(seq), nil
}
