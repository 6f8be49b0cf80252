package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/riggen/pkg/domain"
)

// FileLoader implements ports.SequenceLoader by reading JSON landmark files.
// A file holds an array of frames, each an array of {x, y, z[, visibility]} objects.
type FileLoader struct {
	BasePath string
}

// NewFileLoader creates a FileLoader resolving relative sources against basePath.
func NewFileLoader(basePath string) *FileLoader {
	return &FileLoader{BasePath: basePath}
}

// Load reads and decodes the landmark file at source.
func (l *FileLoader) Load(ctx context.Context, source string) (domain.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := source
	if l.BasePath != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.BasePath, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var seq domain.Sequence
	if err := json.NewDecoder(file).Decode(&seq); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return seq, nil
}
