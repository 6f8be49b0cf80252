package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/riggen/pkg/domain"
)

const jsonExt = ".json"

// FileStore implements ports.ResultStore using the local filesystem.
// Each output is a 2-space indented JSON file. Names are paths relative to
// BasePath; the ".json" extension is added when missing.
type FileStore struct {
	BasePath string
}

// NewFileStore creates a new FileStore with the given base path.
// If basePath is empty, names resolve against the working directory.
func NewFileStore(basePath string) *FileStore {
	if basePath == "" {
		basePath = "."
	}
	return &FileStore{BasePath: basePath}
}

// Path returns the file an output name is written to.
func (f *FileStore) Path(name string) string {
	return f.path(name)
}

func (f *FileStore) path(name string) string {
	if !strings.EqualFold(filepath.Ext(name), jsonExt) {
		name += jsonExt
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.BasePath, name)
}

// Save writes the whole output sequence in one go, creating parent directories.
func (f *FileStore) Save(ctx context.Context, name string, seq domain.OutputSequence) error {
	if name == "" {
		return fmt.Errorf("output name cannot be empty")
	}
	if seq == nil {
		seq = domain.OutputSequence{}
	}

	filePath := f.path(name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	return writeAtomic(filePath, data)
}

// writeAtomic writes data to a temp file in the destination directory and
// renames it into place, so readers never observe a partial output.
func writeAtomic(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace existing output file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// Load reads back an output file written by Save.
func (f *FileStore) Load(ctx context.Context, name string) (domain.OutputSequence, error) {
	if name == "" {
		return nil, fmt.Errorf("output name cannot be empty")
	}

	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	var seq domain.OutputSequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal output: %w", err)
	}
	return seq, nil
}

// Delete removes the output file. Missing files are ignored.
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("output name cannot be empty")
	}

	err := os.Remove(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete output file: %w", err)
	}
	return nil
}

// List returns the names of the JSON files directly under BasePath, without extension.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); strings.EqualFold(ext, jsonExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	return names, nil
}
