package dictionaries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"usage-counter/internal/shared/filestorages"
)

// tablesFile is the single JSON document holding all lookup tables for a run.
const tablesFile = "tables.json"

// Load reads the lookup tables from file storage. A missing or unreadable
// tables file is a configuration error and aborts the batch: the resolvers
// cannot produce meaningful classifications without the dictionaries.
func Load(ctx context.Context, fileStorage filestorages.FileStorage, dir, defaultCollection string) (*Tables, error) {
	key := path.Join(dir, tablesFile)

	readCloser, err := fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary tables %q: %w", key, err)
	}
	defer readCloser.Close()

	raw, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary tables %q: %w", key, err)
	}

	var data TableData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dictionary tables %q: %w", key, err)
	}

	return New(data, defaultCollection), nil
}
