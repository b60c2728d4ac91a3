package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkarpov/claimsift/internal/model"
)

// Source yields inbound items to process. Implementations must return stable
// item IDs: the same underlying message always maps to the same ID, so the
// ledger can skip it on re-listing.
type Source interface {
	// ListUnseen returns candidate items in arrival order. The caller
	// filters against the ledger; sources may return already-processed
	// items.
	ListUnseen(ctx context.Context) ([]model.InboundItem, error)
}

// DirSource reads items from a spool directory of JSON files, one
// model.InboundItem per *.json file. The filename (without extension)
// becomes the item ID when the file does not carry one, so re-listing the
// same spool is idempotent.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over the given spool directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) ListUnseen(ctx context.Context) ([]model.InboundItem, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read spool dir %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var items []model.InboundItem
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read spool item %s: %w", name, err)
		}

		var item model.InboundItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("decode spool item %s: %w", name, err)
		}
		if item.ID == "" {
			item.ID = strings.TrimSuffix(name, ".json")
		}
		items = append(items, item)
	}

	return items, nil
}
