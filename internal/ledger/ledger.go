package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pkarpov/claimsift/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_items (
	item_id      TEXT PRIMARY KEY,
	disposition  TEXT NOT NULL,
	processed_at TIMESTAMP NOT NULL
);
`

// Ledger is the durable record of which inbound items have been processed.
// An item id appears at most once; marking is first-write-wins so an item is
// never reprocessed even after a crash between delivery and marking.
type Ledger struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Seen reports whether the item has already been processed.
func (l *Ledger) Seen(itemID string) (bool, error) {
	var n int
	err := l.db.Get(&n, `SELECT COUNT(*) FROM processed_items WHERE item_id = ?`, itemID)
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return n > 0, nil
}

// Mark records the item as processed with the given disposition. Marking an
// already-marked item is a no-op: the original disposition stands.
func (l *Ledger) Mark(itemID string, disposition model.Disposition) error {
	_, err := l.db.Exec(
		`INSERT OR IGNORE INTO processed_items (item_id, disposition, processed_at) VALUES (?, ?, ?)`,
		itemID, disposition, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("mark item %s: %w", itemID, err)
	}
	return nil
}

// Record returns the processing record for the item, or nil when unseen.
func (l *Ledger) Record(itemID string) (*model.ProcessingRecord, error) {
	var rec model.ProcessingRecord
	err := l.db.Get(&rec,
		`SELECT item_id, disposition, processed_at FROM processed_items WHERE item_id = ?`, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	return &rec, nil
}

// Count returns the number of processed items.
func (l *Ledger) Count() (int, error) {
	var n int
	if err := l.db.Get(&n, `SELECT COUNT(*) FROM processed_items`); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return n, nil
}
