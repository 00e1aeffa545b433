package depot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists an ownership ledger to a single file, replaced as a whole on
// every mutation.
//
// Concurrency policy: last writer wins. The tool is a single-user household
// dashboard with no concurrent-writer story; the atomic rename below protects
// against torn files, not against two writers racing.
type Store struct {
	path     string
	fallback *Ledger
}

// NewStore creates a store for the ledger file at path. fallback is the
// documented default ledger returned by Load when the file is absent or
// unreadable.
func NewStore(path string, fallback *Ledger) *Store {
	return &Store{path: path, fallback: fallback}
}

// Path returns the ledger file path.
func (s *Store) Path() string { return s.path }

// Load reads the ledger from disk.
//
// An absent file is not an error: the fallback ledger is returned. Malformed
// content also yields the fallback, together with the decoding error so the
// caller can report it; it never crashes the caller.
func (s *Store) Load() (*Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.fallback.snapshot(), nil
	}
	if err != nil {
		return s.fallback.snapshot(), fmt.Errorf("cannot open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return s.fallback.snapshot(), fmt.Errorf("malformed ledger file %q: %w", s.path, err)
	}
	if err := ledger.Check(); err != nil {
		// Reportable, but the ledger is still returned for display.
		return ledger, fmt.Errorf("inconsistent ledger file %q: %w", s.path, err)
	}
	return ledger, nil
}

// Save writes the ledger snapshot and its full transaction log to disk as a
// unit. The file is written to a temporary sibling and renamed over the
// target, so readers never observe a torn file.
func (s *Store) Save(ledger *Ledger) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Record applies a transaction to the ledger and persists the result, as one
// operation. On persistence failure the in-memory mutation is rolled back, so
// memory and disk never diverge silently: either the operation fully
// happened, or the caller gets an error and an unchanged ledger.
func (s *Store) Record(ledger *Ledger, total Money, tx Transaction) (Money, error) {
	snap := ledger.snapshot()

	newTotal, err := ledger.Apply(total, tx)
	if err != nil {
		return Money{}, err
	}
	if err := s.Save(ledger); err != nil {
		ledger.restore(snap)
		return Money{}, err
	}
	return newTotal, nil
}
