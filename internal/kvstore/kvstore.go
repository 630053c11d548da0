package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/roach88/stringvault/internal/record"
)

// seqBandwidth is how many sequence numbers Badger leases at a time.
const seqBandwidth = 128

// maxConflictRetries bounds how often a write transaction is retried after
// badger.ErrConflict before the error is returned.
const maxConflictRetries = 8

var (
	recPrefix = []byte("rec/")
	seqPrefix = []byte("seq/")
	seqKey    = []byte("meta/seq")
)

// Options configures Open.
type Options struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps all data in memory. Used by tests and the "memory"
	// driver fallback.
	InMemory bool

	// Logger receives Badger's internal log lines. Nil discards them.
	Logger *slog.Logger
}

// Store is a record.Store on top of an embedded Badger database.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// entry is the value stored under rec/<id>.
type entry struct {
	Seq    uint64              `json:"seq"`
	Record record.StringRecord `json:"record"`
}

// Open opens or creates a Badger database.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	if opts.Logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: opts.Logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	seq, err := db.GetSequence(seqKey, seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to lease sequence: %w", err)
	}
	return &Store{db: db, seq: seq}, nil
}

// Close releases unused sequence numbers and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	var errs []error
	if s.seq != nil {
		errs = append(errs, s.seq.Release())
		s.seq = nil
	}
	errs = append(errs, s.db.Close())
	s.db = nil
	return errors.Join(errs...)
}

// Get retrieves a single record by ID.
func (s *Store) Get(ctx context.Context, id string) (record.StringRecord, error) {
	if err := ctx.Err(); err != nil {
		return record.StringRecord{}, err
	}

	var e entry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		e, err = getEntry(txn, id)
		return err
	})
	if err != nil {
		return record.StringRecord{}, err
	}
	return e.Record, nil
}

// Put inserts rec if no record with the same ID exists.
func (s *Store) Put(ctx context.Context, rec record.StringRecord) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(recKey(rec.ID))
		if err == nil {
			return record.NewDuplicateError(rec.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("put: lookup: %w", err)
		}

		seq, err := s.seq.Next()
		if err != nil {
			return fmt.Errorf("put: allocate sequence: %w", err)
		}

		data, err := json.Marshal(entry{Seq: seq, Record: rec})
		if err != nil {
			return fmt.Errorf("put: marshal: %w", err)
		}
		if err := txn.Set(recKey(rec.ID), data); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		if err := txn.Set(orderKey(seq), []byte(rec.ID)); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		return nil
	})
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		e, err := getEntry(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(recKey(id)); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		if err := txn.Delete(orderKey(e.Seq)); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		return nil
	})
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]record.StringRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := []record.StringRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(seqPrefix); it.ValidForPrefix(seqPrefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("list: read order key: %w", err)
			}
			e, err := getEntry(txn, string(id))
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			records = append(records, e.Record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// update runs fn in a read-write transaction, retrying on write conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction conflict after %d attempts: %w", maxConflictRetries, err)
}

// getEntry reads and decodes rec/<id>.
func getEntry(txn *badger.Txn, id string) (entry, error) {
	item, err := txn.Get(recKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entry{}, record.NewNotFoundError(id)
	}
	if err != nil {
		return entry{}, fmt.Errorf("get %s: %w", id, err)
	}

	var e entry
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &e)
	})
	if err != nil {
		return entry{}, fmt.Errorf("decode %s: %w", id, err)
	}
	if e.Record.Properties.CharacterFrequency == nil {
		e.Record.Properties.CharacterFrequency = map[string]int{}
	}
	return e, nil
}

func recKey(id string) []byte {
	return append(append([]byte{}, recPrefix...), id...)
}

// orderKey zero-pads seq so lexicographic order equals numeric order.
func orderKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", seqPrefix, seq))
}
