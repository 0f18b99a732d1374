package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	bbolt "go.etcd.io/bbolt"

	"github.com/bwaremarkt/storefront/internal/dal/bolt"
	"github.com/bwaremarkt/storefront/pkg/events"
)

// Persisted collection names. These, together with the JSON shapes stored
// under them, are the compatibility surface of the store.
const (
	CollectionCart      = "cart"
	CollectionOrders    = "orders"
	CollectionAddresses = "addresses"
	CollectionUser      = "user"
)

// Change-event names. Derived from the collection name plus "Updated",
// except for orders, which has historically broadcast the singular form.
var eventNames = map[string]string{
	CollectionOrders: "orderUpdated",
}

// SchemaVersion is the current on-disk envelope version.
const SchemaVersion = 1

var (
	// ErrStorageUnavailable marks reads and writes that failed because the
	// persistence medium is inaccessible.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptRecord marks persisted content that could not be parsed.
	ErrCorruptRecord = errors.New("corrupt record")
)

// envelope wraps every persisted collection. Payloads written before the
// envelope was introduced are bare JSON values; Read accepts both.
type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// Store persists named JSON-serializable collections and broadcasts a change
// event on every successful write. It deliberately has no cross-process
// locking: if two processes write the same collection, the last writer wins
// and the earlier write is lost. That is an accepted property of a
// best-effort single-device store, not something the Store mediates.
type Store struct {
	db  *bolt.Client
	bus *events.Bus
}

// NewStore creates a store over the given bbolt client and event bus.
func NewStore(db *bolt.Client, bus *events.Bus) *Store {
	return &Store{
		db:  db,
		bus: bus,
	}
}

// EventName returns the change-event name broadcast for a collection.
func EventName(name string) string {
	if e, ok := eventNames[name]; ok {
		return e
	}

	return name + "Updated"
}

// Read loads a collection into out, which must be a non-nil pointer. A
// missing collection, an unreadable medium, or unparseable content all leave
// out at its zero value: absence and corruption degrade to "empty", they are
// never fatal. The returned error reports what happened for logging.
func (s *Store) Read(name string, out any) error {
	zero(out)

	var raw []byte
	err := s.db.DB().View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bolt.CollectionsBucket)).Get([]byte(name)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: reading %q: %v", ErrStorageUnavailable, name, err)
	}

	if raw == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.SchemaVersion >= SchemaVersion && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			zero(out)
			return fmt.Errorf("%w: collection %q: %v", ErrCorruptRecord, name, err)
		}

		return nil
	}

	// Legacy payload without an envelope. It migrates to the current format
	// on the next write.
	if err := json.Unmarshal(raw, out); err != nil {
		zero(out)
		return fmt.Errorf("%w: collection %q: %v", ErrCorruptRecord, name, err)
	}

	return nil
}

// Write serializes v, persists it as the full content of the collection and
// then synchronously broadcasts the collection's change event, whether or
// not anyone is subscribed.
func (s *Store) Write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %q: %w", name, err)
	}

	raw, err := json.Marshal(envelope{
		SchemaVersion: SchemaVersion,
		Data:          data,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize envelope for %q: %w", name, err)
	}

	err = s.db.DB().Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bolt.CollectionsBucket)).Put([]byte(name), raw)
	})
	if err != nil {
		return fmt.Errorf("%w: writing %q: %v", ErrStorageUnavailable, name, err)
	}

	s.bus.Publish(EventName(name))

	return nil
}

// Delete removes a collection wholesale and broadcasts its change event.
func (s *Store) Delete(name string) error {
	err := s.db.DB().Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bolt.CollectionsBucket)).Delete([]byte(name))
	})
	if err != nil {
		return fmt.Errorf("%w: deleting %q: %v", ErrStorageUnavailable, name, err)
	}

	s.bus.Publish(EventName(name))

	return nil
}

// Subscribe registers a handler for the collection's change event and
// returns a function that removes it. The handler receives no payload and
// must re-read the collection.
func (s *Store) Subscribe(name string, handler func()) func() {
	return s.bus.Subscribe(EventName(name), handler)
}

// DecodeRecords decodes a raw sequence record by record, skipping elements
// that fail to parse. A collection poisoned by one malformed record stays
// usable; the bad records are dropped, not propagated.
func DecodeRecords[T any](raw []json.RawMessage) []T {
	records := make([]T, 0, len(raw))
	for _, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			slog.Warn("Skipping malformed record", "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records
}

// UndecodedRecords returns the elements of raw that DecodeRecords would
// skip. Writers merge them back into the collection so an unparseable
// record survives rewrites instead of being silently dropped.
func UndecodedRecords[T any](raw []json.RawMessage) []json.RawMessage {
	var kept []json.RawMessage
	for _, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			kept = append(kept, r)
		}
	}

	return kept
}

func zero(out any) {
	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
}
