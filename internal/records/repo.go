// server/internal/records/repo.go
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"ehs-compliance-api-server/internal/store"
)

// ErrNotFound is returned by Get and Update when no record has the given id.
// Delete of a missing id is a no-op, not an error.
var ErrNotFound = errors.New("record not found")

// Keyed is the minimum a stored record needs to expose. models.Base
// satisfies it by embedding.
type Keyed interface {
	RecordID() string
}

// Repo is the generic CRUD factory over one named collection. Every mutation
// is a read-modify-write of the whole collection; a per-collection mutex
// serializes those cycles within the process.
type Repo[T Keyed] struct {
	store  store.Store
	key    string
	prefix string // folio prefix; "" means the entity carries no folio
	mu     sync.Mutex
}

// New builds a Repo for the collection stored at key. folioPrefix may be
// empty for entities without a human-facing folio.
func New[T Keyed](st store.Store, key, folioPrefix string) *Repo[T] {
	return &Repo[T]{store: st, key: key, prefix: folioPrefix}
}

func (r *Repo[T]) load(ctx context.Context) ([]T, error) {
	var list []T
	found, err := r.store.Read(ctx, r.key, &list)
	if err != nil {
		return nil, err
	}
	if !found || list == nil {
		return []T{}, nil
	}
	return list, nil
}

// GetAll returns the full collection in stored order.
func (r *Repo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.load(ctx)
}

// Get returns the record with the given id, or ErrNotFound.
func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	list, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range list {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, id, r.key)
}

// Add assigns a fresh id (and folio, if configured) to rec, appends it to
// the collection and persists. The folio index is the collection length at
// insertion time, so a folio freed by a delete can be reissued to a later
// record; callers rely on that parity with existing data.
func (r *Repo[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return zero, err
	}

	m, err := toMap(rec)
	if err != nil {
		return zero, err
	}
	m["id"] = NewID()
	if r.prefix != "" {
		m["folio"] = Folio(r.prefix, len(list)+1)
	}

	created, err := fromMap[T](m)
	if err != nil {
		return zero, err
	}

	list = append(list, created)
	if err := r.store.Write(ctx, r.key, list); err != nil {
		return zero, err
	}
	return created, nil
}

// Update shallow-merges patch over the stored record with the given id and
// persists the collection. The id and folio fields cannot be patched.
// Returns ErrNotFound when the id does not exist.
func (r *Repo[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return zero, err
	}

	for i, rec := range list {
		if rec.RecordID() != id {
			continue
		}

		m, err := toMap(rec)
		if err != nil {
			return zero, err
		}
		for k, v := range patch {
			if k == "id" || k == "folio" {
				continue
			}
			m[k] = v
		}

		updated, err := fromMap[T](m)
		if err != nil {
			return zero, err
		}

		list[i] = updated
		if err := r.store.Write(ctx, r.key, list); err != nil {
			return zero, err
		}
		return updated, nil
	}

	return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, id, r.key)
}

// Delete removes the record with the given id if present. Deleting a
// missing id changes nothing and returns nil.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	removed := false
	for _, rec := range list {
		if rec.RecordID() == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}
	return r.store.Write(ctx, r.key, kept)
}

// DeleteWhere removes every record matching the predicate. Used for
// cascading owned sub-records (inspection logs, waste logs) when their
// parent catalog entry is deleted.
func (r *Repo[T]) DeleteWhere(ctx context.Context, match func(T) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	removed := false
	for _, rec := range list {
		if match(rec) {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}
	return r.store.Write(ctx, r.key, kept)
}

func toMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return m, nil
}

func fromMap[T any](m map[string]interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("encoding record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding record: %w", err)
	}
	return out, nil
}
