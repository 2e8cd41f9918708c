// Package memstore is an in-process implementation of the account stores.
// It backs STORE_DRIVER=memory and the service and router tests.
package memstore

import (
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// table holds one collection. Rows are stored and returned as copies so
// callers never share memory with the store.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]*T

	id      func(*T) *string
	email   func(*T) string
	hash    func(*T) *string
	created func(*T) time.Time
}

func (t *table[T]) init() {
	if t.rows == nil {
		t.rows = make(map[string]*T)
	}
}

func (t *table[T]) copyOf(v *T, withHash bool) *T {
	c := *v
	if !withHash {
		*t.hash(&c) = ""
	}
	return &c
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t.copyOf(v, false), nil
}

func (t *table[T]) byEmail(email string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, v := range t.rows {
		if t.email(v) == email {
			return t.copyOf(v, true), nil
		}
	}
	return nil, domain.ErrNotFound
}

// list returns matching rows, newest first.
func (t *table[T]) list(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0)
	for _, v := range t.rows {
		if match(v) {
			out = append(out, t.copyOf(v, false))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := t.created(out[i]), t.created(out[j])
		if ci.Equal(cj) {
			return *t.id(out[i]) > *t.id(out[j])
		}
		return ci.After(cj)
	})
	return out
}

func (t *table[T]) findOne(match func(*T) bool) (*T, error) {
	rows := t.list(match)
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (t *table[T]) count(match func(*T) bool) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, v := range t.rows {
		if match(v) {
			n++
		}
	}
	return n
}

func (t *table[T]) emailTakenLocked(email, selfID string) bool {
	for id, v := range t.rows {
		if id != selfID && t.email(v) == email {
			return true
		}
	}
	return false
}

// insert assigns a fresh ObjectID hex id to v and stores a copy.
func (t *table[T]) insert(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.init()
	if t.emailTakenLocked(t.email(v), "") {
		return domain.ErrDuplicate
	}
	*t.id(v) = primitive.NewObjectID().Hex()
	t.rows[*t.id(v)] = t.copyOf(v, true)
	return nil
}

// save replaces the stored row, keeping the stored hash when v has none.
func (t *table[T]) save(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(v)
	prev, ok := t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if t.emailTakenLocked(t.email(v), id) {
		return domain.ErrDuplicate
	}
	next := t.copyOf(v, true)
	if *t.hash(next) == "" {
		*t.hash(next) = *t.hash(prev)
	}
	t.rows[id] = next
	return nil
}

func boolMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}
