package api

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound indicates the requested user id is not present in the store.
var ErrNotFound = errors.New("user not found")

// UserStoreInterface allows switching between the in-memory implementation
// and future database-backed implementations.
type UserStoreInterface interface {
	List() []User
	Create(fields map[string]interface{}) User
	Get(id uint64) (User, error)
	Update(id uint64, fields map[string]interface{}) (User, error)
	Delete(id uint64) error
	Count() int
}

// InMemoryUserStore is the authoritative in-memory user collection. It owns
// identity allocation and timestamping. Ids are assigned consecutively and
// never reused, even after deletes, so a stale reference to a deleted id can
// never resolve to an unrelated record created later.
//
// The store trusts callers to have validated field shapes upstream; it
// enforces its own identity and timestamp invariants unconditionally.
type InMemoryUserStore struct {
	mu     sync.RWMutex
	users  map[uint64]*User
	order  []uint64
	nextID uint64
	nowFn  func() time.Time
}

// NewInMemoryUserStore creates an empty store with its id counter at 1.
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:  make(map[uint64]*User),
		nextID: 1,
		nowFn:  time.Now,
	}
}

// List returns all current records in insertion order.
func (s *InMemoryUserStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id].snapshot())
	}
	return out
}

// Create allocates the next id, stamps both timestamps, and stores a record
// holding a copy of fields. It never fails on the store's own account.
func (s *InMemoryUserStore) Create(fields map[string]interface{}) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn().UTC()
	u := &User{
		Id:         s.nextID,
		Fields:     cloneFields(fields),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	s.nextID++
	s.users[u.Id] = u
	s.order = append(s.order, u.Id)
	return u.snapshot()
}

// Get returns the record for id, or ErrNotFound.
func (s *InMemoryUserStore) Get(id uint64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u.snapshot(), nil
}

// Update merges fields over the existing record (shallow per-key overwrite,
// untouched keys survive), refreshes the modification timestamp, and returns
// the merged record. CreatedAt is never changed.
func (s *InMemoryUserStore) Update(id uint64, fields map[string]interface{}) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	for k, v := range fields {
		u.Fields[k] = v
	}
	u.ModifiedAt = s.nowFn().UTC()
	return u.snapshot(), nil
}

// Delete removes the record for id. The id is not returned to the counter.
func (s *InMemoryUserStore) Delete(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of current records.
func (s *InMemoryUserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// snapshot returns a copy whose field map does not alias store-owned state,
// so readers never observe a half-applied update.
func (u *User) snapshot() User {
	out := *u
	out.Fields = cloneFields(u.Fields)
	return out
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
