package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// subscriptionsKey is the storage key holding the full collection as a JSON
// array. Every mutation rewrites the whole value.
const subscriptionsKey = "subscriptions"

// Store owns the authoritative subscription list and is the sole writer of
// persisted state. Mutations keep memory and storage consistent: a failed
// write leaves the in-memory list untouched and is returned as an error.
type Store struct {
	storage Storage
	log     *logrus.Logger
	subs    []Subscription
}

func NewStore(storage Storage, log *logrus.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Load reads the persisted collection. When nothing has been stored yet it
// seeds the demo dataset and persists it immediately. Unreadable or
// malformed data leaves the list empty; failures are logged, never returned,
// so startup cannot crash on bad state.
func (s *Store) Load(now time.Time) {
	raw, ok, err := s.storage.Read(subscriptionsKey)
	if err != nil {
		s.log.WithError(err).Error("could not read stored subscriptions")
		s.subs = nil
		return
	}
	if !ok {
		seed := DemoSubscriptions(now)
		if err := s.persist(seed); err != nil {
			s.log.WithError(err).Error("could not persist demo subscriptions")
			s.subs = nil
			return
		}
		s.subs = seed
		return
	}
	var subs []Subscription
	if err := json.Unmarshal([]byte(raw), &subs); err != nil {
		s.log.WithError(err).Error("stored subscriptions are malformed")
		s.subs = nil
		return
	}
	s.subs = subs
}

// Subscriptions returns a snapshot of the current list. Callers own the
// returned slice.
func (s *Store) Subscriptions() []Subscription {
	return s.snapshot()
}

// Get returns the subscription with the given id.
func (s *Store) Get(id string) (Subscription, bool) {
	for _, sub := range s.subs {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subscription{}, false
}

// Add appends a record under a freshly assigned id, persists the full list
// and returns it. On a failed write nothing changes.
func (s *Store) Add(data Subscription) ([]Subscription, error) {
	data.ID = uuid.NewString()
	next := append(s.snapshot(), data)
	if err := s.persist(next); err != nil {
		return s.Subscriptions(), err
	}
	s.subs = next
	return s.Subscriptions(), nil
}

// Update replaces the record whose id matches. An unknown id is a silent
// no-op on the list contents; the collection is persisted either way.
func (s *Store) Update(sub Subscription) ([]Subscription, error) {
	next := s.snapshot()
	for i := range next {
		if next[i].ID == sub.ID {
			next[i] = sub
		}
	}
	if err := s.persist(next); err != nil {
		return s.Subscriptions(), err
	}
	s.subs = next
	return s.Subscriptions(), nil
}

// Delete removes the record with the given id. An unknown id is a silent
// no-op.
func (s *Store) Delete(id string) ([]Subscription, error) {
	next := make([]Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.ID != id {
			next = append(next, sub)
		}
	}
	if err := s.persist(next); err != nil {
		return s.Subscriptions(), err
	}
	s.subs = next
	return s.Subscriptions(), nil
}

// Cancel backdates the renewal date to yesterday, reclassifying the record
// as expired on the next view computation without deleting its history.
// Cancelling an unknown id is a silent no-op.
func (s *Store) Cancel(id string, now time.Time) ([]Subscription, error) {
	sub, ok := s.Get(id)
	if !ok {
		return s.Subscriptions(), nil
	}
	sub.RenewalDate = Yesterday(now)
	return s.Update(sub)
}

// Renew advances a recurring subscription's renewal date by one billing
// cycle. One-time subscriptions do not recur, so renewing one mutates
// nothing and persists nothing.
func (s *Store) Renew(sub Subscription) ([]Subscription, error) {
	next, ok := NextRenewalDate(sub)
	if !ok {
		return s.Subscriptions(), nil
	}
	sub.RenewalDate = next
	return s.Update(sub)
}

func (s *Store) snapshot() []Subscription {
	out := make([]Subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

func (s *Store) persist(subs []Subscription) error {
	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("marshaling subscriptions: %w", err)
	}
	if err := s.storage.Write(subscriptionsKey, string(data)); err != nil {
		return fmt.Errorf("saving subscriptions: %w", err)
	}
	return nil
}
