// Package session holds the client's single authenticated identity and keeps
// a durable copy so restarting the client does not log the user out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// StorageKey is the well-known key holding the persisted session record.
const StorageKey = "user"

// Store owns the in-memory Session. Views read it through Current and change
// it only through Login and Logout.
type Store struct {
	storage Storage

	hydrate sync.Once

	// write orders Login and Logout so the persisted record matches the last
	// published session.
	write sync.Mutex

	mu        sync.RWMutex
	current   Session
	observers map[int]func(Session)
	nextID    int
}

// NewStore creates a store holding the empty session. No storage is read until Hydrate.
func NewStore(storage Storage) *Store {
	return &Store{
		storage:   storage,
		observers: make(map[int]func(Session)),
	}
}

// Open creates a store and hydrates it from storage.
func Open(storage Storage) *Store {
	s := NewStore(storage)
	s.Hydrate()
	return s
}

// Hydrate loads the persisted session. Only the first call has any effect.
// Absent or malformed records leave the store holding the empty session.
func (s *Store) Hydrate() {
	s.hydrate.Do(func() {
		sess := s.load()

		s.mu.Lock()
		s.current = sess
		s.mu.Unlock()
	})
}

// Current returns the session held in memory. It never performs I/O.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login replaces the session with the given credentials and persists it.
// Credentials that break the token/role invariant are stored as the empty session.
// A returned error reports a persistence failure only; the in-memory session
// already reflects the login.
func (s *Store) Login(c Credentials) error {
	s.write.Lock()
	defer s.write.Unlock()

	sess := fromCredentials(c)
	if !sess.Valid() {
		log.Warn().
			Bool("token", sess.Token != "").
			Int("cargo", int(sess.Role)).
			Msg("login credentials rejected, holding empty session")
		sess = Empty()
	}

	s.publish(sess)

	if !sess.Authenticated() {
		return s.remove()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.storage.Set(StorageKey, data); err != nil {
		log.Warn().Err(err).Msg("session persisted in memory only")
		return fmt.Errorf("failed to persist session: %w", err)
	}

	log.Debug().Str("role", sess.Role.String()).Msg("session stored")

	return nil
}

// Logout resets the session to empty and deletes the persisted record.
func (s *Store) Logout() error {
	s.write.Lock()
	defer s.write.Unlock()

	s.publish(Empty())
	return s.remove()
}

// Subscribe registers fn to be called after every Login and Logout.
// fn must not call Login or Logout. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(sess Session) {
	s.mu.Lock()
	s.current = sess
	observers := make([]func(Session), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(sess)
	}
}

func (s *Store) remove() error {
	if err := s.storage.Delete(StorageKey); err != nil {
		log.Warn().Err(err).Msg("failed to remove persisted session")
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

func (s *Store) load() Session {
	data, err := s.storage.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("failed to read persisted session")
		}
		return Empty()
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn().Err(err).Msg("ignoring malformed persisted session")
		return Empty()
	}

	if !sess.Valid() {
		log.Warn().Msg("ignoring inconsistent persisted session")
		return Empty()
	}

	return sess
}
