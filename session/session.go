// Package session holds the authenticated principal and persists it
// across restarts so role-gated views survive a reload.
package session

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/internal/events"
)

// Roles a principal can hold.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
	RoleRider    = "rider"
)

// Principal is the signed-in user.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Store guards the current principal, token and favorites list.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	user      *Principal
	token     string
	favorites map[string]struct{}
}

// New builds a Store, restoring any persisted state. When bus is
// non-nil the store clears itself on session expiry signals.
func New(persister Persister, bus *events.Bus) *Store {
	s := &Store{
		persister: persister,
		favorites: make(map[string]struct{}),
	}
	s.restore()

	if bus != nil {
		bus.Subscribe(events.TopicSessionExpired, func(any) {
			log.Warn("Session expired, clearing stored credentials")
			s.SignOut()
		})
	}
	return s
}

// SignIn stores the principal and token and persists them.
func (s *Store) SignIn(user Principal, token string) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()
	s.persist()
}

// SignOut drops the principal, token and favorites.
func (s *Store) SignOut() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.favorites = make(map[string]struct{})
	s.mu.Unlock()
	s.persist()
}

// Current returns the signed-in principal, if any.
func (s *Store) Current() (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Principal{}, false
	}
	return *s.user, true
}

// Token returns the bearer token, if a session exists.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.token, true
}

// Authenticated reports whether a principal is signed in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// ToggleFavorite flips a product in the favorites list and reports the
// new state.
func (s *Store) ToggleFavorite(productID string) bool {
	s.mu.Lock()
	_, ok := s.favorites[productID]
	if ok {
		delete(s.favorites, productID)
	} else {
		s.favorites[productID] = struct{}{}
	}
	s.mu.Unlock()
	s.persist()
	return !ok
}

// IsFavorite reports whether a product is in the favorites list.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[productID]
	return ok
}

// Favorites returns the favorited product ids.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	return out
}
