package session

import (
	"encoding/json"
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
)

// SchemaVersion tags the persisted payload. Unknown versions are
// discarded and the session starts clean rather than guessing at a
// migration.
const SchemaVersion = 1

// Persister stores the serialized session blob.
type Persister interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// persistedState is the on-disk shape.
type persistedState struct {
	Version   int        `json:"version"`
	User      *Principal `json:"user,omitempty"`
	Token     string     `json:"token,omitempty"`
	Favorites []string   `json:"favorites,omitempty"`
}

func (s *Store) restore() {
	if s.persister == nil {
		return
	}
	data, err := s.persister.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("Could not restore session: ", err)
		}
		return
	}
	if len(data) == 0 {
		return
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn("Discarding corrupt session state: ", err)
		return
	}
	if state.Version != SchemaVersion {
		log.WithField("version", state.Version).Warn("Discarding session state with unknown schema version")
		return
	}

	s.mu.Lock()
	s.user = state.User
	s.token = state.Token
	for _, id := range state.Favorites {
		s.favorites[id] = struct{}{}
	}
	s.mu.Unlock()
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}

	s.mu.RLock()
	state := persistedState{
		Version:   SchemaVersion,
		User:      s.user,
		Token:     s.token,
		Favorites: make([]string, 0, len(s.favorites)),
	}
	for id := range s.favorites {
		state.Favorites = append(state.Favorites, id)
	}
	s.mu.RUnlock()

	data, err := json.Marshal(state)
	if err != nil {
		log.Error("Could not serialize session state: ", err)
		return
	}
	if err := s.persister.Save(data); err != nil {
		log.Error("Could not persist session state: ", err)
	}
}

// FilePersister stores the session blob as a JSON file.
type FilePersister struct {
	Path string
}

// Load reads the session file.
func (p FilePersister) Load() ([]byte, error) {
	return os.ReadFile(p.Path)
}

// Save writes the session file with owner-only permissions since it
// carries the bearer token.
func (p FilePersister) Save(data []byte) error {
	return os.WriteFile(p.Path, data, 0o600)
}
