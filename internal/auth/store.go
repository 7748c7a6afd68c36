package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUserNotFound is returned when a user id has no profile.
var ErrUserNotFound = errors.New("user not found")

// Profile holds the enrolled references for one user.
type Profile struct {
	VoicePrint     string
	PIN            string
	TrustedDevices []string
}

// Store is an immutable user id to profile mapping.
type Store struct {
	profiles map[string]Profile
}

// NewStore copies profiles into a read-only store.
func NewStore(profiles map[string]Profile) (*Store, error) {
	copied := make(map[string]Profile, len(profiles))
	for id, p := range profiles {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("user id must not be empty")
		}
		p.TrustedDevices = append([]string(nil), p.TrustedDevices...)
		copied[id] = p
	}
	return &Store{profiles: copied}, nil
}

// DefaultProfiles returns the enrolled demo users.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"thabo":      {VoicePrint: "voice_hash_1234", PIN: "5678", TrustedDevices: []string{"home_bt", "car_bt"}},
		"matseliso":  {VoicePrint: "voice_hash_5678", PIN: "1234", TrustedDevices: []string{"office_wifi"}},
		"ntate_john": {VoicePrint: "voice_hash_9012", PIN: "4321", TrustedDevices: []string{"home_bt", "personal_device"}},
	}
}

// Get returns the profile for id.
func (s *Store) Get(id string) (Profile, error) {
	if s == nil {
		return Profile{}, fmt.Errorf("%w: %q", ErrUserNotFound, id)
	}
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUserNotFound, id)
	}
	return p, nil
}

// Users returns the enrolled ids in sorted order.
func (s *Store) Users() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of enrolled users.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.profiles)
}
