package auth

import (
	"errors"
	"testing"
)

func TestNewStore_DefaultProfiles(t *testing.T) {
	store, err := NewStore(DefaultProfiles())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 users, got %d", store.Len())
	}

	p, err := store.Get("thabo")
	if err != nil {
		t.Fatalf("Get(thabo): %v", err)
	}
	if p.PIN != "5678" || p.VoicePrint != "voice_hash_1234" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	want := []string{"matseliso", "ntate_john", "thabo"}
	got := store.Users()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Users()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_GetUnknownUser(t *testing.T) {
	store, _ := NewStore(DefaultProfiles())
	if _, err := store.Get("unknown_user"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestNewStore_RejectsEmptyID(t *testing.T) {
	if _, err := NewStore(map[string]Profile{"  ": {}}); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestNewStore_CopiesDeviceLists(t *testing.T) {
	profiles := map[string]Profile{"a": {TrustedDevices: []string{"x"}}}
	store, _ := NewStore(profiles)
	profiles["a"].TrustedDevices[0] = "mutated"

	p, _ := store.Get("a")
	if p.TrustedDevices[0] != "x" {
		t.Fatalf("store should not observe caller mutation, got %q", p.TrustedDevices[0])
	}
}
