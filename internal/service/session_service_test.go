package service

import (
	"context"
	"errors"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	user := createUser(t, s, "ann@example.com", "pw")

	cookie, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sessionID, err := s.codec.Decode(cookie)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	data, err := s.sessions.WhoAmI(ctx, sessionID)
	if err != nil {
		t.Fatalf("WhoAmI: %v", err)
	}
	if data.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", data.UserID, user.ID)
	}

	mirrored, err := s.mirror.GetUserSessionIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserSessionIDs: %v", err)
	}
	if len(mirrored) != 1 || mirrored[0] != sessionID {
		t.Errorf("mirror ids = %v, want [%s]", mirrored, sessionID)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = s.sessions.WhoAmI(ctx, sessionID)
	assertKind(t, err, ErrInvalidSession, "invalid session")

	mirrored, err = s.mirror.GetUserSessionIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserSessionIDs: %v", err)
	}
	if len(mirrored) != 0 {
		t.Errorf("mirror row should be deleted, got %v", mirrored)
	}
}

func TestCreateSessionForMissingUser(t *testing.T) {
	s := newServices(t)

	_, err := s.sessions.Create(context.Background(), 42)
	assertKind(t, err, ErrNotFound, "User not found")
}

func TestSessionReset(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	user := createUser(t, s, "ann@example.com", "pw")

	var ids []string
	for i := 0; i < 3; i++ {
		cookie, err := s.sessions.Create(ctx, user.ID)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		id, err := s.codec.Decode(cookie)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		ids = append(ids, id)
	}

	deleted, err := s.sessions.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
	for _, id := range ids {
		if _, err := s.sessions.WhoAmI(ctx, id); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("session %s still valid after reset", id)
		}
	}
}
