package repository_test

import (
	"context"
	"task-service/internal/entity"
	"task-service/internal/repository"
	"task-service/internal/testutil"
	"testing"
)

func TestSessionRepositoryMirror(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	repo := repository.NewSessionRepository(db)

	user, err := users.CreateUser(ctx, &entity.User{Username: "ann", Email: "ann@example.com", Password: "h"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for _, id := range []string{"s1", "s2"} {
		if err := repo.CreateSession(ctx, &entity.Session{SessionID: id, UserID: user.ID}); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	other, err := users.CreateUser(ctx, &entity.User{Username: "bob", Email: "bob@example.com", Password: "h"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := repo.CreateSession(ctx, &entity.Session{SessionID: "s3", UserID: other.ID}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	owned, err := repo.GetUserSessionIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserSessionIDs: %v", err)
	}
	if len(owned) != 2 || owned[0] != "s1" || owned[1] != "s2" {
		t.Errorf("owned = %v, want [s1 s2]", owned)
	}

	if err := repo.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := repo.DeleteSession(ctx, "s3"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	ids, err := repo.GetSessionIDs(ctx)
	if err != nil {
		t.Fatalf("GetSessionIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s2" {
		t.Errorf("ids = %v, want [s2]", ids)
	}

	if err := repo.DeleteUserSessions(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUserSessions: %v", err)
	}
	deleted, err := repo.DeleteAllSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteAllSessions: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
