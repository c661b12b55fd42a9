package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"task-service/internal/entity"
	"task-service/internal/repository"
	"task-service/internal/testutil"
	"testing"
)

func TestUserRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	created, err := repo.CreateUser(ctx, &entity.User{Username: "ann", Email: "ann@example.com", Password: "hash"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	byID, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Email != "ann@example.com" || byID.Password != "hash" {
		t.Errorf("got %+v", byID)
	}

	byEmail, err := repo.GetUserByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("ID = %d, want %d", byEmail.ID, created.ID)
	}

	if _, err := repo.CreateUser(ctx, &entity.User{Username: "dup", Email: "ann@example.com", Password: "x"}); err == nil {
		t.Errorf("expected unique email violation")
	}

	if err := repo.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "ann@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetUserByEmail after delete: got %v", err)
	}
}

func TestUserRepositoryListAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	for _, email := range []string{"a@x.io", "b@x.io"} {
		if _, err := repo.CreateUser(ctx, &entity.User{Username: email, Email: email, Password: "h"}); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	users, err := repo.GetUsers(ctx, 0, 100)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}

	deleted, err := repo.DeleteAllUsers(ctx)
	if err != nil {
		t.Fatalf("DeleteAllUsers: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
}
