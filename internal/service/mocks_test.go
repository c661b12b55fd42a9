package service

import (
	"context"
	"errors"
	"golang.org/x/crypto/bcrypt"
	"sync"
	"task-service/internal/repository"
	"task-service/internal/session"
	"task-service/internal/testutil"
	"testing"
	"time"
)

// recordingPublisher keeps the keys of published events.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type services struct {
	tasks     *TaskService
	users     *UserService
	sessions  *SessionService
	store     *session.MemoryStore
	codec     *session.CookieCodec
	mirror    *repository.SessionRepository
	publisher *recordingPublisher
}

func newServices(t *testing.T) *services {
	t.Helper()

	db := testutil.NewDB(t)
	publisher := &recordingPublisher{}
	sessionRepo := repository.NewSessionRepository(db)
	store := session.NewMemoryStore()
	codec := session.NewCookieCodec("secret", time.Hour)

	users := NewUserService(repository.NewUserRepository(db), sessionRepo, store, publisher).WithHashCost(bcrypt.MinCost)
	return &services{
		tasks:     NewTaskService(repository.NewTaskRepository(db), publisher),
		users:     users,
		sessions:  NewSessionService(store, sessionRepo, users, codec, time.Hour, publisher),
		store:     store,
		codec:     codec,
		mirror:    sessionRepo,
		publisher: publisher,
	}
}

func assertKind(t *testing.T, err error, kind error, detail string) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("got error %v, want kind %v", err, kind)
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("error %v is not a *service.Error", err)
	}
	if svcErr.Detail != detail {
		t.Errorf("Detail = %q, want %q", svcErr.Detail, detail)
	}
}
