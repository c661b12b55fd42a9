package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"task-service/internal/entity"
	"task-service/internal/events"
	"task-service/internal/repository"
	"task-service/internal/session"
	"time"
)

// SessionService issues, resolves and revokes login sessions.
// The store is authoritative; the sessions table is a mirror that is never read for authorization.
type SessionService struct {
	store       session.Store
	sessionRepo *repository.SessionRepository
	users       *UserService
	codec       *session.CookieCodec
	ttl         time.Duration
	publisher   events.Publisher
}

func NewSessionService(store session.Store, sessionRepo *repository.SessionRepository, users *UserService, codec *session.CookieCodec, ttl time.Duration, publisher events.Publisher) *SessionService {
	return &SessionService{
		store:       store,
		sessionRepo: sessionRepo,
		users:       users,
		codec:       codec,
		ttl:         ttl,
		publisher:   publisher,
	}
}

// Create starts a session for an existing user and returns the signed cookie value.
func (s *SessionService) Create(ctx context.Context, userID int) (string, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", err
	}

	sessionID := uuid.NewString()
	if err := s.store.Set(ctx, sessionID, entity.SessionData{UserID: userID}, s.ttl); err != nil {
		logger.Error().Err(err).Msgf("Error storing session for user %d", userID)
		return "", err
	}

	cookie, err := s.codec.Encode(sessionID)
	if err != nil {
		_ = s.store.Delete(ctx, sessionID)
		logger.Error().Err(err).Msg("Error signing session cookie")
		return "", err
	}

	err = s.sessionRepo.CreateSession(ctx, &entity.Session{SessionID: sessionID, UserID: userID})
	if err != nil {
		_ = s.store.Delete(ctx, sessionID)
		logger.Error().Err(err).Msgf("Error mirroring session for user %d", userID)
		return "", err
	}

	if err := s.publisher.Publish(ctx, fmt.Sprintf("session-created-%d", userID), entity.SessionData{UserID: userID}); err != nil {
		logger.Warn().Err(err).Msg("Error publishing session event")
	}
	return cookie, nil
}

// WhoAmI resolves a verified session id to its session data.
func (s *SessionService) WhoAmI(ctx context.Context, sessionID string) (*entity.SessionData, error) {
	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, &Error{Kind: ErrInvalidSession, Detail: "invalid session"}
		}
		logger.Error().Err(err).Msg("Error reading session")
		return nil, err
	}
	return data, nil
}

// Delete revokes a session in the store and removes its mirror row.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.Error().Err(err).Msg("Error deleting session")
		return err
	}
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error().Err(err).Msg("Error deleting session row")
		return err
	}

	if err := s.publisher.Publish(ctx, "session-deleted", map[string]string{"session_id": sessionID}); err != nil {
		logger.Warn().Err(err).Msg("Error publishing session event")
	}
	return nil
}

// Reset revokes every issued session and clears the mirror table.
func (s *SessionService) Reset(ctx context.Context) (int64, error) {
	ids, err := s.sessionRepo.GetSessionIDs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing sessions")
		return 0, err
	}
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			logger.Error().Err(err).Msgf("Error deleting session %s", id)
			return 0, err
		}
	}

	deleted, err := s.sessionRepo.DeleteAllSessions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error clearing sessions")
		return 0, err
	}
	return deleted, nil
}
