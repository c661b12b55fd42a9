package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"task-service/internal/entity"
	"task-service/internal/events"
	"task-service/internal/repository"
	"task-service/internal/session"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

type UserService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	store       session.Store
	publisher   events.Publisher
	hashCost    int
}

// NewUserService creates a new instance of UserService.
// Deleting users also revokes their sessions in store.
func NewUserService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, store session.Store, publisher events.Publisher) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		store:       store,
		publisher:   publisher,
		hashCost:    bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost, mostly to keep tests fast.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email. A missing user is not an error: it returns nil, nil.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msgf("Error getting user by email %s", email)
		return nil, err
	}

	return user, nil
}

// ListUsers returns a window of users. An empty window is reported as not found.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error) {
	users, err := s.userRepo.GetUsers(ctx, skip, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	if len(users) == 0 {
		return nil, notFound("User is empty")
	}

	return users, nil
}

// CreateUser stores a new user with a bcrypt hash of the password.
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUser) (*entity.User, error) {
	if len(req.Password) > maxPasswordBytes {
		return nil, invalidInput(fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes))
	}

	existing, err := s.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalidInput("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	createdUser, err := s.userRepo.CreateUser(ctx, &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("user-created-%d", createdUser.ID), createdUser)
	return createdUser, nil
}

// VerifyUser checks the email and password pair used to log in.
func (s *UserService) VerifyUser(ctx context.Context, email, password string) (*entity.User, error) {
	invalid := &Error{Kind: ErrInvalidCredentials, Detail: "Invalid User & Password"}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invalid
		}
		logger.Error().Err(err).Msgf("Error verifying user %s", email)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Warn().Msgf("Password mismatch for user %s", email)
		return nil, invalid
	}

	return user, nil
}

// DeleteUserByEmail removes a user and revokes every session issued to it.
func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) (*entity.Message, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	ids, err := s.sessionRepo.GetUserSessionIDs(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing sessions of user %d", user.ID)
		return nil, err
	}
	if err := s.revokeSessions(ctx, ids); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.DeleteUserSessions(ctx, user.ID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting sessions of user %d", user.ID)
		return nil, err
	}
	if err := s.userRepo.DeleteUser(ctx, user.ID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", user.ID)
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("user-deleted-%d", user.ID), user)
	return &entity.Message{Message: "User Deleted Successfully"}, nil
}

// DeleteAllUsers removes every user and revokes every session.
// Deleting from an empty table is reported as not found.
func (s *UserService) DeleteAllUsers(ctx context.Context) (*entity.Message, error) {
	ids, err := s.sessionRepo.GetSessionIDs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing sessions")
		return nil, err
	}
	if err := s.revokeSessions(ctx, ids); err != nil {
		return nil, err
	}
	if _, err := s.sessionRepo.DeleteAllSessions(ctx); err != nil {
		logger.Error().Err(err).Msg("Error deleting all sessions")
		return nil, err
	}

	deleted, err := s.userRepo.DeleteAllUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting all users")
		return nil, err
	}
	if deleted == 0 {
		return nil, notFound("User is empty")
	}

	s.publish(ctx, "user-deleted-all", map[string]int64{"deleted": deleted})
	return &entity.Message{Message: "All User Deleted Successfully"}, nil
}

func (s *UserService) revokeSessions(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			logger.Error().Err(err).Msgf("Error revoking session %s", id)
			return err
		}
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		logger.Warn().Err(err).Msgf("Error publishing event %s", key)
	}
}
