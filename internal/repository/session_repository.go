package repository

import (
	"context"
	"database/sql"
	"task-service/internal/entity"
)

// SessionRepository mirrors issued sessions into the sessions table.
// Authorization never reads these rows back; the session store is authoritative.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	query := `INSERT INTO sessions (session_id, user_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, session.SessionID, session.UserID)
	return err
}

// GetUserSessionIDs lists the mirrored session ids issued to a user.
func (r *SessionRepository) GetUserSessionIDs(ctx context.Context, userID int) ([]string, error) {
	return r.querySessionIDs(ctx, `SELECT session_id FROM sessions WHERE user_id = ? ORDER BY session_id`, userID)
}

func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = ?`
	_, err := r.db.ExecContext(ctx, query, sessionID)
	return err
}

func (r *SessionRepository) DeleteAllSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteUserSessions removes the mirror rows of a user so the user row can be deleted.
func (r *SessionRepository) DeleteUserSessions(ctx context.Context, userID int) error {
	query := `DELETE FROM sessions WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *SessionRepository) GetSessionIDs(ctx context.Context) ([]string, error) {
	return r.querySessionIDs(ctx, `SELECT session_id FROM sessions ORDER BY session_id`)
}

func (r *SessionRepository) querySessionIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	var ids []string

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
