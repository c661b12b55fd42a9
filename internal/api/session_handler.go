package api

import (
	"fmt"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"net/http"
	"task-service/internal/service"
	"task-service/internal/session"
	"time"
)

const sessionContextKey = "session"

type SessionHandler struct {
	sessionService *service.SessionService
	codec          *session.CookieCodec
	cookieName     string
	ttl            time.Duration
}

func NewSessionHandler(sessionService *service.SessionService, codec *session.CookieCodec, cookieName string, ttl time.Duration) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		codec:          codec,
		cookieName:     cookieName,
		ttl:            ttl,
	}
}

// RequireSession verifies the signed session cookie and stores the session id in the context.
func (h *SessionHandler) RequireSession() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + h.cookieName,
		ContextKey:  sessionContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return h.codec.Decode(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if _, cerr := c.Cookie(h.cookieName); cerr != nil {
				return c.JSON(403, map[string]string{"error": "No session provided"})
			}
			return c.JSON(403, map[string]string{"error": "Invalid session provided"})
		},
	})
}

func (h *SessionHandler) sessionID(c echo.Context) (string, error) {
	sessionID, ok := c.Get(sessionContextKey).(string)
	if !ok || sessionID == "" {
		return "", session.ErrInvalidCookie
	}
	return sessionID, nil
}

// CreateSession logs a user in and sets the session cookie --> /create_session/:user_id
func (h *SessionHandler) CreateSession(c echo.Context) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	value, err := h.sessionService.Create(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(200, fmt.Sprintf("created session for %d", userID))
}

// WhoAmI returns the data of the current session --> /whoami
func (h *SessionHandler) WhoAmI(c echo.Context) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.JSON(403, map[string]string{"error": "Invalid session provided"})
	}

	data, err := h.sessionService.WhoAmI(c.Request().Context(), sessionID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, data)
}

// DeleteSession logs out and clears the cookie --> /delete_session
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.JSON(403, map[string]string{"error": "Invalid session provided"})
	}

	if err := h.sessionService.Delete(c.Request().Context(), sessionID); err != nil {
		return errorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(200, "deleted session")
}

// DeleteAllSessions revokes every issued session --> /deleteAllSessions
func (h *SessionHandler) DeleteAllSessions(c echo.Context) error {
	deleted, err := h.sessionService.Reset(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": fmt.Sprintf("Deleted %d sessions", deleted)})
}
