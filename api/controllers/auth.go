package controllers

import (
	"net/http"

	"github.com/Hrishi1717/shrimp/api/middleware"
	"github.com/Hrishi1717/shrimp/api/responses"
	"github.com/Hrishi1717/shrimp/api/validators"
	"github.com/Hrishi1717/shrimp/internal/auth"
	"github.com/Hrishi1717/shrimp/pkg/config"
	pkgerrors "github.com/Hrishi1717/shrimp/pkg/errors"
	"github.com/Hrishi1717/shrimp/pkg/logger"
)

// MessageLoggedOut acknowledges a logout.
const MessageLoggedOut = "Logged out successfully"

type sessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type sessionResponse struct {
	UserID       string  `json:"user_id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture"`
	Role         string  `json:"role"`
	SessionToken string  `json:"session_token"`
}

// AuthSession exchanges an external session id for a local session and sets
// the session cookie.
func AuthSession(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body sessionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateSession(r.Context(), body.SessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, result.Token, int(auth.SessionTTL.Seconds())))
		responses.WriteSuccess(w, sessionResponse{
			UserID:       result.User.ID,
			Email:        result.User.Email,
			Name:         result.User.Name,
			Picture:      result.User.Picture,
			Role:         result.User.Role.String(),
			SessionToken: result.Token,
		})
	}
}

// AuthMe returns the identity resolved by the auth middleware.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, auth.ErrNotAuthenticated)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthLogout removes every session of the caller and clears the cookie.
func AuthLogout(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, auth.ErrNotAuthenticated)
			return
		}

		if err := svc.Logout(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, "", -1))
		responses.WriteMessage(w, MessageLoggedOut)
	}
}

func sessionCookie(cfg config.SessionConfig, value string, maxAge int) *http.Cookie {
	// browsers drop SameSite=None cookies that are not Secure
	sameSite := http.SameSiteNoneMode
	if !cfg.CookieSecure {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite,
	}
}
