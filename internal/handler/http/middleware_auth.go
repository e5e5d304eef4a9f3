package http

import (
	"net/http"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
)

// auth is the guard of protected routes.
//
// The access token is read from the accessToken cookie, or else from an
// "Authorization: Bearer <token>" header. Missing, malformed, invalid,
// expired and orphaned tokens are all answered with the same 401; the
// service log records which check failed. On success the sanitized user is
// stored in the request context under [utils.UserCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := h.services.AuthService.Authenticate(ctx, accessTokenFromRequest(r))
		if err != nil {
			writeError(r, w, err)
			return
		}

		logger.FromRequest(r).Debug().Str("user_id", user.UserID).Msg("request authenticated")
		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

func accessTokenFromRequest(r *http.Request) string {
	if token := cookieValue(r, accessTokenCookie); token != "" {
		return token
	}

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	return token
}
