package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/server"
)

// UnauthorizedResponse is the body written for a rejected request.
type UnauthorizedResponse struct {
	Error string `json:"error"`
}

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth accepts only requests whose Authorization header is
// "Bearer <auth.api_token>". Rejections are answered here with 401 and never
// reach the error handler.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	expected := []byte(auth.server.Config.Auth.APIToken)

	return func(c echo.Context) error {
		start := time.Now()

		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if ok && len(expected) > 0 && subtle.ConstantTimeCompare([]byte(token), expected) == 1 {
			return next(c)
		}

		GetLogger(c).Error().
			Str("function", "RequireAuth").
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request().URL.Path).
			Dur("duration", time.Since(start)).
			Msgf("Unauthorized request to path: %s", c.Request().URL.Path)

		return c.JSON(http.StatusUnauthorized, UnauthorizedResponse{Error: "Unauthorized request"})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}
