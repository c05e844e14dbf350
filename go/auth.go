package ezserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	userports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

const sessionCookie = "session_token"

var errMissingToken = errors.New("missing session token")

// bearerToken extracts the session token from the Authorization header,
// falling back to the session cookie.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

// authenticate resolves the acting user from the request token. It writes
// the error response itself so handlers can return early on !ok.
func authenticate(c *gin.Context, users userports.Service) (*userdomain.User, bool) {
	token := bearerToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, errMissingToken)
		return nil, false
	}
	user, err := users.ResolveSession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, userports.ErrSessionNotFound) || errors.Is(err, userports.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, err)
			return nil, false
		}
		respondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return user, true
}

// requireRole rejects users whose role does not match. Admins pass every
// role gate.
func requireRole(c *gin.Context, user *userdomain.User, role userdomain.Role) bool {
	if user.Role == role || user.Role == userdomain.RoleAdmin {
		return true
	}
	respondError(c, http.StatusForbidden, errors.New("operation not allowed for role "+string(user.Role)))
	return false
}
