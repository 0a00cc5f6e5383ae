package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/pkg/jwt"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/store"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxSession   = "session"
	CtxSessionID = "session_id"
	CtxUserID    = "user_id"
	CtxRole      = "role"
)

// Auth validates the bearer token and rehydrates the session record it
// points at. A valid token whose session has been signed out (or whose
// record was discarded as corrupt) is still unauthorized.
func Auth(jwtService *jwt.Service, sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtService)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
			c.Abort()
			return
		}

		sess, err := sessions.Load(c.Request.Context(), claims.SessionID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "SESSION_LOAD_FAILED", "Could not load session")
			c.Abort()
			return
		}
		if sess == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired or signed out")
			c.Abort()
			return
		}

		c.Set(CtxSession, sess)
		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxUserID, sess.User.ID)
		c.Set(CtxRole, string(sess.User.Role))

		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}
	claims, err := jwtService.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// SessionFromContext returns the rehydrated session, nil when the
// route did not pass through Auth.
func SessionFromContext(c *gin.Context) *store.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*store.Session)
	return sess
}
