package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/domain"
	"serenityspa/internal/pkg/jwt"
	"serenityspa/internal/store"
)

// Guard protects role-restricted views. Unlike Auth it never answers
// with a bare 401/403: an anonymous visitor is sent to the sign-in
// page, and a signed-in user whose role is outside the allow-list is
// sent to that role's own home view instead of a forbidden page.
func Guard(jwtService *jwt.Service, sessions *store.SessionStore, allowed ...domain.Role) gin.HandlerFunc {
	allowSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtService)
		if !ok {
			redirect(c, "/signin")
			return
		}

		sess, err := sessions.Load(c.Request.Context(), claims.SessionID)
		if err != nil || sess == nil {
			redirect(c, "/signin")
			return
		}

		if len(allowSet) > 0 {
			if _, ok := allowSet[sess.User.Role]; !ok {
				redirect(c, sess.User.Role.HomePath())
				return
			}
		}

		c.Set(CtxSession, sess)
		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxUserID, sess.User.ID)
		c.Set(CtxRole, string(sess.User.Role))

		c.Next()
	}
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
	c.Abort()
}
