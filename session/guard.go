package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/models"
)

const contextKey = "session"

// Guard redirects to redirectTo unless the current session exists and
// carries one of the allowed roles. It runs before the protected
// handler renders anything, so no privileged content leaks.
func Guard(redirectTo string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := Get()
		if !ok || !roleAllowed(sess.Role, allowedRoles) {
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}
		c.Set(contextKey, sess)
		c.Next()
	}
}

// FromContext returns the session stashed by Guard.
func FromContext(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(contextKey)
	if !exists {
		return models.Session{}, false
	}
	sess, ok := value.(models.Session)
	return sess, ok
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
