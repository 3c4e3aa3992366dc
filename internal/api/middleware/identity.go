package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"general-transcriber/internal/api/errors"
	"general-transcriber/internal/app/model"
)

const (
	// ViewerKey is the gin context key holding the model.Viewer
	ViewerKey = "viewer"

	UserEmailHeader = "X-User-Email"
	UserRoleHeader  = "X-User-Role"
)

// AdminChecker reports whether an email belongs to an administrator
type AdminChecker func(email string) bool

// Identity resolves the caller from headers set by the authenticating proxy.
// Requests without an email are rejected with 401. X-User-Role is ignored
// unless trustRoleHeader is set, since any client can send it.
func Identity(isAdmin AdminChecker, trustRoleHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(UserEmailHeader))
		if email == "" {
			HandleError(c, errors.NewUnauthorizedError("Not logged in"))
			return
		}

		admin := trustRoleHeader && strings.EqualFold(c.GetHeader(UserRoleHeader), "admin")
		if !admin && isAdmin != nil {
			admin = isAdmin(email)
		}

		c.Set(ViewerKey, model.Viewer{Email: email, Admin: admin})
		c.Next()
	}
}

// CurrentViewer returns the viewer stored by Identity
func CurrentViewer(c *gin.Context) (model.Viewer, bool) {
	v, ok := c.Get(ViewerKey)
	if !ok {
		return model.Viewer{}, false
	}
	viewer, ok := v.(model.Viewer)
	return viewer, ok
}
