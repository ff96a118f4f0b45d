package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/guard"
	"github.com/charlesng35/assetdesk/internal/session"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

const CtxHasSessionKey = "hasSession"

// RouteGuard redirects dashboard navigations according to routes. It looks only at
// whether the access-token cookie is present; validity is the backend's concern.
func RouteGuard(routes guard.Routes) gin.HandlerFunc {
	log := logger.WithModule("edge")
	return func(c *gin.Context) {
		token, err := c.Cookie(session.AccessTokenCookie)
		hasSession := err == nil && token != ""
		c.Set(CtxHasSessionKey, hasSession)

		target := c.Request.URL.RequestURI()
		decision := routes.Decide(target, hasSession)
		switch decision.Action {
		case guard.RedirectLogin, guard.RedirectHome:
			log.Debug("route redirected",
				zap.String("path", c.Request.URL.Path),
				zap.String("action", string(decision.Action)),
				zap.String("location", decision.Location),
			)
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}
