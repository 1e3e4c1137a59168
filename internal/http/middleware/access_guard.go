package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
)

// AccessGuard enforces the onboarding pipeline decision at the route
// boundary. It runs after AuthMiddleware, resolves the caller's status
// snapshot and evaluates it against the view the route declares; the
// handler only ever executes on an allow. There is no window in which
// protected content is produced before the decision settles.
type AccessGuard struct {
	accessSvc   domain.AccessService
	sessionRepo domain.SessionRepository
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(accessSvc domain.AccessService, sessionRepo domain.SessionRepository) *AccessGuard {
	return &AccessGuard{
		accessSvc:   accessSvc,
		sessionRepo: sessionRepo,
	}
}

// Protect guards a route mapped to the given view. An empty role list
// means any fully-validated authenticated identity may enter.
func (g *AccessGuard) Protect(view domain.View, allowedRoles ...domain.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, exists := c.Get(CtxUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "redirect": domain.ViewLogin})
			c.Abort()
			return
		}

		decision, err := g.accessSvc.Check(c.Request.Context(), userID.(uint), view, allowedRoles)
		if err != nil {
			g.fail(c, err)
			return
		}

		if !decision.Allowed() {
			c.JSON(http.StatusForbidden, gin.H{
				"allow":    false,
				"redirect": decision.Target,
				"reason":   decision.Reason,
			})
			c.Abort()
			return
		}

		c.Next()
	})
}

// fail maps resolution errors fail-closed: credential problems destroy
// the session and send the caller to login, transient store problems
// get a retry affordance. Access is never granted on uncertainty.
func (g *AccessGuard) fail(c *gin.Context, err error) {
	if domain.IsAuthFailure(err) {
		if sessionID, ok := c.Get(CtxSessionID); ok {
			_ = g.sessionRepo.Delete(c.Request.Context(), sessionID.(string))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication no longer valid", "redirect": domain.ViewLogin})
		c.Abort()
		return
	}

	if errors.Is(err, domain.ErrNetworkFailure) || errors.Is(err, domain.ErrMalformedResponse) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Status resolution unavailable", "retry": true})
		c.Abort()
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Access check failed"})
	c.Abort()
}
