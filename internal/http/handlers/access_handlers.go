package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/http/middleware"
)

// AccessHandlers exposes snapshot resolution and access decisions to
// the client applications. Both clients call these instead of reading
// status rows, so they cannot diverge on the rules.
type AccessHandlers struct {
	accessSvc domain.AccessService
}

// NewAccessHandlers creates new access handlers
func NewAccessHandlers(accessSvc domain.AccessService) *AccessHandlers {
	return &AccessHandlers{accessSvc: accessSvc}
}

// Resolve returns the caller's status snapshot. ?force=true bypasses
// the cache; clients use it right after a status-changing action.
func (h *AccessHandlers) Resolve(c *gin.Context) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	force := c.Query("force") == "true"

	snap, err := h.accessSvc.Resolve(c.Request.Context(), userID.(uint), force)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"has_documents":      snap.HasDocuments,
			"has_institution":    snap.HasInstitution,
			"institution_id":     snap.InstitutionID,
			"institution_status": snap.InstitutionStatus,
			"driver_status":      snap.DriverStatus,
			"role":               snap.Role,
			"resolved_at":        snap.ResolvedAt,
		},
	})
}

// Decide evaluates the caller against a requested view and returns the
// allow-or-redirect decision the clients must follow.
func (h *AccessHandlers) Decide(c *gin.Context) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	view := domain.View(c.Query("view"))
	if view == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view query parameter required"})
		return
	}

	decision, err := h.accessSvc.Check(c.Request.Context(), userID.(uint), view, nil)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{"allow": decision.Allowed()}
	if !decision.Allowed() {
		body["redirect"] = decision.Target
		body["reason"] = decision.Reason
	}
	c.JSON(http.StatusOK, gin.H{"data": body})
}

func (h *AccessHandlers) fail(c *gin.Context, err error) {
	switch {
	case domain.IsAuthFailure(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication no longer valid", "redirect": domain.ViewLogin})
	case errors.Is(err, domain.ErrNetworkFailure), errors.Is(err, domain.ErrMalformedResponse):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Status resolution unavailable", "retry": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Resolution failed"})
	}
}
