package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/http/middleware"
)

// OnboardingHandlers handles the status-changing pipeline actions.
type OnboardingHandlers struct {
	onboardingSvc domain.OnboardingService
}

// NewOnboardingHandlers creates new onboarding handlers
func NewOnboardingHandlers(onboardingSvc domain.OnboardingService) *OnboardingHandlers {
	return &OnboardingHandlers{onboardingSvc: onboardingSvc}
}

// ApplyInstitutionRequest represents an institution application
type ApplyInstitutionRequest struct {
	InstitutionID     uint   `json:"institution_id" binding:"required"`
	InstitutionalRole string `json:"institutional_role" binding:"required"`
}

// ReviewRequest represents an accept/deny review of an applicant
type ReviewRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	Approve bool `json:"approve"`
}

// SubmitDocuments records that the caller submitted identity documents
func (h *OnboardingHandlers) SubmitDocuments(c *gin.Context) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.onboardingSvc.SubmitDocuments(c.Request.Context(), userID.(uint)); err != nil {
		if err == domain.ErrDocumentsAlreadySubmitted {
			c.JSON(http.StatusConflict, gin.H{"error": "Documents already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit documents"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"message": "Documents submitted, verification pending"},
	})
}

// ApplyInstitution records the caller's application to an institution
func (h *OnboardingHandlers) ApplyInstitution(c *gin.Context) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ApplyInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.onboardingSvc.ApplyToInstitution(c.Request.Context(), userID.(uint), req.InstitutionID, req.InstitutionalRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply to institution"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"message": "Application submitted, institution review pending"},
	})
}

// ApplyDriver records the caller's request for driver validation
func (h *OnboardingHandlers) ApplyDriver(c *gin.Context) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.onboardingSvc.ApplyForDriver(c.Request.Context(), userID.(uint)); err != nil {
		switch err {
		case domain.ErrRegistrationNotValidated:
			c.JSON(http.StatusConflict, gin.H{"error": "Institution registration must be validated first"})
		case domain.ErrDriverAlreadyRequested:
			c.JSON(http.StatusConflict, gin.H{"error": "Driver validation already requested"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request driver validation"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"message": "Driver request sent"},
	})
}

// ReviewRegistration handles an institution admin accepting or denying
// an applicant's registration.
func (h *OnboardingHandlers) ReviewRegistration(c *gin.Context) {
	reviewerID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.onboardingSvc.ReviewRegistration(c.Request.Context(), reviewerID.(uint), req.UserID, req.Approve); err != nil {
		if err == domain.ErrRegistrationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Registration reviewed"},
	})
}

// ReviewDriver handles an institution admin accepting or denying a
// driver request.
func (h *OnboardingHandlers) ReviewDriver(c *gin.Context) {
	reviewerID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.onboardingSvc.ReviewDriver(c.Request.Context(), reviewerID.(uint), req.UserID, req.Approve); err != nil {
		if err == domain.ErrDriverRequestNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review driver request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Driver request reviewed"},
	})
}
