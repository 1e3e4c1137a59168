package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/http/middleware"
	"github.com/Uguee/accessvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func accessRouter(access *mocks.MockAccessService) *gin.Engine {
	router := gin.New()
	h := NewAccessHandlers(access)
	authed := router.Group("/", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(42))
		c.Next()
	})
	authed.GET("/access/resolve", h.Resolve)
	authed.GET("/access/decide", h.Decide)
	return router
}

func TestAccessHandlers_Resolve(t *testing.T) {
	access := mocks.NewMockAccessService()
	var forced bool
	access.ResolveFunc = func(ctx context.Context, userID uint, force bool) (*domain.StatusSnapshot, error) {
		forced = force
		return &domain.StatusSnapshot{
			UserID:            userID,
			Role:              domain.RolePassenger,
			HasDocuments:      true,
			HasInstitution:    true,
			InstitutionID:     7,
			InstitutionStatus: domain.RegistrationPending,
			DriverStatus:      domain.DriverNone,
			ResolvedAt:        time.Now(),
		}, nil
	}
	router := accessRouter(access)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/resolve", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if forced {
		t.Error("expected a plain resolve to use the cache")
	}

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("undecodable body: %v", err)
	}
	if body.Data["has_documents"] != true || body.Data["institution_status"] != "pending" {
		t.Errorf("unexpected body: %v", body.Data)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/resolve?force=true", nil))
	if !forced {
		t.Error("expected ?force=true to bypass the cache")
	}
}

func TestAccessHandlers_Decide(t *testing.T) {
	access := mocks.NewMockAccessService()
	access.CheckFunc = func(ctx context.Context, userID uint, view domain.View, allowedRoles []domain.Role) (domain.Decision, error) {
		if view == domain.ViewTripSearch {
			return domain.Decision{Kind: domain.DecisionAllow}, nil
		}
		return domain.Decision{
			Kind:   domain.DecisionRedirect,
			Target: domain.ViewBecomeDriver,
			Reason: domain.ReasonDriverRequired,
		}, nil
	}
	router := accessRouter(access)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/decide?view=trip_search", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data["allow"] != true {
		t.Errorf("expected allow, got %v", body.Data)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/decide?view=trip_create", nil))
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data["allow"] != false || body.Data["redirect"] != "become_driver" {
		t.Errorf("expected a driver redirect, got %v", body.Data)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/decide", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a view, got %d", w.Code)
	}
}

func TestAccessHandlers_ResolveErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"auth failure", domain.ErrUserNotFound, http.StatusUnauthorized},
		{"store outage", domain.ErrNetworkFailure, http.StatusServiceUnavailable},
		{"malformed response", domain.ErrMalformedResponse, http.StatusServiceUnavailable},
		{"anything else", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := mocks.NewMockAccessService()
			access.ResolveFunc = func(ctx context.Context, userID uint, force bool) (*domain.StatusSnapshot, error) {
				return nil, tt.err
			}
			router := accessRouter(access)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/resolve", nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
