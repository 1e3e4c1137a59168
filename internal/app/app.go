package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/config"
	httpx "github.com/Uguee/accessvc/internal/http"
	"github.com/Uguee/accessvc/internal/http/handlers"
	"github.com/Uguee/accessvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(context.Background()); err != nil {
			return err
		}
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	accessH := handlers.NewAccessHandlers(c.AccessSvc)
	onboardingH := handlers.NewOnboardingHandlers(c.OnboardingSvc)
	policyH := &handlers.PolicyHandlers{PolicySvc: c.PolicySvc}

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	guard := middleware.NewAccessGuard(c.AccessSvc, c.SessionRepo)

	r := httpx.BuildRouter(authH, accessH, onboardingH, policyH, jwtMW, guard)

	seedPolicies(c.PolicySvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role/view grants on first start.
// Views absent from the policy table stay open to any fully-validated
// identity.
func seedPolicies(policySvc domain.PolicyService) {
	if len(policySvc.GetPolicies()) > 0 {
		return
	}
	defaults := []struct {
		role domain.Role
		view domain.View
	}{
		{domain.RoleAdmin, domain.ViewAdminHome},
		{domain.RoleInstitutionAdmin, domain.ViewInstitutionAdminHome},
		{domain.RoleDriver, domain.ViewDriverHome},
		{domain.RoleDriver, domain.ViewTripCreate},
		{domain.RoleDriver, domain.ViewVehicleRegistration},
	}
	for _, d := range defaults {
		if err := policySvc.AddPolicy(d.role, d.view); err != nil {
			log.Printf("POLICY_SEED_FAILED: role=%s view=%s error=%v", d.role, d.view, err)
			return
		}
	}
	log.Println("casbin: seeded default policies")
}
