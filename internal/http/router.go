package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/http/handlers"
	"github.com/Uguee/accessvc/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Routes under the guard declare
// the view they stand for; the guard resolves and decides before any
// handler runs. The trip, vehicle and profile routes are the consumer
// side of the contract: they only ever see requests the decision
// allowed.
func BuildRouter(
	ah *handlers.AuthHandlers,
	ach *handlers.AccessHandlers,
	oh *handlers.OnboardingHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	guard *middleware.AccessGuard,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	authed := r.Group("/").Use(jwtmw.WithJWT())
	authed.GET("/auth/me", ah.Me)
	authed.POST("/auth/logout", ah.Logout)

	// Resolution and decision endpoints are authenticated but not
	// guarded: a user mid-pipeline must be able to ask where to go.
	authed.GET("/access/resolve", ach.Resolve)
	authed.GET("/access/decide", ach.Decide)

	// Onboarding actions are reachable before validation completes,
	// otherwise nobody could ever clear the pipeline.
	authed.POST("/onboarding/documents", oh.SubmitDocuments)
	authed.POST("/onboarding/institution", oh.ApplyInstitution)
	authed.POST("/onboarding/driver", oh.ApplyDriver)

	review := r.Group("/review").Use(
		jwtmw.WithJWT(),
		guard.Protect(domain.ViewInstitutionAdminHome, domain.RoleInstitutionAdmin),
	)
	review.POST("/registration", oh.ReviewRegistration)
	review.POST("/driver", oh.ReviewDriver)

	trips := r.Group("/trips").Use(jwtmw.WithJWT())
	trips.GET("", guard.Protect(domain.ViewTripSearch), stub("trip search"))
	trips.POST("", guard.Protect(domain.ViewTripCreate), stub("trip created"))

	vehicles := r.Group("/vehicles").Use(jwtmw.WithJWT())
	vehicles.POST("", guard.Protect(domain.ViewVehicleRegistration), stub("vehicle registered"))

	profile := r.Group("/profile").Use(jwtmw.WithJWT())
	profile.GET("", guard.Protect(domain.ViewProfile), stub("profile"))

	adm := r.Group("/admin").Use(
		jwtmw.WithJWT(),
		guard.Protect(domain.ViewAdminHome, domain.RoleAdmin),
	)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}

// stub stands in for the downstream subsystems (trip forms, vehicle
// capture, profile screens) that consume the access decision.
func stub(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"data": gin.H{"message": message}})
	}
}
