package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"computer-club/internal/handler"    // import the handlers that implement business logic
	"computer-club/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the protected
// /v1/me endpoint.  Unauthenticated operations live under /v1/auth,
// protected endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN"))
	auth.GET("/me", a.Me)
}

// RegisterAdmin registers the club management API.  Every route requires
// a valid access token with the ADMIN role.  The response cache runs
// after the auth middleware so a cached response is only ever replayed
// to a request that already passed authentication; registering it on
// the Echo instance instead would let a cache hit answer before auth
// runs.  A nil cache disables caching.
func RegisterAdmin(
	e *echo.Echo,
	jwtSecret string,
	cache echo.MiddlewareFunc,
	computers *handler.ComputerHandler,
	clients *handler.ClientHandler,
	tariffs *handler.TariffHandler,
	sessions *handler.SessionHandler,
	payments *handler.PaymentHandler,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	if cache != nil {
		g.Use(cache)
	}

	// Workstations.
	g.GET("/computers", computers.List)
	g.POST("/computers", computers.Create)
	g.GET("/computers/:id", computers.Get)
	g.PATCH("/computers/:id/status", computers.UpdateStatus)
	g.DELETE("/computers/:id", computers.Delete)

	// Clients.  Literal routes are registered before /clients/:id so the
	// Echo router does not swallow them as id values.
	g.GET("/clients", clients.List)
	g.POST("/clients", clients.Create)
	g.GET("/clients/vip", clients.VIP)
	g.GET("/clients/new", clients.New)
	g.GET("/clients/:id", clients.Get)
	g.POST("/clients/:id/balance", clients.Balance)
	g.PATCH("/clients/:id/discount", clients.Discount)

	// Tariffs.
	g.GET("/tariffs", tariffs.List)
	g.POST("/tariffs", tariffs.Create)
	g.GET("/tariffs/current", tariffs.Current)
	g.GET("/tariffs/:id", tariffs.Get)
	g.DELETE("/tariffs/:id", tariffs.Delete)

	// Sessions.
	g.GET("/sessions", sessions.List)
	g.POST("/sessions", sessions.Start)
	g.GET("/sessions/active", sessions.Active)
	g.GET("/sessions/:id", sessions.Get)
	g.POST("/sessions/:id/end", sessions.End)
	g.POST("/sessions/:id/force-end", sessions.ForceEnd)

	// Payments and reporting.
	g.GET("/payments", payments.List)
	g.GET("/payments/stats", payments.Stats)
	g.GET("/payments/revenue", payments.Revenue)
}
