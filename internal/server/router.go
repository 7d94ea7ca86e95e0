package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rockymountnc/licensetracker/internal/cache"
	"github.com/rockymountnc/licensetracker/internal/handlers"
	"github.com/rockymountnc/licensetracker/internal/logging"
	"github.com/rockymountnc/licensetracker/internal/metrics"
	"github.com/rockymountnc/licensetracker/internal/middleware"
)

// Handlers bundles the route targets for the router.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Software *handlers.SoftwareHandler
	Comment  *handlers.CommentHandler
	Catalog  *handlers.CatalogHandler
}

// NewRouter constructs the API mux. List GETs run through the response
// cache; their mutating counterparts invalidate the matching prefix.
func NewRouter(h Handlers, authMW *middleware.AuthMiddleware, respCache *cache.ResponseCache, logger *logging.Logger) http.Handler {
	mux := http.NewServeMux()

	cached := func(next http.HandlerFunc) http.HandlerFunc {
		return respCache.Middleware(next).ServeHTTP
	}

	// Authentication endpoints. Logout is public: revocation is best-effort
	// and acknowledges success whether or not a live token was presented.
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", authMW.RequireAuth(h.Auth.Me))

	// Software license records
	mux.HandleFunc("GET /api/v1/software", authMW.RequireAuth(cached(h.Software.List)))
	mux.HandleFunc("GET /api/v1/software/{id}", authMW.RequireAuth(h.Software.Get))
	mux.HandleFunc("POST /api/v1/software", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/software", h.Software.Create)))
	mux.HandleFunc("PUT /api/v1/software/{id}", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/software", h.Software.Update)))
	mux.HandleFunc("DELETE /api/v1/software/{id}", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/software", h.Software.Delete)))
	mux.HandleFunc("GET /api/v1/software/{id}/comments", authMW.RequireAuth(h.Comment.ListForSoftware))

	// Comments
	mux.HandleFunc("GET /api/v1/comments", authMW.RequireAuth(cached(h.Comment.List)))
	mux.HandleFunc("GET /api/v1/comments/{id}", authMW.RequireAuth(h.Comment.Get))
	mux.HandleFunc("POST /api/v1/comments", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/comments", h.Comment.Create)))
	mux.HandleFunc("PUT /api/v1/comments/{id}", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/comments", h.Comment.Update)))
	mux.HandleFunc("PATCH /api/v1/comments/{id}", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/comments", h.Comment.Patch)))
	mux.HandleFunc("DELETE /api/v1/comments/{id}", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/comments", h.Comment.Delete)))

	// Catalog reference tables
	mux.HandleFunc("GET /api/v1/departments", authMW.RequireAuth(cached(h.Catalog.ListDepartments)))
	mux.HandleFunc("POST /api/v1/departments", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/departments", h.Catalog.CreateDepartment)))
	mux.HandleFunc("GET /api/v1/vendors", authMW.RequireAuth(cached(h.Catalog.ListVendors)))
	mux.HandleFunc("POST /api/v1/vendors", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/vendors", h.Catalog.CreateVendor)))
	mux.HandleFunc("GET /api/v1/divisions", authMW.RequireAuth(cached(h.Catalog.ListDivisions)))
	mux.HandleFunc("POST /api/v1/divisions", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/divisions", h.Catalog.CreateDivision)))
	mux.HandleFunc("GET /api/v1/gl-accounts", authMW.RequireAuth(cached(h.Catalog.ListGlAccounts)))
	mux.HandleFunc("POST /api/v1/gl-accounts", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/gl-accounts", h.Catalog.CreateGlAccount)))
	mux.HandleFunc("GET /api/v1/software-to-operate", authMW.RequireAuth(cached(h.Catalog.ListSoftwareToOperate)))
	mux.HandleFunc("POST /api/v1/software-to-operate", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/software-to-operate", h.Catalog.CreateSoftwareToOperate)))
	mux.HandleFunc("GET /api/v1/hardware-to-operate", authMW.RequireAuth(cached(h.Catalog.ListHardwareToOperate)))
	mux.HandleFunc("POST /api/v1/hardware-to-operate", authMW.RequireGroup("Admin", respCache.InvalidateOnWrite("/api/v1/hardware-to-operate", h.Catalog.CreateHardwareToOperate)))
	mux.HandleFunc("GET /api/v1/contacts", authMW.RequireAuth(cached(h.Catalog.ListContactPeople)))
	mux.HandleFunc("GET /api/v1/contacts/{id}", authMW.RequireAuth(h.Catalog.GetContactPerson))
	mux.HandleFunc("POST /api/v1/contacts", authMW.RequireAuth(respCache.InvalidateOnWrite("/api/v1/contacts", h.Catalog.CreateContactPerson)))

	// Operational endpoints (public)
	mux.HandleFunc("GET /healthz", h.Auth.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.RequestID(logging.AccessLog(logger, metrics.Instrument(mux)))
}
