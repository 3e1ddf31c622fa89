package http

import (
	"net/http"
	"strings"
	"time"

	"scholarhub/internal/domain/user"
	"scholarhub/internal/http/handlers"
	"scholarhub/internal/http/metrics"
	httpmw "scholarhub/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ProfileHandler      *handlers.ProfileHandler
	ScholarshipHandler  *handlers.ScholarshipHandler
	ApplicationHandler  *handlers.ApplicationHandler
	DocumentHandler     *handlers.DocumentHandler
	NotificationHandler *handlers.NotificationHandler
	WSHandler           *handlers.WSHandler
	MetricsHandler      *metrics.Handler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func pathSegments(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/scholarships":
			r.deps.ScholarshipHandler.ListActive(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/scholarships/") && len(pathSegments(path)) == 2:
			r.deps.ScholarshipHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/scholarships") || strings.HasPrefix(path, "/applications") ||
			strings.HasPrefix(path, "/students") || strings.HasPrefix(path, "/providers") ||
			strings.HasPrefix(path, "/documents") || strings.HasPrefix(path, "/notifications") ||
			path == "/ws" {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	segments := pathSegments(path)

	switch {
	case req.Method == http.MethodGet && path == "/ws":
		r.deps.WSHandler.Serve(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.Get)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.Upsert)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/scholarships":
		httpmw.RequireRole(user.RoleProvider, user.RoleAdmin)(http.HandlerFunc(r.deps.ScholarshipHandler.Create)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/scholarships/") && len(segments) == 2:
		httpmw.RequireRole(user.RoleProvider, user.RoleAdmin)(http.HandlerFunc(r.deps.ScholarshipHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/providers/scholarships":
		httpmw.RequireRole(user.RoleProvider)(http.HandlerFunc(r.deps.ScholarshipHandler.ListByProvider)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/scholarships/") && strings.HasSuffix(path, "/check-eligibility"):
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ScholarshipHandler.CheckEligibility)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/scholarships/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(user.RoleProvider, user.RoleAdmin)(http.HandlerFunc(r.deps.ApplicationHandler.ListByScholarship)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && len(segments) == 2:
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleProvider, user.RoleAdmin)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && len(segments) == 2:
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/documents"):
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.AttachDocument)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/comments"):
		r.deps.ApplicationHandler.AddComment(w, req)
		return
	case req.Method == http.MethodPost && path == "/documents":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.DocumentHandler.Upload)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/documents":
		r.deps.DocumentHandler.ListMine(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/documents/") && strings.HasSuffix(path, "/verify"):
		httpmw.RequireRole(user.RoleProvider, user.RoleAdmin)(http.HandlerFunc(r.deps.DocumentHandler.Verify)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/documents/") && len(segments) == 2:
		r.deps.DocumentHandler.Get(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/documents/") && len(segments) == 2:
		r.deps.DocumentHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/read-all":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	}

	http.NotFound(w, req)
}
