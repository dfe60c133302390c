package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/handler"
	"lawfirm-cms/internal/middleware"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Blogs         *handler.BlogHandler
	PracticeAreas *handler.PracticeAreaHandler
	Team          *handler.TeamHandler
	Pages         *handler.PageHandler
	Subscribers   *handler.SubscriberHandler
	Inquiries     *handler.InquiryHandler
	Uploads       *handler.UploadHandler
	Audit         *handler.AuditHandler
}

type Options struct {
	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int
	RequestTimeout   time.Duration
	UploadDir        string
}

// New assembles the route tree. Public reads sit next to the auth endpoints;
// everything mutating lives under /api/v1/admin behind the token middleware.
func New(h Handlers, auth *middleware.AuthMiddleware, opts Options) http.Handler {
	r := chi.NewRouter()

	rateLimit := middleware.NewRateLimitMiddleware(opts.RateLimitRPM, opts.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimit.Handler)

	r.Get("/health", h.Health.Health)

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/refresh", h.Auth.Refresh)
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Get("/blogs", h.Blogs.ListPublic)
		r.Get("/blogs/{slug}", h.Blogs.GetBySlug)
		r.Get("/services", h.PracticeAreas.List)
		r.Get("/services/{slug}", h.PracticeAreas.GetBySlug)
		r.Get("/team", h.Team.List)
		r.Get("/pages/{key}", h.Pages.Get)
		r.Post("/subscribers", h.Subscribers.Subscribe)
		r.Post("/inquiries", h.Inquiries.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAuth)

			editors := auth.RequireRoles("admin", "editor")
			admins := auth.RequireRoles("admin")

			r.Group(func(r chi.Router) {
				r.Use(editors)

				r.Get("/blogs", h.Blogs.ListAdmin)
				r.Post("/blogs", h.Blogs.Create)
				r.Get("/blogs/{id}", h.Blogs.GetByID)
				r.Put("/blogs/{id}", h.Blogs.Update)
				r.Delete("/blogs/{id}", h.Blogs.Delete)

				r.Post("/services", h.PracticeAreas.Create)
				r.Get("/services/{id}", h.PracticeAreas.GetByID)
				r.Put("/services/{id}", h.PracticeAreas.Update)
				r.Delete("/services/{id}", h.PracticeAreas.Delete)

				r.Post("/team", h.Team.Create)
				r.Get("/team/{id}", h.Team.GetByID)
				r.Put("/team/{id}", h.Team.Update)
				r.Delete("/team/{id}", h.Team.Delete)

				r.Put("/pages/{key}", h.Pages.Update)

				r.Get("/inquiries", h.Inquiries.List)
				r.Get("/inquiries/{id}", h.Inquiries.Get)
				r.Put("/inquiries/{id}/status", h.Inquiries.UpdateStatus)
				r.Delete("/inquiries/{id}", h.Inquiries.Delete)

				r.Post("/uploads", h.Uploads.Upload)
				r.Delete("/uploads", h.Uploads.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(admins)

				r.Get("/subscribers", h.Subscribers.List)
				r.Delete("/subscribers/{id}", h.Subscribers.Delete)

				r.Get("/audit", h.Audit.List)
			})
		})
	})

	return r
}
