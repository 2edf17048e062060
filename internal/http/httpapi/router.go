package httpapi

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"contentplanner/internal/http/handlers"
	"contentplanner/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	// RateLimitPerMin caps render requests per client IP. Zero disables it.
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	// StoragePath is the root the generated/ tree is served from. Empty
	// disables static serving.
	StoragePath string
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		r.Post("/v1/posts/{postID}/render", app.RenderPost)
		r.Post("/v1/posts/{postID}/render-jobs", app.EnqueueRender)
		r.Post("/v1/visuals/render", app.RenderVisual)
	})
	r.Get("/v1/render-jobs/{jobID}", app.RenderJobStatus)
	r.Get("/v1/posts/{postID}/assets", app.ListPostAssets)
	r.Get("/v1/posts/{postID}/export", app.ExportPost)

	if opts.StoragePath != "" {
		dir := http.Dir(filepath.Join(opts.StoragePath, "generated"))
		r.Handle("/generated/*", http.StripPrefix("/generated/", noDirListing(http.FileServer(dir))))
	}

	return r
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		next.ServeHTTP(w, r)
	})
}
