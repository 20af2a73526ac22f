package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/http/handlers"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.I18N(),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/images", func(r chi.Router) {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
		r.Post("/generate", app.ImagesGenerate)
		r.Post("/edit", app.ImagesEdit)
	})

	r.Route("/v1/history", func(r chi.Router) {
		r.Get("/", app.HistoryList)
		r.Get("/download", app.HistoryDownloadAll)
		r.Delete("/", app.HistoryClear)
		r.Get("/{id}", app.HistoryGet)
		r.Get("/{id}/download", app.HistoryDownload)
		r.Delete("/{id}", app.HistoryDelete)
	})

	// Static front-end bundle, when present.
	if dir := app.Config.WebDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		}
	}

	return r
}
