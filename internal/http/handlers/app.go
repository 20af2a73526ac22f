package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/genai"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/history"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/infra"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/middleware"
)

// Generator is the slice of the genai client the handlers need. Tests inject
// stubs through it.
type Generator interface {
	TextToImage(ctx context.Context, prompt string) (*genai.Result, error)
	EditImage(ctx context.Context, prompt string, sources []genai.Blob) (*genai.Result, error)
}

type App struct {
	Config  *infra.Config
	Logger  infra.Logger
	Images  Generator
	History *history.Store
}

func NewApp(cfg *infra.Config, logger infra.Logger, images Generator, hist *history.Store) *App {
	return &App{Config: cfg, Logger: logger, Images: images, History: hist}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// error writes a localized error response. code identifies the failure class
// for programmatic clients; the message is resolved against the request locale.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorBody{
		Error:   http.StatusText(status),
		Code:    code,
		Message: localizedMessage(locale, code),
	})
}
