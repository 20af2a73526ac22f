package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/genai"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/history"
	"github.com/Mooshieblob1/PWA-NanoBanana/internal/middleware"
)

// maxSourceImages bounds how many reference images an edit request may carry,
// matching what the image model accepts.
const maxSourceImages = 3

type imageGenerateRequest struct {
	Prompt string `json:"prompt"`
}

// imagePayload accepts either a browser-style data URL or a raw
// {mime_type, data} pair with base64 data.
type imagePayload struct {
	DataURL  string `json:"data_url,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"`
}

type imageEditRequest struct {
	Prompt string         `json:"prompt"`
	Images []imagePayload `json:"images"`
}

type creationResponse struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Prompt    string    `json:"prompt"`
	MIMEType  string    `json:"mime_type"`
	Data      string    `json:"data"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func creationFromEntry(e history.Entry) creationResponse {
	return creationResponse{
		ID:        e.ID,
		Mode:      string(e.Mode),
		Prompt:    e.Prompt,
		MIMEType:  e.MIMEType,
		Data:      base64.StdEncoding.EncodeToString(e.Data),
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
}

func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		a.error(w, r, http.StatusBadRequest, "prompt_required")
		return
	}

	result, err := a.Images.TextToImage(r.Context(), prompt)
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	entry := a.History.Add(history.ModeGenerate, prompt, result.MIMEType, result.Data, result.Text)
	a.Logger.Info().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("mode", "generate").
		Str("mime_type", result.MIMEType).
		Int("bytes", len(result.Data)).
		Msg("image generated")
	a.json(w, http.StatusOK, creationFromEntry(entry))
}

func (a *App) ImagesEdit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceImages*encodedSizeLimit(a.Config.MaxImageBytes)+(1<<20))
	var req imageEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		a.error(w, r, http.StatusBadRequest, "prompt_required")
		return
	}
	if len(req.Images) == 0 {
		a.error(w, r, http.StatusBadRequest, "image_required")
		return
	}
	if len(req.Images) > maxSourceImages {
		a.error(w, r, http.StatusBadRequest, "too_many_images")
		return
	}

	sources := make([]genai.Blob, 0, len(req.Images))
	for _, img := range req.Images {
		blob, err := decodeImagePayload(img)
		if err != nil {
			a.error(w, r, http.StatusBadRequest, "invalid_image")
			return
		}
		if int64(len(blob.Data)) > a.Config.MaxImageBytes {
			a.error(w, r, http.StatusRequestEntityTooLarge, "image_too_large")
			return
		}
		sources = append(sources, blob)
	}

	result, err := a.Images.EditImage(r.Context(), prompt, sources)
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	entry := a.History.Add(history.ModeEdit, prompt, result.MIMEType, result.Data, result.Text)
	a.Logger.Info().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("mode", "edit").
		Int("sources", len(sources)).
		Str("mime_type", result.MIMEType).
		Int("bytes", len(result.Data)).
		Msg("image edited")
	a.json(w, http.StatusOK, creationFromEntry(entry))
}

func decodeImagePayload(img imagePayload) (genai.Blob, error) {
	if img.DataURL != "" {
		return genai.ParseDataURL(img.DataURL)
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return genai.Blob{}, err
	}
	return genai.NewBlob(data, img.MIMEType)
}

// generationError translates client failures into HTTP responses. Classified
// failures keep their cause; everything else is an upstream problem.
func (a *App) generationError(w http.ResponseWriter, r *http.Request, err error) {
	rid := middleware.RequestIDFromContext(r.Context())
	locale := middleware.LocaleFromContext(r.Context())

	var genErr *genai.GenerationError
	if errors.As(err, &genErr) {
		status := http.StatusBadGateway
		code := string(genErr.Cause)
		if genErr.Cause == genai.CauseSafetyBlocked {
			status = http.StatusUnprocessableEntity
		}
		a.Logger.Warn().
			Str("request_id", rid).
			Str("cause", code).
			Str("reason", genErr.Reason).
			Msg("generation failed")
		a.json(w, status, errorBody{
			Error:   http.StatusText(status),
			Code:    code,
			Message: localizedMessage(locale, code),
			Reason:  genErr.Reason,
			Detail:  genErr.Detail,
		})
		return
	}

	a.Logger.Error().Str("request_id", rid).Err(err).Msg("image service call failed")
	a.error(w, r, http.StatusBadGateway, "upstream_error")
}

// encodedSizeLimit converts a raw byte budget into its base64 wire size.
func encodedSizeLimit(rawBytes int64) int64 {
	return (rawBytes*4)/3 + 4
}
