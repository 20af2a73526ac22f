package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Options{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeImageResponse(t *testing.T, w http.ResponseWriter, data []byte, mime string) {
	t.Helper()
	resp := geminiGenerateContentResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{
				InlineData: &geminiInlineData{
					MimeType: mime,
					Data:     base64.StdEncoding.EncodeToString(data),
				},
			}}},
			FinishReason: "STOP",
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestTextToImage(t *testing.T) {
	var captured geminiGenerateContentRequest
	var gotPath, gotKey string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		writeImageResponse(t, w, []byte{0xAA, 0xBB}, "image/png")
	})

	result, err := client.TextToImage(context.Background(), "a banana wearing sunglasses")
	if err != nil {
		t.Fatalf("text to image: %v", err)
	}
	if result.MIMEType != "image/png" || len(result.Data) != 2 {
		t.Fatalf("unexpected result: mime=%q bytes=%d", result.MIMEType, len(result.Data))
	}

	if gotPath != "/models/gemini-2.5-flash-image-preview:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected payload shape: %+v", captured)
	}
	if captured.Contents[0].Parts[0].Text != "a banana wearing sunglasses" {
		t.Fatalf("prompt = %q", captured.Contents[0].Parts[0].Text)
	}
	if captured.GenerationConfig == nil ||
		strings.Join(captured.GenerationConfig.ResponseModalities, ",") != "IMAGE,TEXT" {
		t.Fatalf("response modalities not requested: %+v", captured.GenerationConfig)
	}
}

func TestEditImagePartOrder(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		writeImageResponse(t, w, []byte{0x01}, "image/jpeg")
	})

	sources := []Blob{
		{MIMEType: "image/png", Data: []byte{0x01, 0x02}},
		{MIMEType: "image/jpeg", Data: []byte{0x03}},
	}
	if _, err := client.EditImage(context.Background(), "swap the background", sources); err != nil {
		t.Fatalf("edit image: %v", err)
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" {
		t.Fatalf("first part should be the png source: %+v", parts[0])
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/jpeg" {
		t.Fatalf("second part should be the jpeg source: %+v", parts[1])
	}
	if parts[2].Text != "swap the background" {
		t.Fatalf("instruction should come last, got %+v", parts[2])
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[0].InlineData.Data)
	if err != nil {
		t.Fatalf("inline data not base64: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("inline data = %d bytes, want 2", len(decoded))
	}
}

func TestGenerateValidation(t *testing.T) {
	client, err := NewClient(Options{APIKey: "test"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.TextToImage(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank prompt")
	}
	if _, err := client.EditImage(context.Background(), "prompt", nil); err == nil {
		t.Fatalf("expected error for missing sources")
	}
	if _, err := client.EditImage(context.Background(), "prompt", []Blob{{}}); err == nil {
		t.Fatalf("expected error for empty source blob")
	}

	client, err = NewClient(Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.TextToImage(context.Background(), "prompt"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	})

	_, err := client.TextToImage(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error")
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		t.Fatalf("transport failures must not be GenerationErrors: %v", err)
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("error should carry the API message: %v", err)
	}
}

func TestGenerateSafetyBlock(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiGenerateContentResponse{
			PromptFeedback: &geminiPromptFeedback{BlockReason: "PROHIBITED_CONTENT"},
		})
	})

	_, err := client.TextToImage(context.Background(), "prompt")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Cause != CauseSafetyBlocked {
		t.Fatalf("cause = %q, want safety_blocked", genErr.Cause)
	}
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.TextToImage(ctx, "prompt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
