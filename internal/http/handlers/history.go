package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/history"
	"github.com/Mooshieblob1/PWA-NanoBanana/pkg/zip"

	"github.com/go-chi/chi/v5"
)

type historyItem struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Prompt    string    `json:"prompt"`
	MIMEType  string    `json:"mime_type"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryList returns creation metadata, newest first. Image bytes are only
// returned by the single-entry endpoints to keep the listing light.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	entries := a.History.List()
	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			ID:        e.ID,
			Mode:      string(e.Mode),
			Prompt:    e.Prompt,
			MIMEType:  e.MIMEType,
			Bytes:     len(e.Data),
			CreatedAt: e.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) HistoryGet(w http.ResponseWriter, r *http.Request) {
	entry, ok := a.historyEntry(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, creationFromEntry(entry))
}

// HistoryDownload streams the raw image bytes of one creation.
func (a *App) HistoryDownload(w http.ResponseWriter, r *http.Request) {
	entry, ok := a.historyEntry(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", entry.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=creation-%s%s", entry.ID, zip.ExtensionForMIME(entry.MIMEType)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.Data)
}

// HistoryDownloadAll bundles every creation into a zip archive.
func (a *App) HistoryDownloadAll(w http.ResponseWriter, r *http.Request) {
	entries := a.History.List()
	if len(entries) == 0 {
		a.error(w, r, http.StatusNotFound, "not_found")
		return
	}
	assets := make([]zip.Asset, 0, len(entries))
	for _, e := range entries {
		assets = append(assets, zip.Asset{Filename: "creation-" + e.ID, MIME: e.MIMEType, Data: e.Data})
	}
	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=creations.zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.History.Delete(id); err != nil {
		a.error(w, r, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) HistoryClear(w http.ResponseWriter, r *http.Request) {
	a.History.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) historyEntry(w http.ResponseWriter, r *http.Request) (history.Entry, bool) {
	id := chi.URLParam(r, "id")
	entry, err := a.History.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		a.error(w, r, http.StatusNotFound, "not_found")
		return history.Entry{}, false
	}
	return entry, true
}
