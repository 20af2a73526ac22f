package handlers

import (
	"net/http"
)

// Health reports liveness plus the model this instance generates with and the
// number of creations currently held in memory.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"model":   a.Config.GeminiModel,
		"history": a.History.Len(),
	})
}
