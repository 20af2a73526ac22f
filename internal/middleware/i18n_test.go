package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func resolveLocale(t *testing.T, headers map[string]string) string {
	t.Helper()
	var got string
	handler := I18N()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestI18NLocaleDetection(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "no headers defaults to english", headers: nil, want: "en"},
		{name: "x-locale wins", headers: map[string]string{"X-Locale": "es", "Accept-Language": "id"}, want: "es"},
		{name: "accept-language fallback", headers: map[string]string{"Accept-Language": "id-ID,id;q=0.9"}, want: "id"},
		{name: "regional variant maps to base", headers: map[string]string{"Accept-Language": "es-MX"}, want: "es"},
		{name: "quality ordering respected", headers: map[string]string{"Accept-Language": "fr;q=0.9,es;q=0.8"}, want: "es"},
		{name: "unsupported language falls back", headers: map[string]string{"Accept-Language": "zz"}, want: "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveLocale(t, tc.headers); got != tc.want {
				t.Fatalf("locale = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocaleFromContextDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LocaleFromContext(req.Context()); got != "en" {
		t.Fatalf("locale = %q, want en", got)
	}
}
