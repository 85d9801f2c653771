package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "blank header", header: "   ", wantStatus: http.StatusUnauthorized},
		{name: "too long", header: strings.Repeat("u", maxUserIDLength+1), wantStatus: http.StatusUnauthorized},
		{name: "trimmed user", header: "  user-1 ", wantStatus: http.StatusOK, wantUser: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = userIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/matches/1/squad", nil)
			if tt.header != "" {
				req.Header.Set(userIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			RequireUser(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if gotUser != tt.wantUser {
				t.Fatalf("user=%q want=%q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestRequireAdminToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: "", provided: "anything", wantStatus: http.StatusServiceUnavailable},
		{name: "missing token", configured: "secret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "guess", wantStatus: http.StatusUnauthorized},
		{name: "valid token", configured: "secret", provided: "secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/admin/teams", nil)
			if tt.provided != "" {
				req.Header.Set(adminTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireAdminToken(tt.configured, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: "/HEALTHZ", want: false},
		{path: "/readyz", want: false},
		{path: "/v1/matches", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: "", provided: "anything", wantStatus: http.StatusServiceUnavailable},
		{name: "missing token", configured: "secret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "guess", wantStatus: http.StatusUnauthorized},
		{name: "valid token", configured: "secret", provided: " secret ", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/score-match", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
		})
	}
}
