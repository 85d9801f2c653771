package jobqueue

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/resilience"
)

func TestQStashPublisher_Enqueue(t *testing.T) {
	type captured struct {
		path    string
		headers http.Header
		body    map[string]any
	}
	got := make(chan captured, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		got <- captured{path: r.URL.Path, headers: r.Header.Clone(), body: body}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.example.com/",
		Retries:          3,
		InternalJobToken: "job-secret",
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	err = publisher.Enqueue(context.Background(), "v1/internal/jobs/score-match", map[string]any{"match_id": 1}, 90*time.Second, "score-match-1")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	req := <-got
	if req.path != "/v2/publish/https://api.example.com/v1/internal/jobs/score-match" {
		t.Fatalf("unexpected publish path %q", req.path)
	}
	wantHeaders := map[string]string{
		"Authorization":                        "Bearer qstash-token",
		"Upstash-Method":                       http.MethodPost,
		"Upstash-Retries":                      "3",
		"Upstash-Delay":                        "90s",
		"Upstash-Deduplication-Id":             "score-match-1",
		"Upstash-Forward-X-Internal-Job-Token": "job-secret",
	}
	for key, want := range wantHeaders {
		if value := req.headers.Get(key); value != want {
			t.Fatalf("header %s: got=%q want=%q", key, value, want)
		}
	}
	if req.body["match_id"] != float64(1) {
		t.Fatalf("unexpected body %+v", req.body)
	}
}

func TestQStashPublisher_StatusClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{name: "server error", status: http.StatusBadGateway, wantTransient: true},
		{name: "rate limited", status: http.StatusTooManyRequests, wantTransient: true},
		{name: "bad request", status: http.StatusBadRequest, wantTransient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			publisher, err := NewQStashPublisher(QStashPublisherConfig{
				BaseURL:        server.URL,
				Token:          "token",
				TargetBaseURL:  "https://api.example.com",
				CircuitBreaker: resilience.CircuitBreakerConfig{FailureThreshold: 10},
			}, logging.NewNop())
			if err != nil {
				t.Fatalf("new publisher: %v", err)
			}

			err = publisher.Enqueue(context.Background(), "/jobs", nil, 0, "")
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}
			if IsTransient(err) != tt.wantTransient {
				t.Fatalf("IsTransient=%v want=%v (%v)", IsTransient(err), tt.wantTransient, err)
			}
		})
	}
}

func TestNewQStashPublisher_ValidatesConfig(t *testing.T) {
	tests := []QStashPublisherConfig{
		{BaseURL: "", Token: "t", TargetBaseURL: "https://api.example.com"},
		{BaseURL: "ftp://qstash", Token: "t", TargetBaseURL: "https://api.example.com"},
		{BaseURL: "https://qstash.upstash.io", Token: "t", TargetBaseURL: "https://"},
		{BaseURL: "https://qstash.upstash.io", Token: " ", TargetBaseURL: "https://api.example.com"},
	}
	for i, cfg := range tests {
		if _, err := NewQStashPublisher(cfg, nil); err == nil {
			t.Fatalf("case %d: expected config error", i)
		}
	}
}

func TestFormatDelay(t *testing.T) {
	if got := formatDelay(0); got != "0s" {
		t.Fatalf("got %q", got)
	}
	if got := formatDelay(1500 * time.Millisecond); got != "2s" {
		t.Fatalf("got %q", got)
	}
}
