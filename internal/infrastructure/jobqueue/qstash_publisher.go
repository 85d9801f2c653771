package jobqueue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/resilience"
)

const (
	internalJobTokenHeader = "X-Internal-Job-Token"
	maxErrorBodyBytes      = 4096
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher schedules HTTP callbacks into this service through
// Upstash QStash. QStash forwards the internal job token so the callback
// passes RequireInternalJobToken.
type QStashPublisher struct {
	client           *http.Client
	publishBaseURL   string
	targetBaseURL    string
	token            string
	retries          int
	internalJobToken string
	breaker          *resilience.CircuitBreaker
	logger           *logging.Logger
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) (*QStashPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	publishBaseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, crerr.New("QSTASH_TOKEN is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &QStashPublisher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		publishBaseURL:   publishBaseURL,
		targetBaseURL:    targetBaseURL,
		token:            strings.TrimSpace(cfg.Token),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		breaker:          resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:           logger,
	}, nil
}

// Enqueue asks QStash to POST payload to path on this service after delay.
// Repeated calls with the same deduplicationID are collapsed by QStash.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}
	if payload == nil {
		payload = map[string]any{}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	if err := sonic.ConfigDefault.NewEncoder(body).Encode(payload); err != nil {
		return crerr.Wrap(err, "encode job payload")
	}

	targetURL := p.targetBaseURL + path
	publishURL := p.publishBaseURL + "/v2/publish/" + targetURL

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.delay", formatDelay(delay)),
			attribute.String("qstash.deduplication_id", deduplicationID),
		)
	}

	err := p.breaker.Do(func() error {
		return p.publish(ctx, publishURL, body.Bytes(), delay, deduplicationID)
	})
	if err != nil {
		p.logger.WarnContext(ctx, "qstash publish failed", "path", path, "error", err)
		return fmt.Errorf("publish job path=%s: %w", path, err)
	}

	p.logger.InfoContext(ctx, "qstash job published",
		"path", path,
		"delay", formatDelay(delay),
		"deduplication_id", deduplicationID,
	)
	return nil
}

func (p *QStashPublisher) publish(ctx context.Context, publishURL string, body []byte, delay time.Duration, deduplicationID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", formatDelay(delay))
	}
	if id := strings.TrimSpace(deduplicationID); id != "" {
		req.Header.Set("Upstash-Deduplication-Id", id)
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-"+internalJobTokenHeader, p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "send qstash request"), errQStashTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	statusErr := crerr.Newf("qstash responded status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	if isRetryableStatus(resp.StatusCode) {
		return crerr.Mark(statusErr, errQStashTransient)
	}
	return statusErr
}

// IsTransient reports whether a publish failure is worth retrying later.
func IsTransient(err error) bool {
	return crerr.Is(err, errQStashTransient) || crerr.Is(err, resilience.ErrCircuitOpen)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func formatDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	return strconv.Itoa(int(delay.Round(time.Second).Seconds())) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme %q", candidate, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}
