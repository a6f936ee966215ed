package webhook

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/transfer-market/internal/platform/eventbus"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("event webhook transient failure")

const maxLoggedBody = 4096

type PublisherConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Publisher forwards domain events to an external HTTP endpoint as JSON.
type Publisher struct {
	client  *http.Client
	url     string
	token   string
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	circuit bool
	now     func() time.Time
}

type envelope struct {
	Event  string         `json:"event"`
	SentAt time.Time      `json:"sentAt"`
	Data   eventbus.Event `json:"data"`
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("event_webhook")

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("event webhook circuit state changed", "from", string(from), "to", string(to))
	})

	return &Publisher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:     strings.TrimSpace(cfg.URL),
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger,
		breaker: breaker,
		circuit: breakerCfg.Enabled,
		now:     time.Now,
	}
}

// Handle delivers event to the webhook. It matches eventbus.Handler.
func (p *Publisher) Handle(ctx context.Context, event eventbus.Event) error {
	if event == nil {
		return crerr.New("event is required")
	}
	if !p.circuit {
		return p.deliver(ctx, event)
	}
	if err := p.breaker.Allow(); err != nil {
		p.logger.WarnContext(ctx, "event webhook circuit breaker rejected request", "event", event.EventName(), "state", string(p.breaker.State()))
		return fmt.Errorf("event webhook is temporarily unavailable: %w", err)
	}

	err := p.deliver(ctx, event)
	p.recordCircuitResult(err)
	return err
}

func (p *Publisher) deliver(ctx context.Context, event eventbus.Event) error {
	targetURL, err := validateHTTPURL(p.url)
	if err != nil {
		return crerr.Wrap(err, "invalid EVENT_WEBHOOK_URL")
	}

	name := event.EventName()
	body, err := sonic.Marshal(envelope{Event: name, SentAt: p.now().UTC(), Data: event})
	if err != nil {
		return crerr.Wrapf(err, "marshal %s event", name)
	}
	bodyText := truncateForLog(string(body), maxLoggedBody)
	curlPreview := buildCurlPreview(targetURL, name, bodyText, p.token != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", targetURL),
			attribute.String("webhook.event", name),
			attribute.String("webhook.request_body", bodyText),
		)
	}
	p.logger.DebugContext(ctx, "event webhook request", "event", name, "url", targetURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create event webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Name", name)
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s event url=%s: %v", errWebhookTransient, name, targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf(
				"%w: post %s event status=%d url=%s body=%s",
				errWebhookTransient,
				name,
				resp.StatusCode,
				targetURL,
				strings.TrimSpace(string(raw)),
			)
		}
		return crerr.Newf("post %s event status=%d url=%s body=%s", name, resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	}

	p.logger.InfoContext(ctx, "event webhook delivered", "event", name, "status_code", resp.StatusCode)
	return nil
}

func (p *Publisher) recordCircuitResult(err error) {
	if err == nil || !isCircuitFailure(err) {
		p.breaker.RecordSuccess()
		return
	}
	p.breaker.RecordFailure()
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errWebhookTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func buildCurlPreview(targetURL, eventName, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendFlagHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(targetURL))
	appendFlagHeader("Content-Type: application/json")
	appendFlagHeader("X-Event-Name: " + eventName)
	if withToken {
		appendFlagHeader("Authorization: Bearer ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
