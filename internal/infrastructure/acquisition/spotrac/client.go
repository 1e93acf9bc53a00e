package spotrac

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/resilience"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
)

const (
	defaultBaseURL = "https://www.spotrac.com/nfl"
	defaultTimeout = 30 * time.Second
)

var errSpotracTransient = crerr.New("spotrac transient failure")

// exportPath maps a source kind to its CSV export endpoint.
var exportPath = map[rawbatch.Kind]string{
	rawbatch.KindPlayerDeadMoney: "/dead-money/export",
	rawbatch.KindTeamCap:         "/cap-tracker/export",
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig

	// now is overridable for tests; batches are stamped with it.
	Now func() time.Time
}

// Client pulls CSV snapshot exports straight from the cap-tracking site and
// hands them over as raw batches. It never interprets the rows beyond the
// header; typing is downstream work.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		now:            now,
	}
}

func (c *Client) ListBatches(ctx context.Context, kind rawbatch.Kind, periods []int) ([]rawbatch.Batch, error) {
	path, ok := exportPath[kind]
	if !ok {
		return nil, fmt.Errorf("no export endpoint for kind %q", kind)
	}

	out := make([]rawbatch.Batch, 0, len(periods))
	for _, period := range periods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s%s/%d.csv", c.baseURL, path, period)
		body, found, err := c.fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s period=%d: %w", kind, period, err)
		}
		if !found {
			// The site has no export for this period; the loader records it
			// as a missing period.
			continue
		}

		batch, err := parseBatch(body, kind, period, url, c.now().UTC())
		if err != nil {
			return nil, fmt.Errorf("parse %s period=%d: %w", kind, period, err)
		}
		out = append(out, batch)
	}

	c.logger.InfoContext(ctx, "spotrac batches fetched",
		"kind", string(kind),
		"requested_periods", len(periods),
		"batches", len(out),
	)
	return out, nil
}

// fetch GETs one export URL with retries. The bool is false when the site has
// no document at the URL.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, bool, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "spotrac circuit breaker rejected request", "state", c.breaker.State())
			return nil, false, fmt.Errorf("%w: snapshot source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, found, err := c.execute(ctx, url)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errSpotracTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return body, found, err
}

func (c *Client) execute(ctx context.Context, url string) ([]byte, bool, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body, found, err := c.doRequest(url)
		if err == nil {
			return body, found, nil
		}
		lastErr = err
		if !crerr.Is(err, errSpotracTransient) {
			return nil, false, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "spotrac request failed", "url", url, "error", lastErr)
	return nil, false, lastErr
}

func (c *Client) doRequest(url string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv")

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, false, crerr.Wrapf(errSpotracTransient, "send request: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, false, nil
	case status >= 200 && status < 300:
		// The response buffer is recycled on release; copy the body out
		// through the pool.
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if _, err := buf.Write(resp.Body()); err != nil {
			return nil, false, crerr.Wrapf(errSpotracTransient, "read response body: %v", err)
		}
		return append([]byte(nil), buf.B...), true, nil
	case isRetryableStatus(status):
		return nil, false, crerr.Wrapf(errSpotracTransient, "source status=%d", status)
	default:
		return nil, false, fmt.Errorf("source status=%d", status)
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func parseBatch(body []byte, kind rawbatch.Kind, period int, source string, retrievedAt time.Time) (rawbatch.Batch, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return rawbatch.Batch{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return rawbatch.Batch{}, fmt.Errorf("export has no header row")
	}

	columns := make([]string, len(records[0]))
	for i, column := range records[0] {
		columns[i] = strings.ToLower(strings.TrimSpace(column))
	}

	return rawbatch.Batch{
		Kind:        kind,
		Period:      period,
		Source:      source,
		Columns:     columns,
		Rows:        records[1:],
		RetrievedAt: retrievedAt,
	}, nil
}
