package social

import (
	"context"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mikekeda/athletes/internal/platform/resilience"
	"github.com/mikekeda/athletes/internal/usecase"
)

// errNoContent marks a non-200 answer. It is logged and treated as no data.
var errNoContent = crerr.New("social api returned no content")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "social api status " + http.StatusText(e.code)
}

func (e *statusError) Unwrap() error { return errNoContent }

func defaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// getJSON runs one GET through the breaker and decodes the body into target.
// Only transport failures and 5xx answers count against the breaker.
func getJSON(ctx context.Context, httpClient *http.Client, breaker *resilience.CircuitBreaker, req *http.Request, target any) error {
	err := breaker.Do(func() error {
		resp, err := httpClient.Do(req.WithContext(ctx))
		if err != nil {
			return crerr.Wrap(err, "send request")
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return &statusError{code: resp.StatusCode}
		}
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return crerr.Wrap(err, "read response")
		}
		if err := sonic.Unmarshal(raw, target); err != nil {
			return crerr.Wrap(err, "decode response")
		}
		return nil
	}, func(err error) bool {
		var status *statusError
		if crerr.As(err, &status) {
			return status.code >= http.StatusInternalServerError
		}
		return true
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return crerr.Wrap(usecase.ErrDependencyUnavailable, "social api circuit open")
	}
	return err
}
