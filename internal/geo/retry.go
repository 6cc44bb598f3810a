package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// doWithRetry executes an HTTP request, retrying transient failures
// (network errors, 429, 5xx) with exponential backoff. makeReq is called for
// every attempt so request bodies are rebuilt rather than re-read.
//
// Non-retryable status codes are returned as-is; callers decide what a 404
// means for their provider.
func doWithRetry(ctx context.Context, client *http.Client, makeReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := makeReq(ctx)
		if err != nil {
			return err
		}

		r, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}

		if r.StatusCode == http.StatusTooManyRequests || r.StatusCode >= 500 {
			body, _ := io.ReadAll(io.LimitReader(r.Body, 512))
			r.Body.Close()
			return retry.RetryableError(fmt.Errorf("status %d: %s", r.StatusCode, strings.TrimSpace(string(body))))
		}

		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
