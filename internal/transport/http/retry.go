package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	utilnet "k8s.io/apimachinery/pkg/util/net"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
)

// retryTransport retries round trips that fail before any response is
// received. HTTP status codes are never retried and there is no delay
// between attempts. Only https requests are retried.
type retryTransport struct {
	next       http.RoundTripper
	maxRetries int
	log        *slog.Logger
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" || t.maxRetries == 0 {
		return t.next.RoundTrip(req)
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		// The body cannot be replayed.
		return t.next.RoundTrip(req)
	}

	var (
		resp    *http.Response
		attempt int
	)
	backoff := wait.Backoff{Steps: t.maxRetries + 1}

	err := retry.OnError(backoff, isTransient, func() error {
		attempt++
		r, err := rewind(req, attempt)
		if err != nil {
			return err
		}
		resp, err = t.next.RoundTrip(r)
		if err != nil && isTransient(err) && req.Context().Err() == nil {
			t.log.Debug("transport failure, retrying",
				"url", req.URL.Redacted(),
				"attempt", attempt,
				"max_retries", t.maxRetries,
				"error", err,
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// rewind returns the request to send on the given attempt. The first
// attempt uses req itself; later ones get a fresh body.
func rewind(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 || req.GetBody == nil {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	r := req.Clone(req.Context())
	r.Body = body
	return r, nil
}

// isTransient reports whether err is a connection-level failure worth
// another attempt. Cancellation and deadlines are final.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return utilnet.IsConnectionReset(err) ||
		utilnet.IsConnectionRefused(err) ||
		utilnet.IsProbableEOF(err)
}
