package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport delays requests so no more than the limiter allows are started
type ThrottleTransport struct {
	Next    http.RoundTripper
	Limiter *rate.Limiter
}

// RoundTrip waits for a token. A cancelled request context aborts the wait
func (t *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.Next.RoundTrip(req)
}

// NewThrottleTransport wraps next (http.DefaultTransport if nil)
func NewThrottleTransport(next http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &ThrottleTransport{Next: next, Limiter: limiter}
}
