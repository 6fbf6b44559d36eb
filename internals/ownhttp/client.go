// Package ownhttp builds the http client used for every request of the launcher.
package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request
var UserAgent = "minelaunch/dev"

// Options configure the client returned by New
type Options struct {
	// RequestsPerSecond limits how many requests are started per second. 0 disables the limit
	RequestsPerSecond float64
	// Transport is used instead of the default transport (tests)
	Transport http.RoundTripper
}

// NewTransport returns a transport with explicit timeouts. Body reads have no
// timeout so large downloads are not cut off.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   16,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
// and the optional request throttle
func New(opts ...Options) *http.Client {
	var o Options
	if len(opts) != 0 {
		o = opts[0]
	}

	var t http.RoundTripper = o.Transport
	if t == nil {
		t = NewTransport()
	}
	if o.RequestsPerSecond > 0 {
		burst := int(o.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		t = NewThrottleTransport(t, rate.NewLimiter(rate.Limit(o.RequestsPerSecond), burst))
	}
	return &http.Client{Transport: NewAddHeaderTransport(t)}
}
