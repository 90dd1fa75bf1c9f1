package googletrans

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
)

// headerTransport injects the session's default headers into every request
// before delegating to the underlying RoundTripper.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// newTransport builds the session transport: default headers on every
// request, TLS certificate verification disabled, and per-scheme proxy
// routing when a proxy map is configured.
func newTransport(proxies map[string]string, headers map[string]string) (http.RoundTripper, error) {
	base := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	if len(proxies) > 0 {
		parsed := make(map[string]*url.URL, len(proxies))
		for scheme, raw := range proxies {
			u, err := url.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("parse %s proxy: %w", scheme, err)
			}
			parsed[scheme] = u
		}
		base.Proxy = func(req *http.Request) (*url.URL, error) {
			return parsed[req.URL.Scheme], nil
		}
	}
	return &headerTransport{base: base, headers: headers}, nil
}
