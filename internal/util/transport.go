package util

import (
	"crypto/tls"
	"net/http"
)

// NewTransport builds the transport used for all outbound calls. Proxy
// settings come from the environment; insecure skips TLS verification for
// self-signed endpoints.
func NewTransport(insecure bool) *http.Transport {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}
