package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
)

// newFingerprintTransport makes transport presenting a randomized TLS ClientHello.
// No ALPN is offered, so servers stay on http/1.1 which the transport can speak over a utls conn.
func newFingerprintTransport(timeout time.Duration, blockPrivate bool) *http.Transport {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	if blockPrivate {
		dialer.Control = privateDialControl
	}
	return &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("split %s: %w", addr, err)
			}
			uconn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloRandomizedNoALPN)
			if err := uconn.HandshakeContext(ctx); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("tls handshake with %s: %w", host, err)
			}
			return uconn, nil
		},
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
}
