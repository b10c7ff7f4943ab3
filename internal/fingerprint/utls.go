package fingerprint

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	utls "github.com/refraction-networking/utls"
)

// Profile represents a recognized TLS fingerprint profile. Scraped search
// engines fingerprint the ClientHello; presenting a browser profile keeps the
// TLS layer consistent with the rotated browser headers.
type Profile string

const (
	ProfileChrome  Profile = "chrome"
	ProfileFirefox Profile = "firefox"
	ProfileSafari  Profile = "safari"
	ProfileGo      Profile = "go"     // standard go TLS
	ProfileRandom  Profile = "random" // randomized uTLS profile
)

// Transport returns an http.RoundTripper configured with the specified
// TLS fingerprint profile. The "go" profile returns a plain http.Transport;
// anything else performs the handshake through utls.UClient.
// proxyFunc is optional. If provided, it configures the underlying transport's Proxy.
func Transport(p Profile, proxyFunc func(*http.Request) (*url.URL, error)) (http.RoundTripper, error) {
	if p == ProfileGo {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if proxyFunc != nil {
			transport.Proxy = proxyFunc
		}
		return transport, nil
	}

	var clientHelloID utls.ClientHelloID
	switch p {
	case ProfileChrome:
		clientHelloID = utls.HelloChrome_Auto
	case ProfileFirefox:
		clientHelloID = utls.HelloFirefox_Auto
	case ProfileSafari:
		clientHelloID = utls.HelloIOS_Auto
	case ProfileRandom:
		clientHelloID = utls.HelloRandomizedALPN
	default:
		return nil, fmt.Errorf("fingerprint: unknown profile %q", p)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyFunc != nil {
		transport.Proxy = proxyFunc
	}

	// DialTLSContext only applies to direct HTTPS connections. Requests that
	// go through a proxy (CONNECT tunnel) negotiate TLS with the transport's
	// standard dialer and carry the default Go fingerprint.
	transport.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		tcpConn, err := transport.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr // fallback if no port
		}

		uConn := utls.UClient(tcpConn, &utls.Config{ServerName: host}, clientHelloID)
		if err := uConn.HandshakeContext(ctx); err != nil {
			_ = tcpConn.Close()
			return nil, fmt.Errorf("utls handshake failed: %w", err)
		}

		return uConn, nil
	}

	return transport, nil
}
