package exchange

import (
	"context"
	"crypto/x509"
	"io"
	"net"
	"time"
)

type Options struct {
	// Timeout bounds dialing and the whole exchange on the connection.
	// Zero means no timeout.
	Timeout time.Duration
	// MaxResponseSize caps the number of bytes read from the server.
	// Zero means unlimited.
	MaxResponseSize uint64
	// CAFile names a PEM bundle trusted in addition to the system roots.
	CAFile string

	// RootCAs replaces the system roots when non-nil.
	RootCAs *x509.CertPool
	// Resolver defaults to net.DefaultResolver.
	Resolver Resolver
	// Dialer defaults to a net.Dialer.
	Dialer Dialer
	// Stdout receives the status summary written by Request.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}
