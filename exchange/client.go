package exchange

import (
	"crypto/x509"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Client performs one-shot HTTP/1.0 GET exchanges. It holds no connection
// state between calls and is safe for concurrent use.
type Client struct {
	timeout         time.Duration
	maxResponseSize uint64
	rootCAs         *x509.CertPool
	resolver        Resolver
	dialer          Dialer
	stdout          io.Writer
}

func NewClient(options *Options) (*Client, error) {
	client := Client{
		timeout:         options.Timeout,
		maxResponseSize: options.MaxResponseSize,
		rootCAs:         options.RootCAs,
		resolver:        options.Resolver,
		dialer:          options.Dialer,
		stdout:          options.Stdout,
	}
	if client.resolver == nil {
		client.resolver = net.DefaultResolver
	}
	if client.dialer == nil {
		client.dialer = &net.Dialer{Timeout: options.Timeout}
	}
	if client.stdout == nil {
		client.stdout = os.Stdout
	}

	if options.CAFile != "" {
		pool, err := loadCAFile(options.CAFile, options.RootCAs)
		if err != nil {
			return nil, newError(KindTLSConfig, err)
		}
		client.rootCAs = pool
	}

	return &client, nil
}

func loadCAFile(path string, base *x509.CertPool) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading CA file '%s'", path)
	}

	var pool *x509.CertPool
	if base != nil {
		pool = base.Clone()
	} else if pool, err = x509.SystemCertPool(); err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(data) {
		return nil, errors.Errorf("no PEM certificates found in '%s'", path)
	}
	return pool, nil
}
