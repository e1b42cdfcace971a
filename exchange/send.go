package exchange

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math"
	"net"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/nojima/httpfetch/input"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ocsp"
)

const readChunkSize = 4096

// Request fetches u with a default Client.
func Request(u *input.URL) (string, error) {
	client, err := NewClient(&Options{})
	if err != nil {
		return "", err
	}
	return client.Request(context.Background(), u)
}

// Request fetches u, reports its status line on the client's stdout and
// returns the body as text.
func (c *Client) Request(ctx context.Context, u *input.URL) (string, error) {
	resp, err := c.Fetch(ctx, u)
	if err != nil {
		return "", err
	}
	if err := WriteSummary(c.stdout, resp); err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// WriteSummary writes the one-line status summary reported by Request.
// Nothing is written for an empty response.
func WriteSummary(w io.Writer, resp *Response) error {
	if resp.Empty() {
		return nil
	}
	_, err := fmt.Fprintln(w, resp.Summary())
	return errors.Wrap(err, "writing status summary")
}

// Fetch performs a single GET exchange for u over a fresh connection and
// returns the parsed response. The connection is closed before Fetch returns.
func (c *Client) Fetch(ctx context.Context, u *input.URL) (*Response, error) {
	host, err := asciiHost(u.Host)
	if err != nil {
		return nil, newError(KindResolve, err)
	}

	conn, err := c.connect(ctx, host, u.Port)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := c.deadline(ctx); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, newError(KindConnect, err)
		}
	}

	if u.IsSecure() {
		tlsConn, err := c.handshake(ctx, conn, host)
		if err != nil {
			return nil, err
		}
		defer tlsConn.Close()
		conn = tlsConn
	}

	if err := writeRequest(conn, u.Path, host); err != nil {
		return nil, err
	}

	raw, err := c.readAll(conn)
	if err != nil {
		return nil, err
	}
	return parseResponse(raw)
}

// connect dials the resolved addresses of host in order and returns the
// first connection that succeeds.
func (c *Client) connect(ctx context.Context, host string, port int) (net.Conn, error) {
	addrs, err := c.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, newError(KindResolve, err)
	}
	if len(addrs) == 0 {
		return nil, newError(KindResolve, errors.Errorf("no addresses for '%s'", host))
	}

	var lastErr error
	for _, addr := range addrs {
		conn, err := c.dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr.String(), strconv.Itoa(port)))
		if err != nil {
			lastErr = err
			continue
		}
		return conn, nil
	}
	return nil, newError(KindConnect, errors.Wrapf(lastErr, "all %d addresses attempted", len(addrs)))
}

// deadline combines the client timeout with the context deadline.
func (c *Client) deadline(ctx context.Context) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if c.timeout > 0 {
		d := time.Now().Add(c.timeout)
		if !ok || d.Before(deadline) {
			deadline, ok = d, true
		}
	}
	return deadline, ok
}

func (c *Client) handshake(ctx context.Context, conn net.Conn, host string) (*tls.Conn, error) {
	config := &tls.Config{
		ServerName: host,
		RootCAs:    c.rootCAs,
	}
	tlsConn := tls.Client(conn, config)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		var verr *tls.CertificateVerificationError
		if errors.As(err, &verr) {
			return nil, newError(KindVerify, err)
		}
		return nil, newError(KindHandshake, err)
	}
	if err := verifyConnection(tlsConn.ConnectionState(), host); err != nil {
		return nil, newError(KindVerify, err)
	}
	return tlsConn, nil
}

// verifyConnection re-checks the outcome of certificate verification after
// the handshake has completed.
func verifyConnection(state tls.ConnectionState, host string) error {
	if !state.HandshakeComplete {
		return errors.New("handshake not complete")
	}
	if len(state.PeerCertificates) == 0 || len(state.VerifiedChains) == 0 {
		return errors.New("no verified certificate chain")
	}
	if err := state.PeerCertificates[0].VerifyHostname(host); err != nil {
		return err
	}
	return checkStapledOCSP(state)
}

// checkStapledOCSP rejects certificates whose stapled OCSP response says
// they are revoked. Staples that cannot be parsed are ignored.
func checkStapledOCSP(state tls.ConnectionState) error {
	if len(state.OCSPResponse) == 0 {
		return nil
	}
	chain := state.VerifiedChains[0]
	if len(chain) < 2 {
		return nil
	}
	resp, err := ocsp.ParseResponseForCert(state.OCSPResponse, chain[0], chain[1])
	if err != nil {
		return nil
	}
	if resp.Status == ocsp.Revoked {
		return errors.Errorf("certificate revoked at %s", resp.RevokedAt.Format(time.RFC3339))
	}
	return nil
}

// readAll reads until the peer closes the stream.
func (c *Client) readAll(r io.Reader) ([]byte, error) {
	limited := c.maxResponseSize > 0 && c.maxResponseSize < math.MaxInt64
	if limited {
		r = io.LimitReader(r, int64(c.maxResponseSize)+1)
	}

	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, newError(KindRead, err)
		}
	}

	if limited && uint64(buf.Len()) > c.maxResponseSize {
		return nil, newError(KindTooLarge, errors.Errorf("more than %s received", bytefmt.ByteSize(c.maxResponseSize)))
	}
	return buf.Bytes(), nil
}
