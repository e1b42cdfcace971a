package input

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FallbackURL is fetched instead of any URL that cannot be parsed.
const FallbackURL = "https://browser.engineering"

const schemeDelimiter = "://"

type Scheme string

const (
	HTTP  Scheme = "http"
	HTTPS Scheme = "https"
)

// DefaultPort returns the port used when the URL does not carry one.
func (s Scheme) DefaultPort() int {
	if s == HTTPS {
		return 443
	}
	return 80
}

func (s Scheme) supported() bool {
	return s == HTTP || s == HTTPS
}

// URL is a parsed http or https URL. Fields are set only by Parse.
type URL struct {
	Scheme Scheme
	Host   string
	Port   int
	Path   string
}

// ParseError describes why a raw URL was rejected.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func newParseError(raw, reason string) error {
	return errors.WithStack(&ParseError{URL: raw, Reason: reason})
}

// Parse splits raw into scheme, host, port and path.
//
// The accepted form is scheme://host[:port][/path] where scheme is http or
// https. The path defaults to "/" and the port to the scheme default.
func Parse(raw string) (*URL, error) {
	// Whitespace and control bytes would end up inside the request line.
	if strings.IndexFunc(raw, isUnsafe) != -1 {
		return nil, newParseError(raw, "Invalid url")
	}

	i := strings.Index(raw, schemeDelimiter)
	if i == -1 {
		return nil, newParseError(raw, "Invalid url")
	}

	scheme := Scheme(raw[:i])
	if !scheme.supported() {
		return nil, newParseError(raw, "Unsupported scheme")
	}

	rest := raw[i+len(schemeDelimiter):]
	if !strings.Contains(rest, "/") {
		rest += "/"
	}
	slash := strings.Index(rest, "/")
	host, path := rest[:slash], rest[slash:]

	port := scheme.DefaultPort()
	if colon := strings.Index(host, ":"); colon != -1 {
		p, err := strconv.Atoi(host[colon+1:])
		if err != nil || p < 1 || p > 65535 {
			return nil, newParseError(raw, "Invalid port")
		}
		host, port = host[:colon], p
	}
	if host == "" {
		return nil, newParseError(raw, "Empty host")
	}

	return &URL{
		Scheme: scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

func isUnsafe(r rune) bool {
	return r <= ' ' || r == 0x7f
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) *URL {
	u, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("input: cannot parse %q: %v", raw, err))
	}
	return u
}

// ParseOrFallback parses raw, or reports the problem on diag and returns the
// parsed FallbackURL instead.
func ParseOrFallback(raw string, diag io.Writer) *URL {
	u, _ := parseOrFallback(raw, diag)
	return u
}

// parseOrFallback is ParseOrFallback that also reports whether it fell back.
func parseOrFallback(raw string, diag io.Writer) (*URL, bool) {
	u, err := Parse(raw)
	if err == nil {
		return u, false
	}
	fmt.Fprintln(diag, "Malformed URL found, falling back to the WBE home page.")
	fmt.Fprintf(diag, "  URL was: %s\n", raw)
	fmt.Fprintf(diag, "  Warn: %v\n", err)
	return MustParse(FallbackURL), true
}

func (u *URL) IsSecure() bool {
	return u.Scheme == HTTPS
}

// Address returns host:port suitable for dialing.
func (u *URL) Address() string {
	return net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
}

func (u *URL) String() string {
	if u.Port == u.Scheme.DefaultPort() {
		return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, u.Path)
	}
	return fmt.Sprintf("%s://%s:%d%s", u.Scheme, u.Host, u.Port, u.Path)
}
