package exchange

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Bodies framed by these headers are not decoded.
var unsupportedHeaders = []string{"transfer-encoding", "content-encoding"}

// StatusLine is the first line of a response split at its first two
// spaces. Missing parts are left empty.
type StatusLine struct {
	Version     string
	Status      string
	Explanation string

	// complete is set when the line had both separating spaces.
	complete bool
}

// StatusCode returns Status as a number, or 0 if it is not one.
func (s StatusLine) StatusCode() int {
	code, err := strconv.Atoi(s.Status)
	if err != nil {
		return 0
	}
	return code
}

// Compliant reports whether the line looks like "HTTP/x.y NNN reason".
// The reason may be empty but its separating space may not.
func (s StatusLine) Compliant() bool {
	return s.complete && strings.HasPrefix(s.Version, "HTTP/") && len(s.Status) == 3 && s.StatusCode() >= 100
}

// Summary renders the line the way Request reports it.
func (s StatusLine) Summary() string {
	return fmt.Sprintf("version: %s, status: %s, explanation: %s", s.Version, s.Status, s.Explanation)
}

// Header maps lowercased field names to the last value seen.
type Header map[string]string

func (h Header) Get(name string) string {
	return h[strings.ToLower(name)]
}

type Response struct {
	StatusLine
	Header Header
	Body   []byte

	size int
}

// Empty reports whether the server closed the connection without sending
// anything.
func (r *Response) Empty() bool {
	return r.size == 0
}

func (r *Response) Text() string {
	return string(r.Body)
}

func parseResponse(raw []byte) (*Response, error) {
	resp := &Response{Header: Header{}, size: len(raw)}
	if len(raw) == 0 {
		return resp, nil
	}

	br := bufio.NewReader(bytes.NewReader(raw))
	line, _ := readLine(br)
	resp.StatusLine = parseStatusLine(line)

	for {
		line, err := readLine(br)
		if line == "" {
			break
		}
		if name, value, ok := strings.Cut(line, ":"); ok {
			resp.Header[strings.ToLower(name)] = strings.TrimLeft(value, " \t")
		}
		if err != nil {
			break
		}
	}

	for _, name := range unsupportedHeaders {
		if _, ok := resp.Header[name]; ok {
			return nil, newError(KindUnsupportedEncoding, errors.New(name))
		}
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, newError(KindRead, err)
	}
	resp.Body = body
	return resp, nil
}

func parseStatusLine(line string) StatusLine {
	version, rest, _ := strings.Cut(line, " ")
	status, explanation, complete := strings.Cut(rest, " ")
	return StatusLine{
		Version:     version,
		Status:      status,
		Explanation: explanation,
		complete:    complete,
	}
}

// readLine reads up to and including '\n' and strips the line terminator.
// At the end of input it returns what is left together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}
