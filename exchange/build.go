package exchange

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// buildRequest renders the only request this package sends.
func buildRequest(path, host string) []byte {
	return []byte(fmt.Sprintf("GET %s HTTP/1.0\r\nHost: %s\r\n\r\n", path, host))
}

func writeRequest(w io.Writer, path, host string) error {
	req := buildRequest(path, host)
	n, err := w.Write(req)
	if err != nil {
		return newError(KindWrite, err)
	}
	if n != len(req) {
		return newError(KindWrite, io.ErrShortWrite)
	}
	return nil
}

// asciiHost converts internationalized host names to their ASCII form.
// ASCII names are returned untouched.
func asciiHost(host string) (string, error) {
	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			a, err := idna.Lookup.ToASCII(host)
			if err != nil {
				return "", errors.Wrapf(err, "converting host '%s' to ASCII", host)
			}
			return a, nil
		}
	}
	return host, nil
}
