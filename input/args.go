package input

import (
	"io"

	"github.com/pkg/errors"
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseArgs interprets the positional arguments. Exactly one URL is
// expected; an unparseable URL is replaced by FallbackURL and reported on diag.
func ParseArgs(args []string, diag io.Writer) (*Input, error) {
	switch len(args) {
	case 0:
		return nil, newUsageError("URL is required")
	case 1:
	default:
		return nil, newUsageError("too many arguments: only one URL can be fetched")
	}

	in := Input{Raw: args[0]}
	in.URL, in.FellBack = parseOrFallback(in.Raw, diag)
	return &in, nil
}
