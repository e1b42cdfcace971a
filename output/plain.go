package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/nojima/httpfetch/exchange"
	"github.com/pkg/errors"
)

type PlainPrinter struct {
	writer io.Writer
}

func NewPlainPrinter(writer io.Writer) Printer {
	return &PlainPrinter{
		writer: writer,
	}
}

func (p *PlainPrinter) PrintStatusLine(status exchange.StatusLine) error {
	_, err := fmt.Fprintf(p.writer, "%s\n", statusLineText(status))
	return errors.Wrap(err, "printing status line")
}

func (p *PlainPrinter) PrintHeader(header exchange.Header) error {
	for _, name := range sortedNames(header) {
		fmt.Fprintf(p.writer, "%s: %s\n", name, header[name])
	}
	_, err := fmt.Fprintln(p.writer)
	return errors.Wrap(err, "printing response header")
}

func (p *PlainPrinter) PrintBody(body []byte, contentType string) error {
	_, err := p.writer.Write(body)
	if err != nil {
		return errors.Wrap(err, "printing response body")
	}
	return nil
}

func statusLineText(status exchange.StatusLine) string {
	text := status.Version + " " + status.Status
	if status.Explanation != "" {
		text += " " + status.Explanation
	}
	return text
}

func sortedNames(header exchange.Header) []string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
