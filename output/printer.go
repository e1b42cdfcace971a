package output

import (
	"github.com/nojima/httpfetch/exchange"
)

type Printer interface {
	PrintStatusLine(status exchange.StatusLine) error
	PrintHeader(header exchange.Header) error
	PrintBody(body []byte, contentType string) error
}

// NewPrinter returns a PlainPrinter when neither coloring nor formatting is
// requested.
func NewPrinter(config PrettyPrinterConfig) Printer {
	if !config.EnableColor && !config.EnableFormat {
		return NewPlainPrinter(config.Writer)
	}
	return NewPrettyPrinter(config)
}
