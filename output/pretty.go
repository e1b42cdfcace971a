package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/nojima/httpfetch/exchange"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	enableFormat  bool
}

type PrettyPrinterConfig struct {
	Writer       io.Writer
	EnableColor  bool
	EnableFormat bool
}

type HeaderPalette struct {
	Version        aurora.Color
	Status         aurora.Color
	Explanation    aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Version:        aurora.BlueFg,
	Status:         aurora.BrownFg | aurora.BoldFm,
	Explanation:    aurora.CyanFg,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		enableFormat:  config.EnableFormat,
	}
}

func (p *PrettyPrinter) PrintStatusLine(status exchange.StatusLine) error {
	text := fmt.Sprintf("%s %s",
		p.aurora.Colorize(status.Version, p.headerPalette.Version),
		p.aurora.Colorize(status.Status, p.headerPalette.Status))
	if status.Explanation != "" {
		text += fmt.Sprintf(" %s", p.aurora.Colorize(status.Explanation, p.headerPalette.Explanation))
	}
	_, err := fmt.Fprintln(p.writer, text)
	return errors.Wrap(err, "printing status line")
}

func (p *PrettyPrinter) PrintHeader(header exchange.Header) error {
	for _, name := range sortedNames(header) {
		fmt.Fprintf(p.writer, "%s%s %s\n",
			p.aurora.Colorize(name, p.headerPalette.FieldName),
			p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
			p.aurora.Colorize(header[name], p.headerPalette.FieldValue))
	}
	_, err := fmt.Fprintln(p.writer)
	return errors.Wrap(err, "printing response header")
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = strings.TrimSpace(contentType[:semicolon])
	}

	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func (p *PrettyPrinter) PrintBody(body []byte, contentType string) error {
	// Fallback to PlainPrinter when the body is not JSON
	if !p.enableFormat || !isJSON(contentType) {
		return p.plain.PrintBody(body, contentType)
	}

	var v interface{}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&v); err != nil || decoder.More() {
		// Malformed JSON is shown as received.
		return p.plain.PrintBody(body, contentType)
	}

	encoder := json.NewEncoder(p.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}
