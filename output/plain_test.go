package output

import (
	"strings"
	"testing"

	"github.com/nojima/httpfetch/exchange"
)

func TestPlainPrinter(t *testing.T) {
	// Setup
	var buffer strings.Builder
	printer := NewPlainPrinter(&buffer)

	// Exercise
	if err := printer.PrintStatusLine(exchange.StatusLine{Version: "HTTP/1.0", Status: "200", Explanation: "OK"}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if err := printer.PrintHeader(exchange.Header{"server": "test", "content-type": "application/json"}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if err := printer.PrintBody([]byte(`{"a":1}`), "application/json"); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := "HTTP/1.0 200 OK\ncontent-type: application/json\nserver: test\n\n{\"a\":1}"
	if buffer.String() != expected {
		t.Errorf("unexpected output: expected=%q, actual=%q", expected, buffer.String())
	}
}
