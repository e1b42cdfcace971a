package input

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		title    string
		input    string
		expected URL
	}{
		{
			title:    "Typical case",
			input:    "http://example.com/hello/world",
			expected: URL{Scheme: HTTP, Host: "example.com", Port: 80, Path: "/hello/world"},
		},
		{
			title:    "No path",
			input:    "https://example.com",
			expected: URL{Scheme: HTTPS, Host: "example.com", Port: 443, Path: "/"},
		},
		{
			title:    "Root path",
			input:    "http://example.com/",
			expected: URL{Scheme: HTTP, Host: "example.com", Port: 80, Path: "/"},
		},
		{
			title:    "Explicit port",
			input:    "https://example.com:8443/a/b",
			expected: URL{Scheme: HTTPS, Host: "example.com", Port: 8443, Path: "/a/b"},
		},
		{
			title:    "Explicit port without path",
			input:    "http://localhost:8080",
			expected: URL{Scheme: HTTP, Host: "localhost", Port: 8080, Path: "/"},
		},
		{
			title:    "Explicit default port",
			input:    "http://example.com:80/x",
			expected: URL{Scheme: HTTP, Host: "example.com", Port: 80, Path: "/x"},
		},
		{
			title:    "IPv4 host",
			input:    "http://127.0.0.1:3000/index.html",
			expected: URL{Scheme: HTTP, Host: "127.0.0.1", Port: 3000, Path: "/index.html"},
		},
		{
			title:    "Query string stays in the path",
			input:    "http://example.com/search?q=go&lang=en",
			expected: URL{Scheme: HTTP, Host: "example.com", Port: 80, Path: "/search?q=go&lang=en"},
		},
		{
			title:    "Colon after the first slash belongs to the path",
			input:    "http://example.com/a:b",
			expected: URL{Scheme: HTTP, Host: "example.com", Port: 80, Path: "/a:b"},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			u, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: err=%v", err)
			}
			if !reflect.DeepEqual(*u, tt.expected) {
				t.Errorf("unexpected result: expected=%+v, actual=%+v", tt.expected, *u)
			}
		})
	}
}

func TestParse_Error(t *testing.T) {
	testCases := []struct {
		title  string
		input  string
		reason string
	}{
		{title: "No scheme delimiter", input: "not-a-url", reason: "Invalid url"},
		{title: "Empty string", input: "", reason: "Invalid url"},
		{title: "Unsupported scheme", input: "ftp://example.com/", reason: "Unsupported scheme"},
		{title: "Scheme is case-sensitive", input: "HTTP://example.com/", reason: "Unsupported scheme"},
		{title: "Non-numeric port", input: "http://example.com:abc/", reason: "Invalid port"},
		{title: "Empty port", input: "http://example.com:/", reason: "Invalid port"},
		{title: "Port out of range", input: "http://example.com:70000/", reason: "Invalid port"},
		{title: "Port zero", input: "http://example.com:0/", reason: "Invalid port"},
		{title: "Empty host", input: "http:///path", reason: "Empty host"},
		{title: "Empty host with port", input: "https://:8443/", reason: "Empty host"},
		{title: "CRLF in path", input: "http://example.com/a\r\nX-Injected: 1", reason: "Invalid url"},
		{title: "Space in path", input: "http://example.com/a b", reason: "Invalid url"},
		{title: "Control byte in host", input: "http://exa\x00mple.com/", reason: "Invalid url"},
		{title: "DEL in path", input: "http://example.com/\x7f", reason: "Invalid url"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error but got nil")
			}
			perr, ok := errors.Cause(err).(*ParseError)
			if !ok {
				t.Fatalf("unexpected error type: %T", errors.Cause(err))
			}
			if perr.Reason != tt.reason {
				t.Errorf("unexpected reason: expected=%s, actual=%s", tt.reason, perr.Reason)
			}
			if perr.URL != tt.input {
				t.Errorf("unexpected URL in error: expected=%s, actual=%s", tt.input, perr.URL)
			}
		})
	}
}

func TestParseOrFallback(t *testing.T) {
	fallback, err := Parse(FallbackURL)
	if err != nil {
		t.Fatalf("fallback URL must be parseable: err=%v", err)
	}

	for _, raw := range []string{"not-a-url", "ftp://example.com/", "http://example.com:abc/"} {
		t.Run(raw, func(t *testing.T) {
			// Setup
			var diag strings.Builder

			// Exercise
			u := ParseOrFallback(raw, &diag)

			// Verify
			if !reflect.DeepEqual(u, fallback) {
				t.Errorf("unexpected URL: expected=%+v, actual=%+v", fallback, u)
			}
			lines := strings.Split(strings.TrimSuffix(diag.String(), "\n"), "\n")
			if len(lines) != 3 {
				t.Fatalf("unexpected diagnostic: %q", diag.String())
			}
			if lines[1] != "  URL was: "+raw {
				t.Errorf("unexpected diagnostic line: %q", lines[1])
			}
			if !strings.HasPrefix(lines[2], "  Warn: ") {
				t.Errorf("unexpected diagnostic line: %q", lines[2])
			}
		})
	}
}

func TestParseOrFallback_FallbackIsStable(t *testing.T) {
	var diag strings.Builder
	u := ParseOrFallback(FallbackURL, &diag)
	if diag.Len() != 0 {
		t.Errorf("fallback URL triggered a second fallback: %q", diag.String())
	}
	expected := URL{Scheme: HTTPS, Host: "browser.engineering", Port: 443, Path: "/"}
	if *u != expected {
		t.Errorf("unexpected URL: expected=%+v, actual=%+v", expected, *u)
	}
}

func TestURL_String(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "http://example.com", expected: "http://example.com/"},
		{input: "https://example.com:443/a", expected: "https://example.com/a"},
		{input: "https://example.com:8443/a/b", expected: "https://example.com:8443/a/b"},
		{input: "http://example.com:443/", expected: "http://example.com:443/"},
	}
	for _, tt := range testCases {
		t.Run(tt.input, func(t *testing.T) {
			if s := MustParse(tt.input).String(); s != tt.expected {
				t.Errorf("unexpected string: expected=%s, actual=%s", tt.expected, s)
			}
		})
	}
}

func TestURL_Address(t *testing.T) {
	u := MustParse("https://example.com:8443/a/b")
	if a := u.Address(); a != "example.com:8443" {
		t.Errorf("unexpected address: %s", a)
	}
	if !u.IsSecure() {
		t.Errorf("https URL should be secure")
	}
	if MustParse("http://example.com/").IsSecure() {
		t.Errorf("http URL should not be secure")
	}
}
