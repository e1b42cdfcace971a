package version

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// License names the license of one module linked into hf.
type License struct {
	Module string // module path as in go.mod, or "Go" for the toolchain
	Name   string
	URL    string
}

// Licenses starts with httpfetch itself. Every module required by go.mod,
// direct or indirect, has an entry.
var Licenses = []License{
	{Module: "github.com/nojima/httpfetch", Name: "MIT", URL: "https://github.com/nojima/httpfetch/blob/master/LICENSE"},
	{Module: "Go", Name: "BSD-3-Clause", URL: "https://go.dev/LICENSE"},
	{Module: "code.cloudfoundry.org/bytefmt", Name: "Apache-2.0", URL: "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE"},
	{Module: "github.com/logrusorgru/aurora", Name: "WTFPL", URL: "https://github.com/logrusorgru/aurora/blob/master/LICENSE"},
	{Module: "github.com/mattn/go-isatty", Name: "MIT", URL: "https://github.com/mattn/go-isatty/blob/master/LICENSE"},
	{Module: "github.com/pborman/getopt", Name: "BSD-3-Clause", URL: "https://github.com/pborman/getopt/blob/master/LICENSE"},
	{Module: "github.com/pkg/errors", Name: "BSD-2-Clause", URL: "https://github.com/pkg/errors/blob/master/LICENSE"},
	{Module: "golang.org/x/crypto", Name: "BSD-3-Clause", URL: "https://cs.opensource.google/go/x/crypto/+/master:LICENSE"},
	{Module: "golang.org/x/net", Name: "BSD-3-Clause", URL: "https://cs.opensource.google/go/x/net/+/master:LICENSE"},
	{Module: "golang.org/x/sys", Name: "BSD-3-Clause", URL: "https://cs.opensource.google/go/x/sys/+/master:LICENSE"},
	{Module: "golang.org/x/text", Name: "BSD-3-Clause", URL: "https://cs.opensource.google/go/x/text/+/master:LICENSE"},
	{Module: "gopkg.in/yaml.v3", Name: "MIT and Apache-2.0", URL: "https://github.com/go-yaml/yaml/blob/v3/LICENSE"},
}

// PrintLicenses writes one "module (license)" block per entry, separated by
// blank lines.
func PrintLicenses(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, license := range Licenses {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%s (%s)\n  %s\n", license.Module, license.Name, license.URL)
	}
	return errors.Wrap(bw.Flush(), "printing licenses")
}
