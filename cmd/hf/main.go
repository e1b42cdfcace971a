package main

import (
	"fmt"
	"os"

	"github.com/nojima/httpfetch"
)

func main() {
	if err := httpfetch.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
