package httpfetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nojima/httpfetch/config"
	"github.com/nojima/httpfetch/exchange"
	"github.com/nojima/httpfetch/flags"
	"github.com/nojima/httpfetch/input"
	"github.com/nojima/httpfetch/output"
	"github.com/nojima/httpfetch/version"
	"github.com/pkg/errors"
)

func Main() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load config
	cfg, err := config.Load(os.Getenv(config.EnvPath))
	if err != nil {
		return err
	}

	// Parse flags
	flagSet, optionSet, err := flags.Parse(os.Args, cfg)
	if err != nil {
		return err
	}

	return run(ctx, flagSet, optionSet, os.Stdout, os.Stderr)
}

func run(ctx context.Context, flagSet flags.FlagSet, optionSet *flags.OptionSet, stdout, stderr io.Writer) error {
	if optionSet.ShowVersion {
		fmt.Fprintf(stdout, "httpfetch %s\n", version.Current())
		return nil
	}
	if optionSet.ShowLicenses {
		return version.PrintLicenses(stdout)
	}

	// Parse positional arguments
	in, err := input.ParseArgs(flagSet.Args(), stderr)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Send request and receive response
	exchangeOptions := optionSet.ExchangeOptions
	exchangeOptions.Stdout = stdout
	client, err := exchange.NewClient(&exchangeOptions)
	if err != nil {
		return err
	}
	resp, err := client.Fetch(ctx, in.URL)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", in.URL)
	}
	if resp.Empty() {
		return nil
	}

	// Print response
	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	if err := exchange.WriteSummary(writer, resp); err != nil {
		return err
	}

	outputOptions := optionSet.OutputOptions
	printer := output.NewPrinter(output.PrettyPrinterConfig{
		Writer:       writer,
		EnableColor:  outputOptions.EnableColor,
		EnableFormat: outputOptions.EnableFormat,
	})
	if outputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.StatusLine); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
	}
	if outputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}
