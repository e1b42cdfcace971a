package flags

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/mattn/go-isatty"
	"github.com/nojima/httpfetch/config"
	"github.com/nojima/httpfetch/exchange"
	"github.com/nojima/httpfetch/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var (
	reNumber  = regexp.MustCompile(`^[0-9.]+$`)
	reInteger = regexp.MustCompile(`^[0-9]+$`)
)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	ExchangeOptions exchange.Options
	OutputOptions   output.Options
	ShowVersion     bool
	ShowLicenses    bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

// Parse parses command-line arguments. args[0] is the program name. Values
// from cfg are used for flags that are not given.
func Parse(args []string, cfg *config.Config) (FlagSet, *OptionSet, error) {
	_, flagSet, optionSet, err := parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}, cfg)
	return flagSet, optionSet, err
}

func parse(args []string, terminal terminalInfo, cfg *config.Config) ([]string, *getopt.Set, *OptionSet, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Parse flags
	optionSet := &OptionSet{}
	printFlag := cfg.Print
	timeout := cfg.Timeout
	maxSize := cfg.MaxSize
	caFile := cfg.CAFile
	noColor := cfg.GetNoColor()

	flagSet := getopt.New()
	flagSet.SetParameters("URL")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (hb)")
	flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take")
	flagSet.StringVarLong(&maxSize, "max-size", 0, "Maximum response size, e.g. 128M (0 means unlimited)")
	flagSet.StringVarLong(&caFile, "ca-file", 0, "PEM file with additional trusted certificates")
	flagSet.BoolVarLong(&noColor, "no-color", 0, "disable colored output")
	flagSet.BoolVarLong(&optionSet.ShowVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.ShowLicenses, "licenses", 0, "print license information and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, nil, nil, errors.Wrap(err, "parsing flags")
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, &optionSet.OutputOptions); err != nil {
		return nil, nil, nil, err
	}

	// Parse --timeout
	if timeout == "" {
		timeout = "0"
	}
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, nil, nil, err
	}
	optionSet.ExchangeOptions.Timeout = d

	// Parse --max-size
	if maxSize == "" {
		maxSize = "0"
	}
	size, err := parseSize(maxSize)
	if err != nil {
		return nil, nil, nil, err
	}
	optionSet.ExchangeOptions.MaxResponseSize = size

	optionSet.ExchangeOptions.CAFile = caFile

	// Color and formatting
	optionSet.OutputOptions.EnableColor = terminal.stdoutIsTerminal && !noColor
	optionSet.OutputOptions.EnableFormat = terminal.stdoutIsTerminal

	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, outputOptions *output.Options) error {
	if printFlag == "" {
		// --print is not specified
		outputOptions.PrintResponseBody = true
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of hb): %c", c)
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil || d < 0 {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseSize(size string) (uint64, error) {
	if reInteger.MatchString(size) {
		n, err := strconv.ParseUint(size, 10, 64)
		if err != nil {
			return 0, errors.Errorf("Value of --max-size is out of range: %v", size)
		}
		return n, nil
	}
	n, err := bytefmt.ToBytes(size)
	if err != nil {
		return 0, errors.Errorf("Value of --max-size must be a byte count or size string like 128M: %v", size)
	}
	return n, nil
}
