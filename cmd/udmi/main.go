// udmi - UDMI message codec CLI tool
//
// Usage:
//
//	udmi types [-v]                 List registered message types
//	udmi validate <Type> [file]     Decode a message and report problems
//	udmi canon <Type> [file]        Print the canonical JSON encoding
//	udmi hash <Type> [file]         Print the record hash and fingerprint
//	udmi version                    Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/faucetsdn/udmi-sub001/codec"
	"github.com/faucetsdn/udmi-sub001/record"
	"github.com/faucetsdn/udmi-sub001/udmi"
)

const (
	libVersion    = "0.1.0"
	schemaVersion = "1.5.2"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the flags shared by every command.
type options struct {
	configPath string
	metrics    bool
	pretty     bool
	verbose    bool
	args       []string
}

func parseArgs(args []string) (options, error) {
	var o options
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--config="):
			o.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--metrics":
			o.metrics = true
		case arg == "--pretty":
			o.pretty = true
		case arg == "-v" || arg == "--verbose":
			o.verbose = true
		case arg == "-":
			o.args = append(o.args, arg)
		case strings.HasPrefix(arg, "-"):
			return o, errors.Errorf("unknown flag %s", arg)
		default:
			o.args = append(o.args, arg)
		}
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	cmd := args[0]
	switch cmd {
	case "version", "--version":
		fmt.Fprintf(stdout, "udmi %s (schema %s)\n", libVersion, schemaVersion)
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	}

	opts, err := parseArgs(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "udmi: %v\n", err)
		return exitUsage
	}
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "udmi: %v\n", err)
		return exitUsage
	}
	if opts.metrics {
		cfg.Metrics = true
	}
	if opts.pretty && cfg.Indent == "" {
		cfg.Indent = "  "
	}

	metrics := gometrics.NewRegistry()
	c := &cli{
		codec:  newCodec(cfg, metrics),
		reg:    udmi.Registry(),
		log:    newLogger(stderr, cfg.LogLevel),
		stdin:  stdin,
		stdout: stdout,
	}

	var code int
	switch cmd {
	case "types":
		code = c.cmdTypes(opts.verbose)
	case "validate":
		code = c.cmdValidate(opts.args)
	case "canon", "fmt":
		code = c.cmdCanon(opts.args)
	case "hash":
		code = c.cmdHash(opts.args)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		printUsage(stderr)
		return exitUsage
	}

	if cfg.Metrics {
		gometrics.WriteOnce(metrics, stderr)
	}
	return code
}

func newCodec(cfg Config, metrics gometrics.Registry) *codec.Codec {
	opts := []codec.Option{codec.WithMetrics(metrics)}
	if cfg.ValidateOnEncode {
		opts = append(opts, codec.WithValidateOnEncode())
	}
	if cfg.Indent != "" {
		opts = append(opts, codec.WithIndent("", cfg.Indent))
	}
	return codec.New(opts...)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `udmi - UDMI message codec CLI tool

Usage:
  udmi types [-v]                 List registered message types
  udmi validate <Type> [file]     Decode a message and report problems
  udmi canon <Type> [file]        Print the canonical JSON encoding
  udmi hash <Type> [file]         Print the record hash and fingerprint
  udmi version                    Print version info

Options:
  --config=FILE       Read settings from a TOML file
  --pretty            Indent canonical output
  --metrics           Print codec counters to stderr on exit
  -v, --verbose       Show descriptor layouts (types)

If no file is given, reads from stdin.

Examples:
  echo '{"phase":"final","extra":1}' | udmi canon BlobBlobsetConfig
  # Output: {"phase":"final"}

  udmi validate PointsetEvents events.json
  udmi hash EndpointConfiguration endpoint.json
`)
}

// ============================================================
// Commands
// ============================================================

type cli struct {
	codec  *codec.Codec
	reg    *record.Registry
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// cmdTypes lists descriptor and enum names, with layouts when verbose.
func (c *cli) cmdTypes(verbose bool) int {
	for _, name := range c.reg.RecordNames() {
		if !verbose {
			fmt.Fprintln(c.stdout, name)
			continue
		}
		d, _ := c.reg.Record(name)
		fmt.Fprintln(c.stdout, d.Canonical())
	}
	for _, name := range c.reg.EnumNames() {
		if !verbose {
			fmt.Fprintf(c.stdout, "enum %s\n", name)
			continue
		}
		e, _ := c.reg.Enum(name)
		values := make([]string, 0, len(e.Symbols()))
		for _, s := range e.Symbols() {
			values = append(values, s.Value())
		}
		fmt.Fprintf(c.stdout, "enum %s {%s}\n", name, strings.Join(values, " "))
	}
	return exitOK
}

// cmdValidate decodes a message and re-checks the result in memory.
func (c *cli) cmdValidate(args []string) int {
	r, code := c.decode(args)
	if r == nil {
		return code
	}
	if err := r.Validate(); err != nil {
		c.report(r.Type(), err)
		return exitInvalid
	}
	fmt.Fprintf(c.stdout, "ok %s\n", r.Type())
	return exitOK
}

// cmdCanon prints the canonical encoding of a message.
func (c *cli) cmdCanon(args []string) int {
	r, code := c.decode(args)
	if r == nil {
		return code
	}
	out, err := c.codec.Encode(r)
	if err != nil {
		c.report(r.Type(), err)
		return exitInvalid
	}
	fmt.Fprintln(c.stdout, string(out))
	return exitOK
}

// cmdHash prints the in-process hash and the SHA-256 fingerprint.
func (c *cli) cmdHash(args []string) int {
	r, code := c.decode(args)
	if r == nil {
		return code
	}
	fp, err := c.codec.Fingerprint(r)
	if err != nil {
		c.report(r.Type(), err)
		return exitInvalid
	}
	fmt.Fprintf(c.stdout, "hash   %d\n", r.Hash())
	fmt.Fprintf(c.stdout, "sha256 %s\n", fp)
	return exitOK
}

// decode resolves the type argument, reads the input and decodes it. A nil
// record means the returned exit code should be used.
func (c *cli) decode(args []string) (*record.Record, int) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(c.stdout, "usage: udmi <command> <Type> [file]")
		return nil, exitUsage
	}
	d, ok := c.reg.Record(args[0])
	if !ok {
		fmt.Fprintf(c.stdout, "unknown type %q (see 'udmi types')\n", args[0])
		return nil, exitUsage
	}

	data, err := c.readInput(args[1:])
	if err != nil {
		c.log.Error("read input", "err", err)
		return nil, exitUsage
	}
	c.log.Debug("decoding", "type", d.Name(), "bytes", len(data))

	r, err := c.codec.Decode(d, data)
	if err != nil {
		c.report(d.Name(), err)
		return nil, exitInvalid
	}
	return r, exitOK
}

func (c *cli) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(c.stdin)
		return data, errors.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(args[0])
	return data, errors.Wrapf(err, "read %s", args[0])
}

// report prints a failure line on stdout and logs its error code.
func (c *cli) report(typ string, err error) {
	code := record.ErrorCode(err)
	if code == "" {
		code = "malformed"
	}
	fmt.Fprintf(c.stdout, "invalid %s: [%s] %v\n", typ, code, err)
	c.log.Warn("message rejected", "type", typ, "code", code, "err", errors.Cause(err))
}
