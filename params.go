package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/odysseywalk/tour-contract-tests/config"
	"github.com/odysseywalk/tour-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL  string
	configFile  string
	timeout     time.Duration
	filters     framework.RegexFilters
	debug       bool
	debugAll    bool
	metricsFile string
	jsonReport  string
	noColor     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "walking-tour service base URL (default from config, "+config.EnvServiceURL+", or http://localhost:3006)")
	fs.StringVar(&c.configFile, "config", "", "optional YAML file with suite settings")
	fs.Func("timeout", "default per-request timeout, in seconds or as a duration such as 45s", func(s string) error {
		d, err := config.ParseDuration(s)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		c.timeout = d
		return nil
	})
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus text-format metrics to this file")
	fs.StringVar(&c.jsonReport, "json-report", "", "write the results as JSON to this file")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	return true
}

// loadConfig applies the command line on top of the config file and environment.
func (c *commandParams) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return cfg, err
	}
	if c.serviceURL != "" {
		cfg.ServiceURL = c.serviceURL
	}
	if c.timeout > 0 {
		cfg.RequestTimeout = config.Duration(c.timeout)
	}
	return cfg, cfg.Validate()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand returns a shell command that sends the same request again.
func curlCommand(req framework.RequestInfo) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", req.Method)
	if req.ContentType != "" {
		b.add("-H", "Content-Type: "+req.ContentType)
	}
	if len(req.Body) > 0 {
		b.add("--data-binary", string(req.Body))
	}
	b.add(req.URL)
	return b.String()
}

// reproCommands maps the ID of each failed test to a curl command for its last request.
type reproCommands map[string]string

func (r reproCommands) RecordFailedRequest(id framework.TestID, req framework.RequestInfo) {
	r[id.String()] = curlCommand(req)
}
