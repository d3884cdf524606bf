package main

import (
	"fmt"
	"os"

	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"
	"github.com/odysseywalk/tour-contract-tests/tourtests"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	if params.noColor {
		color.NoColor = true
	}

	cfg, err := params.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.NewConsoleLogger(os.Stderr, color.NoColor)
	}
	mainDebugLogger.Printf("service URL %s, request timeout %s, status timeout %s",
		cfg.ServiceURL, cfg.RequestTimeout, cfg.StatusTimeout)

	metrics := framework.NewMetrics()
	client := framework.NewServiceClient(cfg.ServiceURL, cfg.RequestTimeout.Std(), metrics)
	health, err := client.AwaitHealthy(servicedef.PathHealth, cfg.StatusTimeout.Std(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}
	mainDebugLogger.Printf("health check took %s", health.Elapsed)

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	repro := make(reproCommands)

	results := tourtests.RunTestSuite(client, cfg, params.filters.AsFilter, testLogger, repro)

	fmt.Println()
	framework.PrintResults(os.Stdout, results, framework.ReportOptions{
		MaxWarningsShown: cfg.MaxWarningsShown,
		ReproCommands:    repro,
	})

	if params.jsonReport != "" {
		if err := framework.WriteJSONReport(params.jsonReport, results); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		mainDebugLogger.Printf("wrote JSON report to %s", params.jsonReport)
	}
	if params.metricsFile != "" {
		metrics.RecordResults(results)
		if err := metrics.WriteToFile(params.metricsFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		mainDebugLogger.Printf("wrote metrics to %s", params.metricsFile)
	}

	if !results.OK() {
		os.Exit(1)
	}
}
