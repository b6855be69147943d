// Command compliance prints the NBA compliance report of every active course.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/bootstrap"
	"github.com/yigit/nbadocs/internal/pkg/logger"
)

// Exit statuses
const (
	exitOK         = 0
	exitError      = 1
	exitBelowScore = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command and returns its exit status, so deferred cleanup always happens.
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("compliance", flag.ContinueOnError)
	configPath := flags.String("config", "configs/config.yaml", "path to the YAML configuration file")
	minScore := flags.Int("min", 0, "exit with status 2 when any course scores below this percentage")
	timeout := flags.Duration("timeout", time.Minute, "maximum time to compute the report")
	if err := flags.Parse(args); err != nil {
		return exitError
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		return exitError
	}
	if cfg.UsesMemoryStore() {
		color.Yellow("database.driver is memory: the report will be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stores, err := bootstrap.OpenStores(ctx, cfg, lgr)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open stores")
		return exitError
	}
	defer stores.Close()

	svc := services.NewComplianceService(stores.Courses, stores.Files, cfg.Reports.ComplianceWorkers, logger.Component("compliance"))
	report, err := svc.Report(ctx)
	if err != nil {
		color.Red("Failed to compute compliance report: %v", err)
		return exitError
	}

	color.Cyan("\n=== NBA Compliance Report ===")
	renderReport(stdout, report)

	failing := belowThreshold(report, *minScore)
	if len(failing) > 0 {
		color.Red("%d course(s) below %d%%", len(failing), *minScore)
		return exitBelowScore
	}
	fmt.Fprintln(stdout)
	color.Green("%d course(s) checked", len(report))
	return exitOK
}
