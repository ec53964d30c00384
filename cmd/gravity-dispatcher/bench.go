package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/bench"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var benchOpts = bench.NewOptions()

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Fire concurrent requests and report when each completes",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	flags := benchCmd.Flags()
	flags.StringVar(&benchOpts.URL, "url", benchOpts.URL, "target URL")
	flags.IntVar(&benchOpts.Requests, "requests", benchOpts.Requests, "number of requests")
	flags.IntVar(&benchOpts.Rate, "rate", benchOpts.Rate, "requests started per second, 0 starts all at once")
	flags.DurationVar(&benchOpts.Timeout, "timeout", benchOpts.Timeout, "per request timeout")
}

func runBench(cmd *cobra.Command, args []string) error {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := bench.Run(ctx, benchOpts)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"succeeded":  report.Succeeded(),
		"elapsed":    report.Elapsed,
		"maxLatency": report.MaxLatency(),
	}).Info("Benchmark finished")

	data, err := report.JSON()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}
