package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	app "github.com/BrobridgeOrg/gravity-dispatcher/pkg/app/instance"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {

	debugLevel := log.InfoLevel
	switch os.Getenv("GRAVITY_DEBUG") {
	case log.TraceLevel.String():
		debugLevel = log.TraceLevel
	case log.DebugLevel.String():
		debugLevel = log.DebugLevel
	case log.ErrorLevel.String():
		debugLevel = log.ErrorLevel
	}

	log.SetLevel(debugLevel)

	// From the environment
	viper.SetEnvPrefix("GRAVITY_DISPATCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// From config file
	viper.SetConfigName("config")
	viper.AddConfigPath("./")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn("No configuration file was loaded")
	}

	MAX_PROCS := os.Getenv("MAX_PROCS")
	if MAX_PROCS != "" {
		mp, err := strconv.Atoi(MAX_PROCS)
		if err == nil {
			runtime.GOMAXPROCS(mp)
		}
	}

	flags := rootCmd.Flags()
	flags.String("mode", "sequential", "dispatch mode: sequential|awaited|unawaited")
	flags.String("host", "", "interface to bind")
	flags.Int("port", 8000, "port to listen on")
	flags.Duration("delay", 0, "artificial delay before responding (default 1s)")
	flags.Bool("report-faults", false, "report faults of unawaited handlers")

	viper.BindPFlag("dispatcher.mode", flags.Lookup("mode"))
	viper.BindPFlag("service.host", flags.Lookup("host"))
	viper.BindPFlag("service.port", flags.Lookup("port"))
	viper.BindPFlag("dispatcher.reportFaults", flags.Lookup("report-faults"))

	rootCmd.AddCommand(benchCmd)
}

var rootCmd = &cobra.Command{
	Use:           "gravity-dispatcher",
	Short:         "HTTP server contrasting request dispatch strategies",
	Long:          "Serves a fixed \"hello\" after a fixed delay, handling requests sequentially, through an awaited request loop, or through a loop that never waits for its handlers.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServer,
}

func runServer(cmd *cobra.Command, args []string) error {

	// Zero keeps the configured delay
	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}

	if delay > 0 {
		viper.Set("dispatcher.delay", delay)
	}

	// Initializing application
	a := app.NewAppInstance()

	err = a.Init()
	if err != nil {
		log.Fatal(err)
		return err
	}

	// Starting application
	err = a.Run()
	if err != nil {
		log.Fatal(err)
		return err
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
