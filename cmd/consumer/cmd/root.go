package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sovr-labs/go-fp-clearing/cmd/setup"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/consumer"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/health"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Consumer runs one of the clearing event consumers",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runConsumerCmd)

	runConsumerCmd.Flags().StringP(runConsumerCmdName, "n", "", "consumer name")
	runConsumerCmd.MarkFlagRequired(runConsumerCmdName)
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List consumer names",
		Run: func(ccmd *cobra.Command, args []string) {
			for _, name := range consumer.Names {
				fmt.Println(name)
			}
		},
	}

	runConsumerCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run consumer",
		Long:    "Run a clearing event consumer, available: " + strings.Join(consumer.Names, ", "),
		Example: "consumer run -n={consumer-name}",
		Run:     runConsumer,
	}
	runConsumerCmdName = "name"
)

func runConsumer(ccmd *cobra.Command, args []string) {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	consumerName, _ := ccmd.Flags().GetString(runConsumerCmdName)

	s, stopperContract, err := setup.Init("consumer-" + consumerName)
	if err != nil {
		graceful.StopProcess(5*time.Second, stopperContract...)
		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}
	xlog.Infof(ctx, "initializing consumer: %s", consumerName)

	consumerProcess, err := consumer.NewKafkaConsumer(ctx, consumerName, s.Config, s.Service, s)
	if err != nil {
		graceful.StopProcess(s.Config.App.GracefulTimeout, stopperContract...)
		xlog.Fatalf(ctx, "failed to setup consumer: %v", err)
	}

	check := health.NewHealthCheck()
	healthCheckProcess := consumer.NewHTTPServer(s.Config, s.Metrics, check)

	starters = append(starters, consumerProcess.Start(), healthCheckProcess.Start())
	// StopProcess runs in reverse: readiness goes down, the consumer drains,
	// then the health server, producers, db and cache.
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, healthCheckProcess.Stop())
	stoppers = append(stoppers, consumerProcess.Stop())
	stoppers = append(stoppers, func(context.Context) error {
		check.Shutdown()
		return nil
	})

	graceful.StartProcessAtBackground(starters...)
	xlog.Infof(ctx, "consumer %s started, waiting for shutdown signal...", consumerName)

	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)

	xlog.Infof(ctx, "consumer %s stopped successfully!", consumerName)
}
