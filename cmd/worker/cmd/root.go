package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sovr-labs/go-fp-clearing/cmd/setup"
	helperFlag "github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/job"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker application to configuring and running a job",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runJobCmd)

	runJobCmd.Flags().StringP(runJobCmdName, "n", "", "job name")
	runJobCmd.MarkFlagRequired(runJobCmdName)
	runJobCmd.Flags().StringP(runJobCmdVersion, "v", "", "job version")
	runJobCmd.MarkFlagRequired(runJobCmdVersion)
	runJobCmd.Flags().StringP(runJobCmdDate, "d", "", "job running date, YYYY-MM-DD")
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List job name and version",
		Long:  ``,
		Run:   list,
	}
)

func list(ccmd *cobra.Command, args []string) {
	var names []string
	for version, l := range job.Names() {
		for _, name := range l {
			names = append(names, fmt.Sprintf("version=%s, name=%s", version, name))
		}
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

var (
	runJobCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run execution job",
		Long:    ``,
		Example: "worker run -n={job-name} -v={job-version} -d={job-date}",
		Run:     runJob,
	}
	runJobCmdName    = "name"
	runJobCmdVersion = "version"
	runJobCmdDate    = "date"
)

func runJob(ccmd *cobra.Command, args []string) {
	var (
		ctx = context.Background()
	)

	name, _ := ccmd.Flags().GetString(runJobCmdName)
	version, _ := ccmd.Flags().GetString(runJobCmdVersion)
	date, _ := ccmd.Flags().GetString(runJobCmdDate)

	s, stoppers, err := setup.Init("job")
	if err != nil {
		graceful.StopProcess(5*time.Second, stoppers...)
		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}

	j := job.New(s.Config, s.Service)
	err = j.Start(ctx, helperFlag.Job{
		JobName: name,
		Version: version,
		Date:    date,
	})
	graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)

	if err != nil {
		os.Exit(1)
	}
	xlog.Info(ctx, "job server stopped!")
}
