package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"procurement.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, zaplog, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer zaplog.Sync()
		builtins := cron.Builtins(db, zaplog)

		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Merge(builtins)[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}

		c, err := cron.StartCron(builtins, zaplog)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
