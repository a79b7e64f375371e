package main

import (
	"log"
	"os"

	"github.com/borgmon/deskclock/pkg/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "deskclock",
	Short: "Desktop clock with alarms, stopwatch and countdown timer",
	Long: `deskclock shows a digital or analog clock, a stopwatch and a countdown timer,
and rings recurring alarms with gradual volume and snooze.

Run without a subcommand to start the desktop app. The alarms and history
subcommands work on the same files from the terminal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmd.RunE(cmd, args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the desktop app",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return runApp(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or $XDG_CONFIG_HOME/deskclock/config.yaml)")
	rootCmd.AddCommand(runCmd, alarmsCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
