package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	compareCmd "github.com/aprs3/f1dashboard-go/pkg/cmd/compare"
	eventsCmd "github.com/aprs3/f1dashboard-go/pkg/cmd/events"
	historyCmd "github.com/aprs3/f1dashboard-go/pkg/cmd/history"
	serveCmd "github.com/aprs3/f1dashboard-go/pkg/cmd/serve"
	strategyCmd "github.com/aprs3/f1dashboard-go/pkg/cmd/strategy"
	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/version"
)

const envPrefix = "F1D"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "f1dashboard",
	Short:   "Analytics backend for the F1 telemetry dashboard",
	Long:    ``,
	Version: version.FullVersion,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.f1dashboard.yml)")

	rootCmd.PersistentFlags().StringVar(&config.SnapshotDir, "snapshot-dir",
		"snapshots",
		"Directory containing the session snapshot files")
	rootCmd.PersistentFlags().StringVar(&config.ScheduleFile, "schedule-file",
		"data/schedule1980-2024.csv",
		"CSV file with the historical race calendar")
	rootCmd.PersistentFlags().StringVar(&config.WinnersFile, "winners-file",
		"data/race_winners_1980_to_2024.csv",
		"CSV file with the historical race winners")
	rootCmd.PersistentFlags().StringVar(&config.TeamColorsFile, "team-colors",
		"",
		"Optional yaml file overriding the team color palette")
	rootCmd.PersistentFlags().StringVar(&config.CacheTTL, "cache-ttl",
		"1h",
		"Expiration for cached sessions")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config",
		"",
		"path to a log config file with filter rules")

	// add commands here
	rootCmd.AddCommand(serveCmd.NewServeCmd())
	rootCmd.AddCommand(eventsCmd.NewEventsCmd())
	rootCmd.AddCommand(compareCmd.NewCompareCmd())
	rootCmd.AddCommand(strategyCmd.NewStrategyCmd())
	rootCmd.AddCommand(historyCmd.NewHistoryCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".f1dashboard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".f1dashboard")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --snapshot-dir to F1D_SNAPSHOT_DIR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
