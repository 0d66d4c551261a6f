package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Dead-man's-switch watchdog",
	Long: "Vigil pings a dead-man's-switch monitoring endpoint to confirm a " +
		"monitored subsystem is alive, and escalates to a human by email when " +
		"the ping cannot be delivered — once per outage. Invocation is driven " +
		"by an external scheduler; vigil itself runs one cycle and exits.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path")
	rootCmd.PersistentFlags().String("state-dir", "", "alert marker directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("state-dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetEnvPrefix("VIGIL")
	_ = viper.BindEnv("config")
	_ = viper.BindEnv("state-dir", "VIGIL_STATE_DIR")
}
