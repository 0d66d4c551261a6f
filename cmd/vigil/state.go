package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vigil-sh/vigil/internal/config"
	"github.com/vigil-sh/vigil/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the alert marker",
	Long: "Shows whether an alert email has already been sent for the " +
		"current outage. The marker clears itself on the next successful ping.",
	RunE: func(cmd *cobra.Command, args []string) error {
		marker, err := resolveMarker()
		if err != nil {
			return err
		}
		set, err := marker.Exists()
		if err != nil {
			return err
		}
		if set {
			fmt.Printf("escalated (marker at %s)\n", marker.Path())
		} else {
			fmt.Println("clear")
		}
		return nil
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the alert marker",
	RunE: func(cmd *cobra.Command, args []string) error {
		marker, err := resolveMarker()
		if err != nil {
			return err
		}
		if err := marker.Clear(); err != nil {
			return err
		}
		fmt.Println("cleared")
		return nil
	},
}

func resolveMarker() (*state.Marker, error) {
	if dir := viper.GetString("state-dir"); dir != "" {
		return state.New(dir), nil
	}
	cfg, err := config.Resolve(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	return state.New(cfg.StateDir()), nil
}

func init() {
	stateCmd.AddCommand(stateClearCmd)
	rootCmd.AddCommand(stateCmd)
}
