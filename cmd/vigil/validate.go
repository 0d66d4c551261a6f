package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vigil-sh/vigil/internal/config"
	"github.com/vigil-sh/vigil/internal/secret"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and credential",
	Long: "Loads the config, checks every required key, and resolves the " +
		"SMTP credential. No network I/O is performed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(viper.GetString("config"))
		if err != nil {
			return err
		}

		if _, err := secret.Resolve(cfg.SMTPLogin()); err != nil {
			return fmt.Errorf("config ok, but: %w", err)
		}

		fmt.Printf("✓ Config valid\n")
		fmt.Printf("  Ping URL:  %s\n", cfg.PingURL)
		fmt.Printf("  Mail:      %s → %s\n", cfg.MailFrom, cfg.MailTo)
		fmt.Printf("  SMTP:      %s:%d (login %s)\n", cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTPLogin())
		fmt.Printf("  Timeouts:  %v\n", cfg.TimeoutSchedule())
		fmt.Printf("  State dir: %s\n", cfg.StateDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
