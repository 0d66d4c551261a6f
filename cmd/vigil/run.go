package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vigil-sh/vigil/internal/config"
	"github.com/vigil-sh/vigil/internal/logging"
	"github.com/vigil-sh/vigil/internal/mail"
	"github.com/vigil-sh/vigil/internal/ping"
	"github.com/vigil-sh/vigil/internal/runner"
	"github.com/vigil-sh/vigil/internal/secret"
	"github.com/vigil-sh/vigil/internal/state"
)

var runCmd = &cobra.Command{
	Use:   "run [message]",
	Short: "Run one watchdog cycle",
	Long: "Pings the monitoring endpoint once (with retries on timeout) and " +
		"escalates by email on failure. The optional message is sent as the " +
		"ping body. Exits 0 only when the ping was delivered.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := ""
		if len(args) == 1 {
			body = args[0]
		}

		cfg, err := config.Resolve(viper.GetString("config"))
		if err != nil {
			critical(nil, "config", err)
			return err
		}

		logger, closeLogs := logging.Setup(cfg.LogsDir(), viper.GetBool("verbose"))
		defer closeLogs()
		logger.Info("vigil starting", "version", version)

		password, err := secret.Resolve(cfg.SMTPLogin())
		if err != nil {
			critical(logger, errorKind(err), err)
			return err
		}

		stateDir := cfg.StateDir()
		if v := viper.GetString("state-dir"); v != "" {
			stateDir = v
		}

		r := runner.New(cfg,
			ping.New(cfg.PingURL, cfg.TimeoutSchedule(), logger),
			mail.New(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.User, password, logger),
			state.New(stateDir),
			logger,
		)

		res := r.Run(cmd.Context(), body)
		if res.Err != nil {
			critical(logger, errorKind(res.Err), res.Err)
			return res.Err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// errorKind maps an error to its taxonomy name for the final log line.
func errorKind(err error) string {
	var (
		notFound *secret.NotFoundError
		timeout  *ping.TimeoutError
		rejected *ping.StatusError
		delivery *mail.DeliveryError
	)
	switch {
	case errors.As(err, &notFound):
		return "credential"
	case errors.As(err, &timeout):
		return "timeout"
	case errors.As(err, &rejected):
		return "rejected"
	case errors.As(err, &delivery):
		return "mail"
	default:
		return "error"
	}
}

// critical emits the single final failure line. Before logging is set up
// (config errors) it can only reach stderr.
func critical(logger *slog.Logger, kind string, err error) {
	if logger != nil {
		logger.Error("exiting", "kind", kind, "error", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s CRITICAL [%s] %v; exiting.\n",
		time.Now().Format("2006-01-02 15:04:05"), kind, err)
}
