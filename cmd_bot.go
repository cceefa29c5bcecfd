package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var errNoToken = errors.New("telegram token is not configured (tg_token)")

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TgToken == "" {
			return errNoToken
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runTelegramBot(ctx, newApp(cfg, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
