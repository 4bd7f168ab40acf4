package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerbaras/jeffbot/pkg/integrations"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and announce releases on schedule",
	Long: `Connect the bot to Discord, register the slash commands and run the
daily release check on the configured cron schedule.

The check runs in the configured timezone and only announces comics whose
on-sale date is today.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newRuntime(true)
		cobra.CheckErr(err)
		defer rt.Close()

		bot, err := integrations.NewDiscord(cfg.Discord.Token, cfg.Discord.GuildID, cfg.Discord.ChannelID, rt.controller(), rt.sessions, logger)
		cobra.CheckErr(err)

		scheduler := rt.scheduler(bot)
		defer scheduler.Stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return bot.Run(ctx, func(ctx context.Context) error {
				return scheduler.Schedule(ctx, cfg.Schedule.Cron)
			})
		})
		if cfg.Metrics.Addr != "" {
			g.Go(func() error {
				logger.Info("Serving metrics", zap.String("addr", cfg.Metrics.Addr))
				return metrics.Serve(ctx, cfg.Metrics.Addr, rt.promRegistry)
			})
		}

		if err := g.Wait(); err != nil {
			logger.Error("Bot stopped", zap.Error(err))
			cobra.CheckErr(err)
		}
		logger.Info("Shutting down")
	},
}
