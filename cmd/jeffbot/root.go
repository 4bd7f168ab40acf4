package cmd

import (
	"os"

	"github.com/kerbaras/jeffbot/pkg/app"
	"github.com/kerbaras/jeffbot/pkg/config"
	"github.com/kerbaras/jeffbot/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "jeffbot",
	Short: "Marvel release announcements for Discord",
	Long:  "Track Marvel comic series, announce new issues on release day and browse this week's comics",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		a := app.NewApp(rt.controller(), rt.idle)
		cobra.CheckErr(a.Run(cmd.Context()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "jeffbot.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(digestCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
