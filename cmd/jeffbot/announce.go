package cmd

import (
	"context"
	"fmt"

	"github.com/kerbaras/jeffbot/pkg/integrations"
	"github.com/kerbaras/jeffbot/pkg/services"
	"github.com/spf13/cobra"
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Run the release check once",
	Long: `Run a single release check now instead of waiting for the schedule.

With --dry-run the announcements are printed instead of posted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		rt, err := newRuntime(!dryRun)
		cobra.CheckErr(err)
		defer rt.Close()

		var messenger services.Messenger = printMessenger{}
		if !dryRun {
			bot, err := integrations.NewDiscord(cfg.Discord.Token, cfg.Discord.GuildID, cfg.Discord.ChannelID, rt.controller(), rt.sessions, logger)
			cobra.CheckErr(err)
			messenger = bot
		}

		delivered := rt.scheduler(messenger).RunOnce(cmd.Context())
		fmt.Printf("%d announcement(s) delivered\n", delivered)
	},
}

type printMessenger struct{}

func (printMessenger) Announce(_ context.Context, a services.Announcement) error {
	_, err := fmt.Println(a.Content)
	return err
}

func init() {
	announceCmd.Flags().Bool("dry-run", false, "Print announcements instead of posting them")
}
