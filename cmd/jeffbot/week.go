package cmd

import (
	"fmt"

	"github.com/kerbaras/jeffbot/pkg/app"
	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "List the comics out this week",
	Long:  "Fetch this week's issue for every tracked series. Use --browse to page through them one at a time.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		browse, _ := cmd.Flags().GetBool("browse")

		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		if browse {
			cobra.CheckErr(app.NewApp(rt.controller(), rt.idle).Run(cmd.Context()))
			return
		}

		fmt.Println(rt.controller().ThisWeekList(cmd.Context()))
	},
}

func init() {
	weekCmd.Flags().BoolP("browse", "b", false, "Page through the comics in the terminal UI")
}
