package cmd

import (
	"fmt"
	"time"

	"github.com/kerbaras/jeffbot/pkg/integrations"
	"github.com/kerbaras/jeffbot/pkg/services"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build an EPUB digest of this week's comics",
	Long: `Fetch this week's comics and compile them into a single EPUB with
covers, writers and descriptions.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		maxWidth, _ := cmd.Flags().GetInt("cover-width")
		maxHeight, _ := cmd.Flags().GetInt("cover-height")

		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		comics := rt.controller().ComicsThisWeek(cmd.Context())
		if len(comics) == 0 {
			fmt.Println(services.NoComicsThisWeek)
			return
		}

		builder := integrations.NewDigestBuilder(output, integrations.NewCoverProcessor(maxWidth, maxHeight), logger)
		path, err := builder.Build(cmd.Context(), comics, time.Now().In(rt.loc))
		cobra.CheckErr(err)

		fmt.Printf("Digest with %d comic(s) written to %s\n", len(comics), path)
	},
}

func init() {
	digestCmd.Flags().StringP("output", "o", "digests", "Directory to write the EPUB into")
	digestCmd.Flags().Int("cover-width", 600, "Maximum cover width in pixels")
	digestCmd.Flags().Int("cover-height", 900, "Maximum cover height in pixels")
}
