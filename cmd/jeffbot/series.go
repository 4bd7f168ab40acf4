package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/jeffbot/pkg/services"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Manage tracked series",
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked series",
	Long:  "Display every tracked series in a formatted table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		series := rt.registry.List()
		if len(series) == 0 {
			fmt.Println(services.NoSeriesTracked)
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 10},
			{Title: "Name", Width: 50},
		}

		rows := []table.Row{}
		for _, s := range series {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", s.ID),
				truncateString(s.Name, 48),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Cell
		t.SetStyles(s)

		fmt.Printf("\nTracked series (%d)\n\n", len(series))
		fmt.Println(t.View())
	},
}

var seriesAddCmd = &cobra.Command{
	Use:   "add [series-id] [name]",
	Short: "Track a series",
	Long:  "Check the series id against the catalog and start tracking it. The name defaults to the catalog title.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		msg, err := rt.controller().AddSeries(cmd.Context(), args[0], strings.Join(args[1:], " "))
		fmt.Println(msg)
		cobra.CheckErr(err)
	},
}

var seriesRemoveCmd = &cobra.Command{
	Use:   "remove [series-id]",
	Short: "Stop tracking a series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(false)
		cobra.CheckErr(err)
		defer rt.Close()

		msg, err := rt.controller().RemoveSeries(args[0])
		fmt.Println(msg)
		cobra.CheckErr(err)
	},
}

func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesAddCmd)
	seriesCmd.AddCommand(seriesRemoveCmd)
}
