package history

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aprs3/f1dashboard-go/log"
	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/pkg/processing/history"
)

// NewHistoryCmd shows the historical aggregations of a year range.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <startYear> <endYear>",
		Short: "shows events per country and wins per team for a year range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			end, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return showHistory(start, end)
		},
	}
	return cmd
}

func showHistory(start, end int) error {
	opts := []history.Option{}
	if config.TeamColorsFile != "" {
		palette, err := history.LoadPalette(config.TeamColorsFile)
		if err != nil {
			log.Warn("could not load team color palette",
				log.String("file", config.TeamColorsFile),
				log.ErrorField(err))
		} else {
			opts = append(opts, history.WithPalette(palette))
		}
	}
	engine := history.New(config.ScheduleFile, config.WinnersFile, opts...)

	countryRows, err := engine.CountryCounts(start, end)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Country", "ISO", "Events"})
	for i := range countryRows {
		r := countryRows[i]
		t.AppendRow(table.Row{r.Country, r.ISO, r.Count})
	}
	t.Render()

	winRows, err := engine.TeamWins(start, end)
	if err != nil {
		return err
	}
	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Team", "Wins"})
	for i := range winRows {
		t.AppendRow(table.Row{winRows[i].Team, winRows[i].Wins})
	}
	t.Render()
	return nil
}
