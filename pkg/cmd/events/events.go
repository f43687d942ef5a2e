package events

import (
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

// NewEventsCmd lists the selectable events of a year range.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <fromYear> <toYear>",
		Short: "lists the available events within a year range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return listEvents(cmd, from, to)
		},
	}
	return cmd
}

func listEvents(cmd *cobra.Command, from, to int) error {
	source := provider.NewSnapshotSource(config.SnapshotDir)
	events, err := source.Events(cmd.Context(), provider.YearRange{From: from, To: to})
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Year", "Event", "Date", "Sessions"})
	for i := range events {
		e := events[i]
		t.AppendRow(table.Row{
			e.Year, e.Name,
			e.Date.Format("2006-01-02"),
			strings.Join(provider.SessionSlots(e), ", "),
		})
	}
	t.Render()
	return nil
}
