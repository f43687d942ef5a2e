package strategy

import (
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/processing/merge"
	"github.com/aprs3/f1dashboard-go/pkg/processing/strategy"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

var merged bool

// NewStrategyCmd shows the reconstructed race strategies of an event.
func NewStrategyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy <year> <event>",
		Short: "shows the reconstructed race strategies of an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if merged {
				return showMerged(cmd, year, args[1])
			}
			return showStrategies(cmd, year, args[1])
		},
	}
	cmd.Flags().BoolVar(&merged,
		"merged",
		false,
		"join strategies with qualifying and race classification")
	return cmd
}

func showStrategies(cmd *cobra.Command, year int, event string) error {
	source := provider.NewSnapshotSource(config.SnapshotDir)
	session, err := source.LoadSession(cmd.Context(), year, event, model.SessionRace)
	if err != nil {
		return err
	}
	strategies := strategy.Reconstruct(session.Laps)
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Driver", "Stops", "Compounds"})
	for i := range strategies {
		s := strategies[i]
		t.AppendRow(table.Row{s.Driver, s.Stops, strings.Join(s.Compounds, " > ")})
	}
	t.Render()
	return nil
}

func showMerged(cmd *cobra.Command, year int, event string) error {
	source := provider.NewSnapshotSource(config.SnapshotDir)
	rows, err := merge.EventStrategies(cmd.Context(), source, year, event)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Quali", "Driver", "Stops", "Compounds", "Finish"})
	for i := range rows {
		r := rows[i]
		t.AppendRow(table.Row{
			r.QualiPosition, r.Driver, r.Stops,
			strings.Join(r.Compounds, " > "), r.FinishPosition,
		})
	}
	t.Render()
	return nil
}
