package compare

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/processing/corners"
	"github.com/aprs3/f1dashboard-go/pkg/processing/telemetry"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

// NewCompareCmd compares the fastest laps of two drivers corner by
// corner.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <year> <event> <session> <driver1> <driver2>",
		Short: "compares the corner speeds of two drivers' fastest laps",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return compareDrivers(cmd, year, args[1],
				model.SessionType(args[2]), args[3], args[4])
		},
	}
	return cmd
}

//nolint:whitespace // editor/linter issue
func compareDrivers(
	cmd *cobra.Command,
	year int,
	event string,
	sType model.SessionType,
	driver1, driver2 string,
) error {
	source := provider.NewSnapshotSource(config.SnapshotDir)
	session, err := source.LoadSession(cmd.Context(), year, event, sType)
	if err != nil {
		return err
	}
	aligned1, err := telemetry.AlignFastestLap(session, driver1, telemetry.ChannelSpeed)
	if err != nil {
		return fmt.Errorf("%s: %w", driver1, err)
	}
	aligned2, err := telemetry.AlignFastestLap(session, driver2, telemetry.ChannelSpeed)
	if err != nil {
		return fmt.Errorf("%s: %w", driver2, err)
	}
	diff := corners.SpeedDiff(
		corners.SegmentByCorners(driver1, aligned1, session.Circuit.Corners),
		corners.SegmentByCorners(driver2, aligned2, session.Circuit.Corners))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Corner", fmt.Sprintf("%s - %s (km/h)", driver1, driver2)})
	for i := range diff {
		if diff[i].Undefined {
			t.AppendRow(table.Row{diff[i].Corner, "n/a"})
			continue
		}
		t.AppendRow(table.Row{diff[i].Corner, fmt.Sprintf("%+.1f", diff[i].Diff)})
	}
	t.Render()
	return nil
}
