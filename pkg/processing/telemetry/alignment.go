// Package telemetry aligns raw car telemetry onto a distance axis.
package telemetry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aprs3/f1dashboard-go/pkg/model"
)

// ErrNoFastestLap signals that the driver has no valid lap in the session.
var ErrNoFastestLap = errors.New("no fastest lap")

type Channel string

const (
	ChannelSpeed    Channel = "speed"
	ChannelThrottle Channel = "throttle"
)

func ParseChannel(arg string) (Channel, error) {
	switch Channel(arg) {
	case ChannelSpeed, ChannelThrottle:
		return Channel(arg), nil
	default:
		return "", fmt.Errorf("unknown telemetry channel %q", arg)
	}
}

// FastestLap returns the driver's fastest accurate lap of the session.
func FastestLap(s *model.Session, driver string) (model.Lap, error) {
	best := model.Lap{}
	found := false
	for _, lap := range s.DriverLaps(driver) {
		if !lap.Accurate || lap.Time <= 0 {
			continue
		}
		if !found || lap.Time < best.Time {
			best = lap
			found = true
		}
	}
	if !found {
		return model.Lap{}, fmt.Errorf("%w: %s", ErrNoFastestLap, driver)
	}
	return best, nil
}

// AlignFastestLap converts the raw telemetry of the driver's fastest lap
// into a distance-indexed series of the requested channel. The distance is
// the running integral of speed over the elapsed time between samples and
// is monotonic non-decreasing.
func AlignFastestLap(s *model.Session, driver string, ch Channel) (
	[]model.AlignedSample, error,
) {
	lap, err := FastestLap(s, driver)
	if err != nil {
		return nil, err
	}
	samples := lapSamples(s.Telemetry[driver], lap.Lap)
	ret := make([]model.AlignedSample, 0, len(samples))
	dist := 0.0
	prev := time.Duration(0)
	for i := range samples {
		if i > 0 {
			dt := samples[i].Time - prev
			if dt > 0 {
				// speed is km/h, distance in meters
				dist += samples[i].Speed / 3.6 * dt.Seconds()
			}
		}
		prev = samples[i].Time
		ret = append(ret, model.AlignedSample{
			Distance: dist,
			Value:    channelValue(&samples[i], ch),
		})
	}
	return ret, nil
}

func lapSamples(all []model.TelemetrySample, lap int) []model.TelemetrySample {
	ret := make([]model.TelemetrySample, 0)
	for i := range all {
		if all[i].Lap == lap {
			ret = append(ret, all[i])
		}
	}
	slices.SortStableFunc(ret, func(a, b model.TelemetrySample) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return ret
}

func channelValue(s *model.TelemetrySample, ch Channel) float64 {
	if ch == ChannelThrottle {
		return s.Throttle
	}
	return s.Speed
}
